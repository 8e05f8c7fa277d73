package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCatalogItemAdded   EventType = "catalog_item_added"
	EventCatalogItemRemoved EventType = "catalog_item_removed"
	EventIssueSubmitted     EventType = "issue_submitted"
)

// Event represents a domain event emitted by services after a commit.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Subject   string    `json:"subject"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// CatalogItemAddedPayload payload.
type CatalogItemAddedPayload struct {
	ItemID uuid.UUID `json:"item_id"`
	Title  string    `json:"title"`
}

// CatalogItemRemovedPayload payload.
type CatalogItemRemovedPayload struct {
	ItemID    uuid.UUID `json:"item_id"`
	RemovedAt time.Time `json:"removed_at"`
}

// IssueSubmittedPayload payload.
type IssueSubmittedPayload struct {
	IssueID    uuid.UUID          `json:"issue_id"`
	SoftwareID uuid.UUID          `json:"software_id"`
	UserID     uuid.UUID          `json:"user_id"`
	Status     domain.IssueStatus `json:"status"`
}
