package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

// CreateIssueRequest payload.
type CreateIssueRequest struct {
	Description string `json:"description"`
}

// IssueSoftwareResponse is the catalog snapshot embedded in an issue.
type IssueSoftwareResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// IssueResponse is returned from POST /catalog/:id/issues.
type IssueResponse struct {
	ID          uuid.UUID             `json:"id"`
	User        string                `json:"user"`
	Software    IssueSoftwareResponse `json:"software"`
	Description string                `json:"description"`
	Status      domain.IssueStatus    `json:"status"`
	CreatedAt   time.Time             `json:"createdAt"`
}
