package domain

import (
	"time"

	"github.com/google/uuid"
)

// CollectionIssues holds user submitted issues.
const CollectionIssues = "issues"

// IssueStatus enumerates lifecycle states for issues.
type IssueStatus string

const (
	IssueStatusSubmitted IssueStatus = "Submitted"
)

// UserIssue is a report filed by a user against a catalog item.
type UserIssue struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	User        string           `json:"user"`
	Software    SoftwareSnapshot `json:"software"`
	Description string           `json:"description"`
	Status      IssueStatus      `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func (UserIssue) Collection() string { return CollectionIssues }

func (i UserIssue) DocumentID() string { return i.ID.String() }
