package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/issue-tracker/internal/docstore"
	"github.com/spec-kit/issue-tracker/internal/domain"
)

// IssueRepository stores user issues.
type IssueRepository interface {
	Store(issue domain.UserIssue)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserIssue, error)
}

type issueRepository struct {
	session docstore.Session
}

// NewIssueRepository binds the repository to a unit of work.
func NewIssueRepository(session docstore.Session) IssueRepository {
	return &issueRepository{session: session}
}

func (r *issueRepository) Store(issue domain.UserIssue) {
	r.session.Store(issue)
}

func (r *issueRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserIssue, error) {
	return docstore.Load[domain.UserIssue](ctx, r.session, id.String())
}

