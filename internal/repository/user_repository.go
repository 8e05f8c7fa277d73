package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/issue-tracker/internal/docstore"
	"github.com/spec-kit/issue-tracker/internal/domain"
)

// UserRepository defines persistence access for resolved identities.
type UserRepository interface {
	Store(user domain.UserInformation)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserInformation, error)
	GetBySub(ctx context.Context, sub string) (*domain.UserInformation, error)
}

type userRepository struct {
	session docstore.Session
}

// NewUserRepository binds the repository to a unit of work.
func NewUserRepository(session docstore.Session) UserRepository {
	return &userRepository{session: session}
}

func (r *userRepository) Store(user domain.UserInformation) {
	r.session.Store(user)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserInformation, error) {
	return docstore.Load[domain.UserInformation](ctx, r.session, id.String())
}

func (r *userRepository) GetBySub(ctx context.Context, sub string) (*domain.UserInformation, error) {
	return docstore.First[domain.UserInformation](ctx, r.session, docstore.Where(docstore.Eq("sub", sub)))
}
