package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/issue-tracker/internal/docstore"
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/repository"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

const userResource = "user"

// IdentityService maps external subjects to durable user records.
type IdentityService struct {
	logger *zap.Logger
}

// NewIdentityService constructs the service.
func NewIdentityService(logger *zap.Logger) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{logger: logger}
}

// Resolve finds the user for subject, creating and committing one on first
// sight. Uniqueness of the subject is enforced by the store; when a
// concurrent request wins the insert, its record is returned.
func (s *IdentityService) Resolve(ctx context.Context, session docstore.Session, subject string) (*domain.UserInformation, error) {
	if subject == "" {
		return nil, apperrors.NewUnauthorized("subject claim required")
	}

	users := repository.NewUserRepository(session)
	user, err := users.GetBySub(ctx, subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return nil, err
	}

	created := domain.UserInformation{ID: uuid.New(), Sub: subject}
	users.Store(created)
	err = session.SaveChanges(ctx)
	switch {
	case err == nil:
		s.logger.Info("user information created", zap.String("user_id", created.ID.String()))
		return &created, nil
	case errors.Is(err, docstore.ErrConflict):
		return users.GetBySub(ctx, subject)
	default:
		return nil, err
	}
}

// Get returns a user record by id.
func (s *IdentityService) Get(ctx context.Context, session docstore.Session, id uuid.UUID) (*domain.UserInformation, error) {
	user, err := repository.NewUserRepository(session).GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, userResource)
	}
	return user, nil
}
