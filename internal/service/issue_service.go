package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/issue-tracker/internal/api/dto"
	"github.com/spec-kit/issue-tracker/internal/docstore"
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/events"
	"github.com/spec-kit/issue-tracker/internal/repository"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

const issueResource = "issue"

// UserLinker builds the URL a stored issue uses to reference its user.
type UserLinker func(userID uuid.UUID) string

// IssueService files issues against catalog items.
type IssueService struct {
	identity  *IdentityService
	now       Clock
	publisher publisher
}

// IssueDependencies bundles collaborators for the issue service.
type IssueDependencies struct {
	Identity   *IdentityService
	Clock      Clock
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewIssueService constructs the service.
func NewIssueService(deps IssueDependencies) *IssueService {
	now := deps.Clock
	if now == nil {
		now = utcNow
	}
	identity := deps.Identity
	if identity == nil {
		identity = NewIdentityService(deps.Logger)
	}
	return &IssueService{
		identity:  identity,
		now:       now,
		publisher: newPublisher(deps.Dispatcher, deps.Logger),
	}
}

// Create files an issue for the caller against a visible catalog item,
// embedding a snapshot of the item as it is now.
func (s *IssueService) Create(ctx context.Context, session docstore.Session, caller domain.Caller, catalogID uuid.UUID, req dto.CreateIssueRequest, link UserLinker) (*domain.UserIssue, error) {
	if link == nil {
		link = DefaultUserLink
	}

	item, err := repository.NewCatalogRepository(session).GetActive(ctx, catalogID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, apperrors.NewNotFoundMessage("No software found with that Id in the catalog")
	}
	if err != nil {
		return nil, err
	}
	if errs := req.Validate(); len(errs) > 0 {
		return nil, apperrors.NewFieldValidationError("Cannot Add Issue", errs.ToMap())
	}

	user, err := s.identity.Resolve(ctx, session, caller.Subject)
	if err != nil {
		return nil, err
	}

	issue := domain.UserIssue{
		ID:          uuid.New(),
		UserID:      user.ID,
		User:        link(user.ID),
		Software:    item.Snapshot(),
		Description: strings.TrimSpace(req.Description),
		Status:      domain.IssueStatusSubmitted,
		CreatedAt:   s.now(),
	}
	repository.NewIssueRepository(session).Store(issue)
	if err := session.SaveChanges(ctx); err != nil {
		return nil, storeError(err, issueResource)
	}

	s.publisher.publish(ctx, events.Event{
		Type:    events.EventIssueSubmitted,
		Subject: caller.Subject,
		Payload: events.IssueSubmittedPayload{
			IssueID:    issue.ID,
			SoftwareID: issue.Software.ID,
			UserID:     user.ID,
			Status:     issue.Status,
		},
	})
	return &issue, nil
}

// Get returns an issue filed against the given catalog item.
func (s *IssueService) Get(ctx context.Context, session docstore.Session, catalogID, issueID uuid.UUID) (*domain.UserIssue, error) {
	issue, err := repository.NewIssueRepository(session).GetByID(ctx, issueID)
	if err != nil {
		return nil, storeError(err, issueResource)
	}
	if issue.Software.ID != catalogID {
		return nil, apperrors.NewNotFound(issueResource)
	}
	return issue, nil
}

// DefaultUserLink renders the path of the users#get-by-id route.
func DefaultUserLink(userID uuid.UUID) string {
	return "/users/" + userID.String()
}
