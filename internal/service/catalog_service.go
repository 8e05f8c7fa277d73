package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/issue-tracker/internal/api/dto"
	"github.com/spec-kit/issue-tracker/internal/docstore"
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/events"
	"github.com/spec-kit/issue-tracker/internal/repository"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

const catalogResource = "catalog item"

// CatalogService coordinates catalog workflows. Each call works inside the
// caller supplied session and commits it before returning.
type CatalogService struct {
	policy    domain.Policy
	now       Clock
	publisher publisher
}

// CatalogDependencies bundles collaborators for the catalog service.
type CatalogDependencies struct {
	Policy     domain.Policy
	Clock      Clock
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	now := deps.Clock
	if now == nil {
		now = utcNow
	}
	return &CatalogService{
		policy:    deps.Policy,
		now:       now,
		publisher: newPublisher(deps.Dispatcher, deps.Logger),
	}
}

// List returns every item that has not been removed.
func (s *CatalogService) List(ctx context.Context, session docstore.Session) ([]domain.CatalogItem, error) {
	return repository.NewCatalogRepository(session).ListActive(ctx)
}

// Get returns a visible item or a not found error.
func (s *CatalogService) Get(ctx context.Context, session docstore.Session, id uuid.UUID) (*domain.CatalogItem, error) {
	item, err := repository.NewCatalogRepository(session).GetActive(ctx, id)
	if err != nil {
		return nil, storeError(err, catalogResource)
	}
	return item, nil
}

// Create validates and stores a new catalog item owned by the caller.
func (s *CatalogService) Create(ctx context.Context, session docstore.Session, caller domain.Caller, req dto.CreateCatalogItemRequest) (*domain.CatalogItem, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}
	if errs := req.Validate(); len(errs) > 0 {
		return nil, apperrors.NewFieldValidationError("Cannot Add Catalog Item", errs.ToMap())
	}

	item := req.ToCatalogItem(caller.Subject, s.now())
	repository.NewCatalogRepository(session).Store(item)
	if err := session.SaveChanges(ctx); err != nil {
		return nil, storeError(err, catalogResource)
	}

	s.publisher.publish(ctx, events.Event{
		Type:    events.EventCatalogItemAdded,
		Subject: caller.Subject,
		Payload: events.CatalogItemAddedPayload{ItemID: item.ID, Title: item.Title},
	})
	return &item, nil
}

// Remove soft deletes an item. Missing or already removed items are not an
// error; only the creator may remove a live item.
func (s *CatalogService) Remove(ctx context.Context, session docstore.Session, caller domain.Caller, id uuid.UUID) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}

	repo := repository.NewCatalogRepository(session)
	item, err := repo.Load(ctx, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if item.Removed() {
		return nil
	}
	if item.AddedBy != caller.Subject {
		return apperrors.NewForbidden("only the creator can remove this catalog item")
	}

	removedAt := s.now()
	item.RemovedAt = &removedAt
	repo.Store(*item)
	if err := session.SaveChanges(ctx); err != nil {
		return storeError(err, catalogResource)
	}

	s.publisher.publish(ctx, events.Event{
		Type:    events.EventCatalogItemRemoved,
		Subject: caller.Subject,
		Payload: events.CatalogItemRemovedPayload{ItemID: item.ID, RemovedAt: removedAt},
	})
	return nil
}

// Replace overwrites the title and description of a visible item.
func (s *CatalogService) Replace(ctx context.Context, session docstore.Session, caller domain.Caller, id uuid.UUID, req dto.ReplaceCatalogItemRequest) (*domain.CatalogItem, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}

	repo := repository.NewCatalogRepository(session)
	item, err := repo.GetActive(ctx, id)
	if err != nil {
		return nil, storeError(err, catalogResource)
	}
	if req.ID != id {
		return nil, apperrors.NewIDMismatch(id.String(), req.ID.String())
	}
	if errs := req.Validate(); len(errs) > 0 {
		return nil, apperrors.NewFieldValidationError("Cannot Replace Catalog Item", errs.ToMap())
	}

	req.ApplyTo(item)
	repo.Store(*item)
	if err := session.SaveChanges(ctx); err != nil {
		return nil, storeError(err, catalogResource)
	}
	return item, nil
}

func (s *CatalogService) requireAdmin(caller domain.Caller) error {
	if !s.policy.Allows(caller, domain.CapabilitySoftwareAdmin) {
		return apperrors.NewForbidden("software admin role required")
	}
	return nil
}
