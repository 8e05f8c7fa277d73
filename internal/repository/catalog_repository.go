package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/issue-tracker/internal/docstore"
	"github.com/spec-kit/issue-tracker/internal/domain"
)

// Indexes lists the unique constraints the store must enforce.
var Indexes = []docstore.UniqueIndex{
	{Collection: domain.CollectionUsers, Field: "sub"},
}

// CatalogRepository encapsulates catalog persistence within a session.
type CatalogRepository interface {
	ListActive(ctx context.Context) ([]domain.CatalogItem, error)
	GetActive(ctx context.Context, id uuid.UUID) (*domain.CatalogItem, error)
	Load(ctx context.Context, id uuid.UUID) (*domain.CatalogItem, error)
	Store(item domain.CatalogItem)
}

type catalogRepository struct {
	session docstore.Session
}

// NewCatalogRepository binds the repository to a unit of work.
func NewCatalogRepository(session docstore.Session) CatalogRepository {
	return &catalogRepository{session: session}
}

func (r *catalogRepository) ListActive(ctx context.Context) ([]domain.CatalogItem, error) {
	return docstore.Query[domain.CatalogItem](ctx, r.session, docstore.Where(docstore.IsNull("removedAt")))
}

// GetActive returns docstore.ErrNotFound for missing or removed items.
func (r *catalogRepository) GetActive(ctx context.Context, id uuid.UUID) (*domain.CatalogItem, error) {
	return docstore.First[domain.CatalogItem](ctx, r.session, docstore.Where(
		docstore.Eq("id", id),
		docstore.IsNull("removedAt"),
	))
}

// Load returns the item regardless of its removal state.
func (r *catalogRepository) Load(ctx context.Context, id uuid.UUID) (*domain.CatalogItem, error) {
	return docstore.Load[domain.CatalogItem](ctx, r.session, id.String())
}

func (r *catalogRepository) Store(item domain.CatalogItem) {
	r.session.Store(item)
}
