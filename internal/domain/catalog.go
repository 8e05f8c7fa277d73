package domain

import (
	"time"

	"github.com/google/uuid"
)

// CollectionCatalogItems holds software entries.
const CollectionCatalogItems = "catalog_items"

// CatalogItem is a piece of software issues can be filed against.
type CatalogItem struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AddedBy     string     `json:"addedBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	RemovedAt   *time.Time `json:"removedAt"`
}

func (CatalogItem) Collection() string { return CollectionCatalogItems }

func (c CatalogItem) DocumentID() string { return c.ID.String() }

// Removed reports whether the item has been soft deleted.
func (c CatalogItem) Removed() bool {
	return c.RemovedAt != nil
}

// SoftwareSnapshot is the part of a catalog item copied into an issue.
type SoftwareSnapshot struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// Snapshot copies the fields an issue embeds.
func (c CatalogItem) Snapshot() SoftwareSnapshot {
	return SoftwareSnapshot{ID: c.ID, Title: c.Title, Description: c.Description}
}
