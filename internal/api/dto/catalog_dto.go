package dto

import "github.com/google/uuid"

// CreateCatalogItemRequest payload.
type CreateCatalogItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ReplaceCatalogItemRequest payload.
type ReplaceCatalogItemRequest struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// CatalogItemResponse is the public shape of a catalog item.
type CatalogItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// CatalogListResponse wraps GET /catalog.
type CatalogListResponse struct {
	Data []CatalogItemResponse `json:"data"`
}
