package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/issue-tracker/internal/api/dto"
	"github.com/spec-kit/issue-tracker/internal/docstore"
	"github.com/spec-kit/issue-tracker/internal/service"
)

const catalogCacheControl = "private, max-age=5"

// CatalogHandler exposes the software catalog.
type CatalogHandler struct {
	store   docstore.Store
	service *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(store docstore.Store, catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{store: store, service: catalogService}
}

// List GET /catalog.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext(), h.store.OpenSession())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderCacheControl, catalogCacheControl)
	return c.JSON(dto.CatalogListResponseFrom(items))
}

// Get GET /catalog/:id.
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.service.Get(c.UserContext(), h.store.OpenSession(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.CatalogItemResponseFrom(*item))
}

// Create POST /catalog.
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateCatalogItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	item, err := h.service.Create(c.UserContext(), h.store.OpenSession(), caller, req)
	if err != nil {
		return err
	}

	c.Location(catalogItemURL(c, item.ID))
	return c.Status(http.StatusCreated).JSON(dto.CatalogItemResponseFrom(*item))
}

// Replace PUT /catalog/:id.
func (h *CatalogHandler) Replace(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ReplaceCatalogItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	item, err := h.service.Replace(c.UserContext(), h.store.OpenSession(), caller, id, req)
	if err != nil {
		return err
	}
	return c.JSON(dto.CatalogItemResponseFrom(*item))
}

// Delete DELETE /catalog/:id.
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.UserContext(), h.store.OpenSession(), caller, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func catalogItemURL(c *fiber.Ctx, id uuid.UUID) string {
	url, err := c.GetRouteURL(RouteCatalogGetByID, fiber.Map{"id": id.String()})
	if err != nil || url == "" {
		return "/catalog/" + id.String()
	}
	return url
}
