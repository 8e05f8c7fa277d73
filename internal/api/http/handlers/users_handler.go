package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/api/dto"
	"github.com/spec-kit/issue-tracker/internal/docstore"
	"github.com/spec-kit/issue-tracker/internal/service"
)

// UsersHandler exposes resolved user information.
type UsersHandler struct {
	store    docstore.Store
	identity *service.IdentityService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(store docstore.Store, identity *service.IdentityService) *UsersHandler {
	return &UsersHandler{store: store, identity: identity}
}

// Get GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.identity.Get(c.UserContext(), h.store.OpenSession(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserResponseFrom(*user))
}
