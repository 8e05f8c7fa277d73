package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/issue-tracker/internal/api/dto"
	"github.com/spec-kit/issue-tracker/internal/docstore"
	"github.com/spec-kit/issue-tracker/internal/service"
)

// IssuesHandler files issues against catalog items.
type IssuesHandler struct {
	store   docstore.Store
	service *service.IssueService
}

// NewIssuesHandler constructs handler.
func NewIssuesHandler(store docstore.Store, issueService *service.IssueService) *IssuesHandler {
	return &IssuesHandler{store: store, service: issueService}
}

// Create POST /catalog/:id/issues.
func (h *IssuesHandler) Create(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	catalogID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateIssueRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	issue, err := h.service.Create(c.UserContext(), h.store.OpenSession(), caller, catalogID, req, userLinker(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.IssueResponseFrom(*issue))
}

// Get GET /catalog/:id/issues/:issueId.
func (h *IssuesHandler) Get(c *fiber.Ctx) error {
	catalogID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	issueID, err := pathID(c, "issueId")
	if err != nil {
		return err
	}

	issue, err := h.service.Get(c.UserContext(), h.store.OpenSession(), catalogID, issueID)
	if err != nil {
		return err
	}
	return c.JSON(dto.IssueResponseFrom(*issue))
}

func userLinker(c *fiber.Ctx) service.UserLinker {
	return func(userID uuid.UUID) string {
		url, err := c.GetRouteURL(RouteUsersGetByID, fiber.Map{"id": userID.String()})
		if err != nil || url == "" {
			return service.DefaultUserLink(userID)
		}
		return url
	}
}
