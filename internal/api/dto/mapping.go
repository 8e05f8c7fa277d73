package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

// ToCatalogItem builds the entity stored for a create request.
func (r CreateCatalogItemRequest) ToCatalogItem(addedBy string, now time.Time) domain.CatalogItem {
	return domain.CatalogItem{
		ID:          uuid.New(),
		Title:       normalizeTitle(r.Title),
		Description: r.Description,
		AddedBy:     addedBy,
		CreatedAt:   now,
	}
}

// ApplyTo overwrites the replaceable fields of item.
func (r ReplaceCatalogItemRequest) ApplyTo(item *domain.CatalogItem) {
	item.Title = normalizeTitle(r.Title)
	item.Description = r.Description
}

// CatalogItemResponseFrom projects an entity to its public shape.
func CatalogItemResponseFrom(item domain.CatalogItem) CatalogItemResponse {
	return CatalogItemResponse{
		ID:          item.ID,
		Title:       normalizeTitle(item.Title),
		Description: item.Description,
	}
}

// CatalogListResponseFrom wraps a list of items.
func CatalogListResponseFrom(items []domain.CatalogItem) CatalogListResponse {
	data := make([]CatalogItemResponse, 0, len(items))
	for _, item := range items {
		data = append(data, CatalogItemResponseFrom(item))
	}
	return CatalogListResponse{Data: data}
}

// IssueResponseFrom projects a stored issue.
func IssueResponseFrom(issue domain.UserIssue) IssueResponse {
	return IssueResponse{
		ID:   issue.ID,
		User: issue.User,
		Software: IssueSoftwareResponse{
			ID:          issue.Software.ID,
			Title:       issue.Software.Title,
			Description: issue.Software.Description,
		},
		Description: issue.Description,
		Status:      issue.Status,
		CreatedAt:   issue.CreatedAt,
	}
}

// UserResponseFrom projects resolved user information.
func UserResponseFrom(user domain.UserInformation) UserResponse {
	return UserResponse{ID: user.ID, Sub: user.Sub}
}

func normalizeTitle(title string) string {
	return strings.ToLower(title)
}
