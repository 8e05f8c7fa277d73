package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

func TestCatalogItemResponseFrom(t *testing.T) {
	entity := domain.CatalogItem{ID: uuid.New(), Title: "Stuff", AddedBy: "Joe", CreatedAt: time.Now(), Description: "rad"}

	mapped := CatalogItemResponseFrom(entity)

	assert.Equal(t, "stuff", mapped.Title)
	assert.Equal(t, "rad", mapped.Description)
	assert.Equal(t, entity.ID, mapped.ID)
}

func TestToCatalogItem(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	req := CreateCatalogItemRequest{Title: "Notepad", Description: "A text editor on Windows"}

	first := req.ToCatalogItem("carl@aol.com", now)
	second := req.ToCatalogItem("carl@aol.com", now)

	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "notepad", first.Title)
	assert.Equal(t, "A text editor on Windows", first.Description)
	assert.Equal(t, "carl@aol.com", first.AddedBy)
	assert.Equal(t, now, first.CreatedAt)
	assert.Nil(t, first.RemovedAt)
}

func TestReplaceApplyToKeepsOwnership(t *testing.T) {
	created := time.Now()
	item := domain.CatalogItem{ID: uuid.New(), Title: "old", Description: "old", AddedBy: "carl", CreatedAt: created}

	ReplaceCatalogItemRequest{ID: item.ID, Title: "VS Code", Description: "editor"}.ApplyTo(&item)

	assert.Equal(t, "vs code", item.Title)
	assert.Equal(t, "editor", item.Description)
	assert.Equal(t, "carl", item.AddedBy)
	assert.Equal(t, created, item.CreatedAt)
}

func TestCatalogListResponseFromEmpty(t *testing.T) {
	resp := CatalogListResponseFrom(nil)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}

func TestIssueResponseFrom(t *testing.T) {
	issue := domain.UserIssue{
		ID:       uuid.New(),
		User:     "/users/42",
		Software: domain.SoftwareSnapshot{ID: uuid.New(), Title: "notepad", Description: "editor"},
		Status:   domain.IssueStatusSubmitted,
	}

	resp := IssueResponseFrom(issue)

	assert.Equal(t, issue.ID, resp.ID)
	assert.Equal(t, "/users/42", resp.User)
	assert.Equal(t, issue.Software.ID, resp.Software.ID)
	assert.Equal(t, domain.IssueStatusSubmitted, resp.Status)
}
