package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassesThroughWrapped(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewForbidden("only the creator can remove this item"))

	de := ToDomainError(wrapped)
	require.NotNil(t, de)
	assert.Equal(t, CodeForbidden, de.Code)
	assert.Equal(t, http.StatusForbidden, de.HTTPStatus)
}

func TestToDomainErrorFiberError(t *testing.T) {
	de := ToDomainError(fiber.ErrNotFound)
	assert.Equal(t, CodeNotFound, de.Code)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)

	de = ToDomainError(fiber.NewError(http.StatusBadRequest, "bad body"))
	assert.Equal(t, CodeValidationFailed, de.Code)
	assert.Equal(t, "bad body", de.Message)
}

func TestToDomainErrorUnknownIsInternal(t *testing.T) {
	cause := errors.New("connection reset")
	de := ToDomainError(cause)

	assert.Equal(t, CodeInternal, de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.ErrorIs(t, de, cause)
	assert.Nil(t, ToDomainError(nil))
}

func TestFieldValidationErrorDetails(t *testing.T) {
	err := NewFieldValidationError("Cannot Add Catalog Item", map[string][]string{
		"title": {"We need a title"},
	})

	de := ToDomainError(err)
	assert.Equal(t, CodeValidationFailed, de.Code)
	assert.Equal(t, []string{"We need a title"}, de.Details["title"])
}

func TestIDMismatch(t *testing.T) {
	de := ToDomainError(NewIDMismatch("a", "b"))
	assert.Equal(t, CodeIDMismatch, de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, "a", de.Details["path_id"])
}

func TestNewNotFound(t *testing.T) {
	de := ToDomainError(NewNotFound("catalog item"))
	assert.Equal(t, CodeNotFound, de.Code)
	assert.Equal(t, "catalog item not found", de.Message)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	assert.Empty(t, de.Details)
}
