package docstore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestBuildQuery(t *testing.T) {
	id := uuid.MustParse("8a5c7c1e-4a43-4c53-9a8e-0d5f9f6c2e11")

	query, args := buildQuery("catalog_items", Where(Eq("id", id), IsNull("removedAt")))

	assert.Equal(t,
		"SELECT id, data, version FROM documents WHERE collection=$1 AND data->>$2 = $3 AND data->>$4 IS NULL ORDER BY created_at ASC, id ASC",
		query)
	assert.Equal(t, []any{"catalog_items", "id", id.String(), "removedAt"}, args)
}

func TestBuildQueryWithoutConditions(t *testing.T) {
	query, args := buildQuery("users", Filter{})
	assert.Contains(t, query, "WHERE collection=$1 ORDER BY")
	assert.Equal(t, []any{"users"}, args)
}

func TestTranslateUniqueViolation(t *testing.T) {
	err := translate(fmt.Errorf("commit: %w", &pgconn.PgError{Code: "23505", ConstraintName: "documents_users_sub_key"}))
	assert.ErrorIs(t, err, ErrConflict)

	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
}
