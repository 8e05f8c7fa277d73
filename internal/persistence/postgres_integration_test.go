//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/spec-kit/issue-tracker/internal/docstore"
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/repository"
)

// setupPostgres starts a throwaway database, applies the migrations and
// returns a document store backed by it.
func setupPostgres(t *testing.T) *docstore.Postgres {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("issues"),
		postgres.WithUsername("issues"),
		postgres.WithPassword("issues"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, RunMigrations(ctx, pool, zap.NewNop()))
	// migrations are idempotent
	require.NoError(t, RunMigrations(ctx, pool, zap.NewNop()))

	return docstore.NewPostgres(pool)
}

func TestIntegrationPostgresDocumentStore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	store := setupPostgres(t)
	require.NoError(t, store.Ping(ctx))

	t.Run("users.sub is unique", func(t *testing.T) {
		s := store.OpenSession()
		repository.NewUserRepository(s).Store(domain.UserInformation{ID: uuid.New(), Sub: "beth@aol.com"})
		require.NoError(t, s.SaveChanges(ctx))

		s = store.OpenSession()
		repository.NewUserRepository(s).Store(domain.UserInformation{ID: uuid.New(), Sub: "beth@aol.com"})
		assert.ErrorIs(t, s.SaveChanges(ctx), docstore.ErrConflict)

		found, err := repository.NewUserRepository(store.OpenSession()).GetBySub(ctx, "beth@aol.com")
		require.NoError(t, err)
		assert.Equal(t, "beth@aol.com", found.Sub)
	})

	t.Run("sub index does not apply to other collections", func(t *testing.T) {
		s := store.OpenSession()
		issues := repository.NewIssueRepository(s)
		issues.Store(domain.UserIssue{ID: uuid.New(), Description: "a"})
		issues.Store(domain.UserIssue{ID: uuid.New(), Description: "a"})
		assert.NoError(t, s.SaveChanges(ctx))
	})

	t.Run("stale write is rejected", func(t *testing.T) {
		item := domain.CatalogItem{ID: uuid.New(), Title: "notepad", Description: "editor", AddedBy: "sue@aol.com", CreatedAt: time.Now().UTC()}
		seed := store.OpenSession()
		repository.NewCatalogRepository(seed).Store(item)
		require.NoError(t, seed.SaveChanges(ctx))

		first, second := store.OpenSession(), store.OpenSession()
		a, err := repository.NewCatalogRepository(first).Load(ctx, item.ID)
		require.NoError(t, err)
		b, err := repository.NewCatalogRepository(second).Load(ctx, item.ID)
		require.NoError(t, err)

		a.Description = "from first"
		repository.NewCatalogRepository(first).Store(*a)
		require.NoError(t, first.SaveChanges(ctx))

		b.Description = "from second"
		repository.NewCatalogRepository(second).Store(*b)
		assert.ErrorIs(t, second.SaveChanges(ctx), docstore.ErrConcurrency)

		// the winning session tracked the committed version
		a.Description = "again"
		repository.NewCatalogRepository(first).Store(*a)
		require.NoError(t, first.SaveChanges(ctx))

		got, err := repository.NewCatalogRepository(store.OpenSession()).Load(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "again", got.Description)
	})

	t.Run("failed commit writes nothing", func(t *testing.T) {
		id := uuid.New()
		s := store.OpenSession()
		repository.NewCatalogRepository(s).Store(domain.CatalogItem{ID: id, Title: "atomic"})
		repository.NewUserRepository(s).Store(domain.UserInformation{ID: uuid.New(), Sub: "beth@aol.com"})
		assert.ErrorIs(t, s.SaveChanges(ctx), docstore.ErrConflict)

		_, err := repository.NewCatalogRepository(store.OpenSession()).Load(ctx, id)
		assert.ErrorIs(t, err, docstore.ErrNotFound)
	})

	t.Run("filters and ordering", func(t *testing.T) {
		s := store.OpenSession()
		removedAt := time.Now().UTC()
		live := domain.CatalogItem{ID: uuid.New(), Title: "vim", AddedBy: "sue@aol.com", CreatedAt: time.Now().UTC()}
		gone := domain.CatalogItem{ID: uuid.New(), Title: "emacs", AddedBy: "sue@aol.com", CreatedAt: time.Now().UTC(), RemovedAt: &removedAt}
		repo := repository.NewCatalogRepository(s)
		repo.Store(live)
		repo.Store(gone)
		require.NoError(t, s.SaveChanges(ctx))

		repo = repository.NewCatalogRepository(store.OpenSession())

		got, err := repo.GetActive(ctx, live.ID)
		require.NoError(t, err)
		assert.Equal(t, "vim", got.Title)

		_, err = repo.GetActive(ctx, gone.ID)
		assert.ErrorIs(t, err, docstore.ErrNotFound)

		active, err := repo.ListActive(ctx)
		require.NoError(t, err)
		ids := make([]uuid.UUID, 0, len(active))
		for _, item := range active {
			assert.Nil(t, item.RemovedAt)
			ids = append(ids, item.ID)
		}
		assert.Contains(t, ids, live.ID)
		assert.NotContains(t, ids, gone.ID)
		assert.Equal(t, live.ID, ids[len(ids)-1])
	})
}
