package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/docstore"
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/repository"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

func TestResolveCreatesOncePerSubject(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory(repository.Indexes...)
	svc := NewIdentityService(nil)

	first, err := svc.Resolve(ctx, store.OpenSession(), "carl@aol.com")
	require.NoError(t, err)
	second, err := svc.Resolve(ctx, store.OpenSession(), "carl@aol.com")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "carl@aol.com", second.Sub)
	assert.Equal(t, 1, store.Count(domain.CollectionUsers))

	other, err := svc.Resolve(ctx, store.OpenSession(), "beth@aol.com")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
	assert.Equal(t, 2, store.Count(domain.CollectionUsers))
}

func TestResolveConcurrentFirstLookups(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory(repository.Indexes...)
	svc := NewIdentityService(nil)

	const workers = 8
	ids := make([]uuid.UUID, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user, err := svc.Resolve(ctx, store.OpenSession(), "race@aol.com")
			errs[i] = err
			if err == nil {
				ids[i] = user.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Equal(t, 1, store.Count(domain.CollectionUsers))
}

func TestResolveRequiresSubject(t *testing.T) {
	_, err := NewIdentityService(nil).Resolve(context.Background(), docstore.NewMemory().OpenSession(), "")
	requireCode(t, err, apperrors.CodeUnauthorized)
}

func TestIdentityGet(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory(repository.Indexes...)
	svc := NewIdentityService(nil)

	user, err := svc.Resolve(ctx, store.OpenSession(), "carl@aol.com")
	require.NoError(t, err)

	got, err := svc.Get(ctx, store.OpenSession(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, *user, *got)

	_, err = svc.Get(ctx, store.OpenSession(), uuid.New())
	requireCode(t, err, apperrors.CodeNotFound)
}
