package repository

import (
	"context"
	"testing"

	domainBookmark "github.com/kabang/kabang/domains/bookmark"
	domainKabang "github.com/kabang/kabang/domains/kabang"
	pkgError "github.com/kabang/kabang/pkg/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkRepo_CRUD(t *testing.T) {
	repo := NewBookmarkGormRepository(staticSource{db: newTestDB(t)})
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))

	b := domainBookmark.Bookmark{URL: "https://go.dev/doc", Notes: strPtr("read later")}
	require.NoError(t, repo.Create(ctx, &b))
	assert.NotZero(t, b.ID)

	b.Category = strPtr("Docs")
	require.NoError(t, repo.Update(ctx, &b))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "read later", *got.Notes)
	assert.Equal(t, "Docs", *got.Category)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.Delete(ctx, b.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, b.ID)
	var notFound pkgError.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestMemorySnapshotStore(t *testing.T) {
	store := NewMemorySnapshotStore()
	ctx := context.Background()

	empty, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, empty)

	bangs := []domainKabang.Kabang{{Bang: "g", URL: "https://google.com"}}
	require.NoError(t, store.Save(ctx, bangs))
	bangs[0].URL = "mutated"

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "https://google.com", loaded[0].URL)
}
