package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sewalink/backend/internal/docstore"
)

func TestRepoGet(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	store.Put(ColUsers, "u1", map[string]any{
		"displayName": " Asha  Rai ",
		"email":       "asha@example.com",
		"skills":      []string{"plumbing", "wiring"},
		"coins":       1200,
	})
	repo := NewRepo(store)

	p, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, "Asha Rai", p.Name())
	assert.Equal(t, "asha", p.Handle())
	assert.Equal(t, []string{"plumbing", "wiring"}, p.Skills)
	assert.Equal(t, int64(1200), p.Coins)

	_, err = repo.Get(ctx, "nobody")
	assert.True(t, IsErrNotFound(err))

	_, err = repo.Get(ctx, " ")
	assert.True(t, IsErrBadRequest(err))
}

func TestRepoRecordView(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	store.Put(ColUsers, "u1", map[string]any{"displayName": "Asha"})
	repo := NewRepo(store)

	require.NoError(t, repo.RecordView(ctx, "u1", "u2"))
	require.NoError(t, repo.RecordView(ctx, "u1", "u3"))

	p, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.ProfileViews)
	assert.Equal(t, 2, store.Len(ColProfileViews))

	assert.Error(t, repo.RecordView(ctx, "ghost", "u2"))
}

func TestRepoSetPhoto(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	store.Put(ColUsers, "u1", map[string]any{"displayName": "Asha"})
	repo := NewRepo(store)

	require.NoError(t, repo.SetPhoto(ctx, "u1", "cover", "https://cdn.example/cover.png"))
	p, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/cover.png", p.CoverPhoto)
	assert.Equal(t, "Asha", p.DisplayName)

	err = repo.SetPhoto(ctx, "u1", "banner", "x")
	assert.True(t, IsErrBadRequest(err))
}
