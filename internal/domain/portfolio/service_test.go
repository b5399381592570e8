package portfolio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sewalink/backend/internal/docstore"
)

type recordingRemover struct {
	calls []string
	err   error
}

func (r *recordingRemover) RemoveOwned(_ context.Context, uid, rawURL string) (bool, error) {
	r.calls = append(r.calls, uid+" "+rawURL)
	return r.err == nil, r.err
}

func seed(store *docstore.Memory) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	store.Put(ColPortfolio, "p1", map[string]any{"userId": "u1", "title": "Kitchen", "image": "gs://b/users/u1/k.png", "createdAt": base})
	store.Put(ColPortfolio, "p2", map[string]any{"userId": "u1", "title": "Bathroom", "createdAt": base.Add(time.Hour)})
	store.Put(ColPortfolio, "p3", map[string]any{"userId": "u2", "title": "Garden", "createdAt": base})
}

func TestList(t *testing.T) {
	store := docstore.NewMemory()
	seed(store)
	svc := NewService(NewRepo(store), nil)

	items, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Bathroom", items[0].Title)
	assert.Equal(t, "Kitchen", items[1].Title)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes item and image", func(t *testing.T) {
		store := docstore.NewMemory()
		seed(store)
		rm := &recordingRemover{}
		svc := NewService(NewRepo(store), rm)

		require.NoError(t, svc.Delete(ctx, "u1", "p1"))
		assert.Equal(t, 2, store.Len(ColPortfolio))
		assert.Equal(t, []string{"u1 gs://b/users/u1/k.png"}, rm.calls)
	})

	t.Run("image cleanup failure is not surfaced", func(t *testing.T) {
		store := docstore.NewMemory()
		seed(store)
		svc := NewService(NewRepo(store), &recordingRemover{err: errors.New("storage down")})

		require.NoError(t, svc.Delete(ctx, "u1", "p1"))
		assert.Equal(t, 2, store.Len(ColPortfolio))
	})

	t.Run("other user's item", func(t *testing.T) {
		store := docstore.NewMemory()
		seed(store)
		svc := NewService(NewRepo(store), nil)

		err := svc.Delete(ctx, "u1", "p3")
		assert.True(t, IsErrUnauthorized(err))
		assert.Equal(t, 3, store.Len(ColPortfolio))
	})

	t.Run("missing item", func(t *testing.T) {
		store := docstore.NewMemory()
		svc := NewService(NewRepo(store), nil)
		assert.True(t, IsErrNotFound(svc.Delete(ctx, "u1", "nope")))
		assert.True(t, IsErrBadRequest(svc.Delete(ctx, "u1", " ")))
	})
}
