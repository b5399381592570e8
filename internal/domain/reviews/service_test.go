package reviews

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sewalink/backend/internal/authctx"
	"sewalink/backend/internal/docstore"
)

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
	assert.InDelta(t, 4.5, Average([]Review{{Rating: 4}, {Rating: 5}}), 1e-9)
	assert.InDelta(t, 3.0, Average([]Review{{Rating: 1}, {Rating: 2}, {Rating: 5}, {Rating: 4}}), 1e-9)
}

func TestFromRecordClampsRating(t *testing.T) {
	assert.Equal(t, 5.0, FromRecord(docstore.Record{Data: map[string]any{"rating": int64(9)}}).Rating)
	assert.Equal(t, 0.0, FromRecord(docstore.Record{Data: map[string]any{"rating": -1.5}}).Rating)
	assert.Equal(t, 0.0, FromRecord(docstore.Record{Data: map[string]any{}}).Rating)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	me := &authctx.Identity{UID: "u2", DisplayName: "Sita"}

	t.Run("stores review", func(t *testing.T) {
		store := docstore.NewMemory()
		now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		store.SetClock(func() time.Time { return now })
		svc := NewService(NewRepo(store))

		_, err := svc.Create(ctx, me, "https://img/sita.png", "u1", CreateInput{Rating: 4, Content: "  Great plumber  "})
		require.NoError(t, err)

		list, err := svc.List(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Sita", list[0].ReviewerName)
		assert.Equal(t, "u2", list[0].ReviewerID)
		assert.Equal(t, "Great plumber", list[0].Content)
		assert.Equal(t, 4.0, list[0].Rating)
		assert.Equal(t, now, list[0].CreatedAt)
	})

	t.Run("content is capped", func(t *testing.T) {
		store := docstore.NewMemory()
		svc := NewService(NewRepo(store))

		_, err := svc.Create(ctx, me, "", "u1", CreateInput{Rating: 5, Content: strings.Repeat("a", MaxContentLen+10)})
		require.NoError(t, err)
		list, _ := svc.List(ctx, "u1")
		require.Len(t, list, 1)
		assert.Len(t, list[0].Content, MaxContentLen)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc := NewService(NewRepo(docstore.NewMemory()))

		_, err := svc.Create(ctx, nil, "", "u1", CreateInput{Rating: 5, Content: "x"})
		assert.True(t, IsErrUnauthorized(err))

		_, err = svc.Create(ctx, me, "", "u2", CreateInput{Rating: 5, Content: "x"})
		assert.True(t, IsErrBadRequest(err))

		_, err = svc.Create(ctx, me, "", "u1", CreateInput{Rating: 0, Content: "x"})
		assert.True(t, IsErrBadRequest(err))

		_, err = svc.Create(ctx, me, "", "u1", CreateInput{Rating: 6, Content: "x"})
		assert.True(t, IsErrBadRequest(err))

		_, err = svc.Create(ctx, me, "", "u1", CreateInput{Rating: 3, Content: "   "})
		assert.True(t, IsErrBadRequest(err))
	})
}
