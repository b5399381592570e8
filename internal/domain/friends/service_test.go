package friends

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sewalink/backend/internal/authctx"
	"sewalink/backend/internal/docstore"
	"sewalink/backend/internal/domain/notifications"
	"sewalink/backend/internal/domain/profile"
)

var (
	ram  = &authctx.Identity{UID: "u1", DisplayName: "Ram"}
	sita = profile.Profile{ID: "u2", DisplayName: "Sita", FCMToken: "tok-sita"}
)

type fakePusher struct{ tokens []string }

func (f *fakePusher) Send(_ context.Context, m *messaging.Message) (string, error) {
	f.tokens = append(f.tokens, m.Token)
	return "ok", nil
}

// gatedStore blocks the first query until release is closed.
type gatedStore struct {
	*docstore.Memory
	entered chan struct{}
	release chan struct{}
}

func (g *gatedStore) Query(ctx context.Context, q docstore.Query) ([]docstore.Record, error) {
	select {
	case g.entered <- struct{}{}:
		<-g.release
	default:
	}
	return g.Memory.Query(ctx, q)
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Add Friend", StatusNone.Label())
	assert.Equal(t, "Request Sent", StatusPending.Label())
	assert.Equal(t, "Unfriend", StatusFriends.Label())

	assert.Equal(t, StatusPending, StatusNone.Next())
	assert.Equal(t, StatusNone, StatusPending.Next())
	assert.Equal(t, StatusNone, StatusFriends.Next())
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	store.Put(ColFriends, "f1", map[string]any{"users": []string{"u1", "u3"}, "status": "accepted"})
	store.Put(ColFriends, "f2", map[string]any{"users": []string{"u1", "u4"}, "status": "blocked"})
	store.Put(ColFriendRequests, "r1", map[string]any{"senderId": "u1", "receiverId": "u2", "status": "pending"})
	store.Put(ColFriendRequests, "r2", map[string]any{"senderId": "u5", "receiverId": "u1", "status": "pending"})
	svc := NewService(store, nil)

	cases := []struct {
		name           string
		viewer, target string
		want           Status
	}{
		{"friends", "u1", "u3", StatusFriends},
		{"friends either side", "u3", "u1", StatusFriends},
		{"pending outgoing", "u1", "u2", StatusPending},
		{"incoming request is not pending", "u1", "u5", StatusNone},
		{"non accepted relationship", "u1", "u4", StatusNone},
		{"anonymous", "", "u3", StatusNone},
		{"self", "u1", "u1", StatusNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Status(ctx, tc.viewer, tc.target)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestToggleCycle(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	pusher := &fakePusher{}
	svc := NewService(store, notifications.NewService(pusher))

	st, err := svc.Toggle(ctx, ram, sita)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, st)
	assert.Equal(t, 1, store.Len(ColFriendRequests))
	assert.Equal(t, 1, store.Len(notifications.ColNotifications))
	assert.Equal(t, []string{"tok-sita"}, pusher.tokens)

	reqs, err := store.Query(ctx, docstore.Collection(ColFriendRequests))
	require.NoError(t, err)
	assert.Equal(t, "Ram", reqs[0].String("senderName"))
	assert.Equal(t, "Sita", reqs[0].String("receiverName"))
	assert.Equal(t, "pending", reqs[0].String("status"))

	got, err := svc.Status(ctx, ram.UID, sita.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got)

	st, err = svc.Toggle(ctx, ram, sita)
	require.NoError(t, err)
	assert.Equal(t, StatusNone, st)
	assert.Equal(t, 0, store.Len(ColFriendRequests))
	assert.Equal(t, 1, store.Len(notifications.ColNotifications))
}

func TestToggleUnfriendRemovesEveryMatch(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	store.Put(ColFriends, "f1", map[string]any{"users": []string{"u1", "u2"}, "status": "accepted"})
	store.Put(ColFriends, "f2", map[string]any{"users": []string{"u2", "u1"}, "status": "accepted"})
	store.Put(ColFriends, "f3", map[string]any{"users": []string{"u1", "u9"}, "status": "accepted"})
	svc := NewService(store, nil)

	st, err := svc.Toggle(ctx, ram, sita)
	require.NoError(t, err)
	assert.Equal(t, StatusNone, st)
	assert.Equal(t, 1, store.Len(ColFriends))

	_, err = store.Get(ctx, ColFriends, "f3")
	assert.NoError(t, err)
}

func TestToggleRequestIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	store.FailOn(notifications.ColNotifications, errors.New("quota exceeded"))
	pusher := &fakePusher{}
	svc := NewService(store, notifications.NewService(pusher))

	st, err := svc.Toggle(ctx, ram, sita)
	require.Error(t, err)
	assert.Equal(t, StatusNone, st)
	assert.Equal(t, 0, store.Len(ColFriendRequests))
	assert.Empty(t, pusher.tokens)

	store.FailOn(notifications.ColNotifications, nil)
	got, err := svc.Status(ctx, ram.UID, sita.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusNone, got)
}

func TestToggleRejects(t *testing.T) {
	ctx := context.Background()
	svc := NewService(docstore.NewMemory(), nil)

	_, err := svc.Toggle(ctx, nil, sita)
	assert.True(t, IsErrUnauthorized(err))

	_, err = svc.Toggle(ctx, ram, profile.Profile{ID: "u1"})
	assert.True(t, IsErrBadRequest(err))
}

func TestToggleConcurrentIsBusy(t *testing.T) {
	ctx := context.Background()
	store := &gatedStore{
		Memory:  docstore.NewMemory(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewService(store, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Toggle(ctx, ram, sita)
		done <- err
	}()
	<-store.entered

	_, err := svc.Toggle(ctx, ram, sita)
	assert.True(t, IsErrBusy(err))

	close(store.release)
	require.NoError(t, <-done)

	// the guard is released once the first toggle settles
	st, err := svc.Toggle(ctx, ram, sita)
	require.NoError(t, err)
	assert.Equal(t, StatusNone, st)
}
