package notifications

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sewalink/backend/internal/authctx"
	"sewalink/backend/internal/docstore"
)

type fakePusher struct {
	sent []*messaging.Message
	err  error
}

func (f *fakePusher) Send(_ context.Context, m *messaging.Message) (string, error) {
	f.sent = append(f.sent, m)
	if f.err != nil {
		return "", f.err
	}
	return "projects/p/messages/1", nil
}

func TestFriendRequest(t *testing.T) {
	n := FriendRequest(&authctx.Identity{UID: "u1", DisplayName: "Ram"}, "u2")
	assert.Equal(t, "u2", n.UserID)
	assert.Equal(t, TypeFriendRequest, n.Type)
	assert.Equal(t, "Friend Request", n.Title)
	assert.Equal(t, "Ram sent you a friend request", n.Message)
	assert.Equal(t, map[string]any{"senderId": "u1", "senderName": "Ram"}, n.Data)

	anon := FriendRequest(&authctx.Identity{UID: "u3"}, "u2")
	assert.Equal(t, "User sent you a friend request", anon.Message)
}

func TestOpStoresNotification(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()

	n := FriendRequest(&authctx.Identity{UID: "u1", DisplayName: "Ram"}, "u2")
	require.NoError(t, store.Batch(ctx, []docstore.Op{n.Op()}))

	recs, err := store.Query(ctx, docstore.Collection(ColNotifications).Where("userId", "==", "u2"))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	got := FromRecord(recs[0])
	assert.Equal(t, "Friend Request", got.Title)
	assert.False(t, got.Read)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, "u1", got.Data["senderId"])
}

func TestPush(t *testing.T) {
	ctx := context.Background()
	n := FriendRequest(&authctx.Identity{UID: "u1", DisplayName: "Ram"}, "u2")

	p := &fakePusher{}
	svc := NewService(p)
	assert.True(t, svc.Push(ctx, n, "tok"))
	require.Len(t, p.sent, 1)
	assert.Equal(t, "tok", p.sent[0].Token)
	assert.Equal(t, "Friend Request", p.sent[0].Notification.Title)
	assert.Equal(t, "u1", p.sent[0].Data["senderId"])
	assert.Equal(t, TypeFriendRequest, p.sent[0].Data["type"])

	assert.False(t, svc.Push(ctx, n, ""))
	assert.False(t, NewService(nil).Push(ctx, n, "tok"))
	assert.False(t, NewService(&fakePusher{err: errors.New("unregistered")}).Push(ctx, n, "tok"))
}
