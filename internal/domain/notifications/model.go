package notifications

import (
	"time"

	"sewalink/backend/internal/authctx"
	"sewalink/backend/internal/docstore"
)

const (
	ColNotifications = "notifications"

	TypeFriendRequest = "friend_request"
)

// Notification is an in-app notification addressed to UserID.
type Notification struct {
	ID        string         `json:"id,omitempty"`
	UserID    string         `json:"userId"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	Read      bool           `json:"read"`
	CreatedAt time.Time      `json:"createdAt"`
}

// FriendRequest builds the notification the receiver gets when sender asks
// to be friends.
func FriendRequest(sender *authctx.Identity, receiverID string) Notification {
	name := sender.Name()
	return Notification{
		UserID:  receiverID,
		Type:    TypeFriendRequest,
		Title:   "Friend Request",
		Message: name + " sent you a friend request",
		Data: map[string]any{
			"senderId":   sender.UID,
			"senderName": name,
		},
	}
}

// Fields is the stored shape; createdAt is assigned by the store.
func (n Notification) Fields() map[string]any {
	data := n.Data
	if data == nil {
		data = map[string]any{}
	}
	return map[string]any{
		"userId":    n.UserID,
		"type":      n.Type,
		"title":     n.Title,
		"message":   n.Message,
		"data":      data,
		"read":      n.Read,
		"createdAt": docstore.ServerTime,
	}
}

// Op adds the notification as part of a batch.
func (n Notification) Op() docstore.Op {
	return docstore.AddOp(ColNotifications, n.Fields())
}

func FromRecord(r docstore.Record) Notification {
	return Notification{
		ID:        r.ID,
		UserID:    r.String("userId"),
		Type:      r.String("type"),
		Title:     r.String("title"),
		Message:   r.String("message"),
		Data:      r.Map("data"),
		Read:      r.Bool("read"),
		CreatedAt: r.Time("createdAt"),
	}
}
