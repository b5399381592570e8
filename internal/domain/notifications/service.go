package notifications

import (
	"context"
	"log"

	"firebase.google.com/go/v4/messaging"
)

// Pusher delivers a device push. *messaging.Client satisfies it.
type Pusher interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type Service struct {
	pusher Pusher
}

// NewService builds the push sender; a nil pusher disables device pushes.
func NewService(pusher Pusher) *Service {
	return &Service{pusher: pusher}
}

// Push sends n to a device token. Delivery is best effort: failures are
// logged and reported as false.
func (s *Service) Push(ctx context.Context, n Notification, token string) bool {
	if s.pusher == nil || token == "" {
		return false
	}

	data := map[string]string{"type": n.Type}
	for k, v := range n.Data {
		if str, ok := v.(string); ok {
			data[k] = str
		}
	}

	_, err := s.pusher.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Message,
		},
		Data: data,
	})
	if err != nil {
		log.Printf("[notifications] push to %s failed: %v", n.UserID, err)
		return false
	}
	return true
}
