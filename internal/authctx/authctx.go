package authctx

import (
	"context"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the signed-in user behind a request.
type Identity struct {
	UID         string
	DisplayName string
	Email       string
}

// Name is the display name shown to other users, "User" when unset.
func (i Identity) Name() string {
	if i.DisplayName == "" {
		return "User"
	}
	return i.DisplayName
}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns nil for anonymous requests.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	if id == nil || id.UID == "" {
		return nil
	}
	return id
}

func UID(ctx context.Context) (string, bool) {
	id := FromContext(ctx)
	if id == nil {
		return "", false
	}
	return id.UID, true
}
