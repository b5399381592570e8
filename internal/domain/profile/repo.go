package profile

import (
	"context"
	"fmt"
	"strings"

	"sewalink/backend/internal/docstore"
)

type Repo struct {
	store docstore.Store
}

func NewRepo(store docstore.Store) *Repo {
	return &Repo{store: store}
}

func (r *Repo) Get(ctx context.Context, uid string) (*Profile, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}

	rec, err := r.store.Get(ctx, ColUsers, uid)
	if err != nil {
		if docstore.IsErrNotFound(err) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, uid)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	p := FromRecord(*rec)
	return &p, nil
}

// RecordView logs one profileViews event and bumps the owner's counter.
func (r *Repo) RecordView(ctx context.Context, uid, viewerID string) error {
	if uid == "" || viewerID == "" {
		return fmt.Errorf("%w: uid and viewerId are required", ErrBadRequest)
	}

	if _, err := r.store.Add(ctx, ColProfileViews, map[string]any{
		"userId":   uid,
		"viewerId": viewerID,
		"viewedAt": docstore.ServerTime,
	}); err != nil {
		return fmt.Errorf("failed to record profile view: %w", err)
	}

	if err := r.store.Increment(ctx, ColUsers, uid, "profileViews", 1); err != nil {
		return fmt.Errorf("failed to increment profile views: %w", err)
	}
	return nil
}

// SetPhoto stores an uploaded avatar or cover URL on the profile.
func (r *Repo) SetPhoto(ctx context.Context, uid, kind, url string) error {
	field, ok := PhotoField(kind)
	if !ok {
		return fmt.Errorf("%w: unknown photo kind %q", ErrBadRequest, kind)
	}
	if uid == "" || url == "" {
		return fmt.Errorf("%w: uid and url are required", ErrBadRequest)
	}

	if err := r.store.Update(ctx, ColUsers, uid, map[string]any{
		field:       url,
		"updatedAt": docstore.ServerTime,
	}); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
