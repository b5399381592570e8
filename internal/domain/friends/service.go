package friends

import (
	"context"
	"fmt"
	"log"
	"sync"

	"sewalink/backend/internal/authctx"
	"sewalink/backend/internal/docstore"
	"sewalink/backend/internal/domain/notifications"
	"sewalink/backend/internal/domain/profile"
)

type Service struct {
	store    docstore.Store
	notifier *notifications.Service

	inflight sync.Map // "viewer|target" -> struct{}
}

func NewService(store docstore.Store, notifier *notifications.Service) *Service {
	return &Service{store: store, notifier: notifier}
}

// Status resolves how viewerID relates to targetID. An anonymous viewer,
// or a viewer looking at themselves, is always StatusNone.
func (s *Service) Status(ctx context.Context, viewerID, targetID string) (Status, error) {
	if viewerID == "" || targetID == "" || viewerID == targetID {
		return StatusNone, nil
	}

	rels, err := s.relationships(ctx, viewerID, targetID)
	if err != nil {
		return StatusNone, err
	}
	if len(rels) > 0 {
		return StatusFriends, nil
	}

	reqs, err := s.pendingRequests(ctx, viewerID, targetID)
	if err != nil {
		return StatusNone, err
	}
	if len(reqs) > 0 {
		return StatusPending, nil
	}
	return StatusNone, nil
}

// Toggle advances the viewer's relationship with target one step:
// none sends a request, pending cancels it, friends unfriends.
func (s *Service) Toggle(ctx context.Context, viewer *authctx.Identity, target profile.Profile) (Status, error) {
	if viewer == nil || viewer.UID == "" {
		return StatusNone, fmt.Errorf("%w: sign in required", ErrUnauthorized)
	}
	if target.ID == "" || target.ID == viewer.UID {
		return StatusNone, fmt.Errorf("%w: invalid friend target", ErrBadRequest)
	}

	key := viewer.UID + "|" + target.ID
	if _, busy := s.inflight.LoadOrStore(key, struct{}{}); busy {
		return StatusNone, ErrBusy
	}
	defer s.inflight.Delete(key)

	rels, err := s.relationships(ctx, viewer.UID, target.ID)
	if err != nil {
		return StatusNone, err
	}
	if len(rels) > 0 {
		if err := s.deleteAll(ctx, ColFriends, rels); err != nil {
			return StatusFriends, fmt.Errorf("failed to unfriend: %w", err)
		}
		log.Printf("[friends] %s unfriended %s", viewer.UID, target.ID)
		return StatusNone, nil
	}

	reqs, err := s.pendingRequests(ctx, viewer.UID, target.ID)
	if err != nil {
		return StatusNone, err
	}
	if len(reqs) > 0 {
		if err := s.deleteAll(ctx, ColFriendRequests, reqs); err != nil {
			return StatusPending, fmt.Errorf("failed to cancel friend request: %w", err)
		}
		log.Printf("[friends] %s cancelled request to %s", viewer.UID, target.ID)
		return StatusNone, nil
	}

	note := notifications.FriendRequest(viewer, target.ID)
	err = s.store.Batch(ctx, []docstore.Op{
		docstore.AddOp(ColFriendRequests, map[string]any{
			"senderId":     viewer.UID,
			"senderName":   viewer.Name(),
			"receiverId":   target.ID,
			"receiverName": target.Name(),
			"status":       requestPending,
			"createdAt":    docstore.ServerTime,
		}),
		note.Op(),
	})
	if err != nil {
		return StatusNone, fmt.Errorf("failed to send friend request: %w", err)
	}

	if s.notifier != nil {
		s.notifier.Push(ctx, note, target.FCMToken)
	}
	log.Printf("[friends] %s sent request to %s", viewer.UID, target.ID)
	return StatusPending, nil
}

// relationships returns the ids of accepted relationship records joining a and b.
func (s *Service) relationships(ctx context.Context, a, b string) ([]string, error) {
	recs, err := s.store.Query(ctx, docstore.Collection(ColFriends).
		Where("users", "array-contains", a).
		Where("status", "==", relAccepted))
	if err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}

	var ids []string
	for _, rec := range recs {
		for _, u := range rec.Strings("users") {
			if u == b {
				ids = append(ids, rec.ID)
				break
			}
		}
	}
	return ids, nil
}

func (s *Service) pendingRequests(ctx context.Context, sender, receiver string) ([]string, error) {
	recs, err := s.store.Query(ctx, docstore.Collection(ColFriendRequests).
		Where("senderId", "==", sender).
		Where("receiverId", "==", receiver).
		Where("status", "==", requestPending))
	if err != nil {
		return nil, fmt.Errorf("failed to load friend requests: %w", err)
	}

	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.ID)
	}
	return ids, nil
}

// deleteAll removes ids in as few batches as the store allows.
func (s *Service) deleteAll(ctx context.Context, collection string, ids []string) error {
	for start := 0; start < len(ids); start += docstore.MaxBatchOps {
		end := min(start+docstore.MaxBatchOps, len(ids))
		ops := make([]docstore.Op, 0, end-start)
		for _, id := range ids[start:end] {
			ops = append(ops, docstore.DeleteOp(collection, id))
		}
		if err := s.store.Batch(ctx, ops); err != nil {
			return err
		}
	}
	return nil
}
