package gifts

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"sewalink/backend/internal/docstore"
)

type Service struct {
	store docstore.Store
	cache *cache.Cache
}

func NewService(store docstore.Store, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Service{
		store: store,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Aggregate returns the cached aggregate for uid, computing it on a miss.
func (s *Service) Aggregate(ctx context.Context, uid string) (*Aggregate, error) {
	if v, ok := s.cache.Get(uid); ok {
		return v.(*Aggregate), nil
	}
	return s.Refresh(ctx, uid)
}

// Refresh recomputes uid's aggregate from the store and caches it.
func (s *Service) Refresh(ctx context.Context, uid string) (*Aggregate, error) {
	if uid == "" {
		return Empty(), nil
	}

	var sent, received []docstore.Record
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sent, err = s.store.Query(gctx, docstore.Collection(ColGifts).Where("senderId", "==", uid))
		return err
	})
	g.Go(func() error {
		var err error
		received, err = s.store.Query(gctx, docstore.Collection(ColGifts).Where("receiverId", "==", uid))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load gifts: %w", err)
	}

	agg := build(sent, received)
	s.cache.Set(uid, agg, cache.DefaultExpiration)
	return agg, nil
}

func (s *Service) Invalidate(uid string) {
	s.cache.Delete(uid)
}

// Watch observes new gifts sent by and sent to uid. Each change drops the
// cached aggregate before onChange runs. The caller owns the returned
// subscriptions and must stop them.
func (s *Service) Watch(ctx context.Context, uid string, onChange func()) ([]docstore.Subscription, error) {
	queries := []docstore.Query{
		docstore.Collection(ColGifts).Where("senderId", "==", uid).OrderBy("createdAt", docstore.Desc).Limit(1),
		docstore.Collection(ColGifts).Where("receiverId", "==", uid).OrderBy("createdAt", docstore.Desc).Limit(1),
	}

	subs := make([]docstore.Subscription, 0, len(queries))
	for _, q := range queries {
		sub, err := s.store.Subscribe(ctx, q, func() {
			s.Invalidate(uid)
			if onChange != nil {
				onChange()
			}
		})
		if err != nil {
			for _, prev := range subs {
				prev.Stop()
			}
			return nil, fmt.Errorf("failed to watch gifts: %w", err)
		}
		subs = append(subs, sub)
	}
	log.Printf("[gifts] watching %s (%d listeners)", uid, len(subs))
	return subs, nil
}
