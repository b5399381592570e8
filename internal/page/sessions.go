package page

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Sessions keeps page sessions for a sliding TTL. Expired or removed
// sessions are closed.
type Sessions struct {
	loader *Loader
	cache  *cache.Cache
}

func NewSessions(loader *Loader, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	c := cache.New(ttl, ttl/2)
	c.OnEvicted(func(id string, v any) {
		if sess, ok := v.(*Session); ok {
			sess.Close()
			log.Printf("[session] %s closed", id)
		}
	})
	return &Sessions{loader: loader, cache: c}
}

// Get returns the session for id and extends its lifetime.
func (s *Sessions) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	s.cache.SetDefault(id, v)
	return v.(*Session), true
}

func (s *Sessions) New() *Session {
	sess := newSession(uuid.NewString(), s.loader)
	s.cache.SetDefault(sess.ID, sess)
	return sess
}

func (s *Sessions) Remove(id string) {
	s.cache.Delete(id)
}

func (s *Sessions) Len() int {
	return s.cache.ItemCount()
}

// Close closes every session.
func (s *Sessions) Close() {
	for id := range s.cache.Items() {
		s.cache.Delete(id)
	}
}
