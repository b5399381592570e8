package page

import (
	"context"
	"fmt"
	"log"
	"sync"

	"sewalink/backend/internal/authctx"
	"sewalink/backend/internal/docstore"
	"sewalink/backend/internal/domain/friends"
	"sewalink/backend/internal/domain/gifts"
)

// Session is one browser's profile page: the loaded state, the active tab
// and the live gift listeners for the profile on screen.
type Session struct {
	ID string

	loader *Loader

	mu     sync.Mutex
	token  uint64
	state  *State
	subs   []docstore.Subscription
	closed bool
}

func newSession(id string, loader *Loader) *Session {
	return &Session{ID: id, loader: loader}
}

// Load replaces the session's page with userID. Only the most recent call
// wins: an earlier load that finishes later returns ErrStale and changes
// nothing.
func (s *Session) Load(ctx context.Context, viewer *authctx.Identity, userID string) (*State, error) {
	s.mu.Lock()
	s.token++
	tok := s.token
	s.mu.Unlock()

	st, err := s.loader.Load(ctx, viewer, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok != s.token || s.closed {
		return nil, fmt.Errorf("%w: load of %s", ErrStale, userID)
	}

	s.stopLocked()
	if err != nil {
		s.state = nil
		return nil, err
	}
	st.Page = s.ID
	s.state = st

	uid := st.Profile.ID
	subs, err := s.loader.deps.Gifts.Watch(context.WithoutCancel(ctx), uid, func() {
		s.refreshGifts(tok, uid)
	})
	if err != nil {
		log.Printf("[session] %s: live gifts for %s unavailable: %v", s.ID, uid, err)
	}
	s.subs = subs

	return st.clone(), nil
}

// Snapshot returns a copy of the current page.
func (s *Session) Snapshot() (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return nil, ErrNoProfile
	}
	return s.state.clone(), nil
}

// For returns a copy of the current page, provided it shows userID.
func (s *Session) For(userID string) (*State, error) {
	st, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	if st.Profile.ID != userID {
		return nil, fmt.Errorf("%w: %s, not %s", ErrWrongProfile, st.Profile.ID, userID)
	}
	return st, nil
}

func (s *Session) SetTab(tab Tab) (*State, error) {
	return s.update(func(st *State) { st.Tab = tab })
}

func (s *Session) SetGiftFilter(filter string) (*State, error) {
	if !gifts.ValidFilter(filter) {
		filter = gifts.FilterAll
	}
	return s.update(func(st *State) { st.GiftFilter = filter })
}

func (s *Session) SetFriendStatus(status friends.Status) (*State, error) {
	return s.update(func(st *State) { st.Friend = status })
}

// ReloadPortfolio re-reads the portfolio of the profile on screen.
func (s *Session) ReloadPortfolio(ctx context.Context) (*State, error) {
	tok, uid, err := s.current()
	if err != nil {
		return nil, err
	}
	items, err := s.loader.deps.Portfolio.List(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return s.apply(tok, func(st *State) { st.Portfolio = items })
}

func (s *Session) ReloadReviews(ctx context.Context) (*State, error) {
	tok, uid, err := s.current()
	if err != nil {
		return nil, err
	}
	list, err := s.loader.deps.Reviews.List(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return s.apply(tok, func(st *State) { st.Reviews = list })
}

// Close stops the live listeners. The session is unusable afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopLocked()
	s.state = nil
}

func (s *Session) refreshGifts(tok uint64, uid string) {
	agg, err := s.loader.deps.Gifts.Aggregate(context.Background(), uid)
	if err != nil {
		log.Printf("[session] %s: refresh gifts for %s: %v", s.ID, uid, err)
		return
	}
	if _, err := s.apply(tok, func(st *State) { st.Gifts = agg }); err != nil && !IsErrStale(err) {
		log.Printf("[session] %s: %v", s.ID, err)
	}
}

func (s *Session) current() (uint64, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return 0, "", ErrNoProfile
	}
	return s.token, s.state.Profile.ID, nil
}

func (s *Session) update(fn func(*State)) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return nil, ErrNoProfile
	}
	next := s.state.clone()
	fn(next)
	s.state = next
	return next.clone(), nil
}

// apply is update guarded by the load token it was started under.
func (s *Session) apply(tok uint64, fn func(*State)) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok != s.token {
		return nil, ErrStale
	}
	if s.state == nil {
		return nil, ErrNoProfile
	}
	next := s.state.clone()
	fn(next)
	s.state = next
	return next.clone(), nil
}

func (s *Session) stopLocked() {
	for _, sub := range s.subs {
		sub.Stop()
	}
	s.subs = nil
}
