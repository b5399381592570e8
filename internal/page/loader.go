package page

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"sewalink/backend/internal/authctx"
	"sewalink/backend/internal/domain/friends"
	"sewalink/backend/internal/domain/gifts"
	"sewalink/backend/internal/domain/jobs"
	"sewalink/backend/internal/domain/portfolio"
	"sewalink/backend/internal/domain/profile"
	"sewalink/backend/internal/domain/reviews"
)

type LoaderDeps struct {
	Profiles  *profile.Repo
	Portfolio *portfolio.Service
	Reviews   *reviews.Service
	Jobs      *jobs.Repo
	Gifts     *gifts.Service
	Friends   *friends.Service
}

type Loader struct {
	deps LoaderDeps
}

func NewLoader(deps LoaderDeps) *Loader {
	return &Loader{deps: deps}
}

// Load assembles the page for userID as seen by viewer (nil when anonymous).
// A missing profile is profile.ErrNotFound; any other failure reading the
// profile is ErrLoad. Failures of the secondary fetches are logged and
// leave that section empty.
func (l *Loader) Load(ctx context.Context, viewer *authctx.Identity, userID string) (*State, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: no user id", profile.ErrNotFound)
	}

	p, err := l.deps.Profiles.Get(ctx, userID)
	if err != nil {
		if profile.IsErrNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	st := &State{
		Viewer:     viewer,
		Profile:    *p,
		Own:        viewer != nil && viewer.UID == p.ID,
		Tab:        TabOverview,
		GiftFilter: gifts.FilterAll,
		Portfolio:  []portfolio.Item{},
		Reviews:    []reviews.Review{},
		Jobs:       []jobs.Job{},
		Gifts:      gifts.Empty(),
		Friend:     friends.StatusNone,
	}

	g, gctx := errgroup.WithContext(ctx)

	if viewer != nil && !st.Own {
		g.Go(func() error {
			if err := l.deps.Profiles.RecordView(gctx, p.ID, viewer.UID); err != nil {
				log.Printf("[profile] view of %s by %s not recorded: %v", p.ID, viewer.UID, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		items, err := l.deps.Portfolio.List(gctx, p.ID)
		if err != nil {
			log.Printf("[profile] portfolio for %s: %v", p.ID, err)
			return nil
		}
		st.Portfolio = items
		return nil
	})
	g.Go(func() error {
		list, err := l.deps.Reviews.List(gctx, p.ID)
		if err != nil {
			log.Printf("[profile] reviews for %s: %v", p.ID, err)
			return nil
		}
		st.Reviews = list
		return nil
	})
	g.Go(func() error {
		list, err := l.deps.Jobs.ListByUser(gctx, p.ID)
		if err != nil {
			log.Printf("[profile] jobs for %s: %v", p.ID, err)
			return nil
		}
		st.Jobs = list
		return nil
	})
	g.Go(func() error {
		agg, err := l.deps.Gifts.Refresh(gctx, p.ID)
		if err != nil {
			log.Printf("[profile] gifts for %s: %v", p.ID, err)
			return nil
		}
		st.Gifts = agg
		return nil
	})
	g.Go(func() error {
		if viewer == nil {
			return nil
		}
		status, err := l.deps.Friends.Status(gctx, viewer.UID, p.ID)
		if err != nil {
			log.Printf("[profile] friend status %s->%s: %v", viewer.UID, p.ID, err)
			return nil
		}
		st.Friend = status
		return nil
	})
	_ = g.Wait()

	return st, nil
}
