package page

import (
	"sewalink/backend/internal/authctx"
	"sewalink/backend/internal/domain/friends"
	"sewalink/backend/internal/domain/gifts"
	"sewalink/backend/internal/domain/jobs"
	"sewalink/backend/internal/domain/portfolio"
	"sewalink/backend/internal/domain/profile"
	"sewalink/backend/internal/domain/reviews"
)

type Tab string

const (
	TabOverview  Tab = "overview"
	TabPortfolio Tab = "portfolio"
	TabReviews   Tab = "reviews"
	TabJobs      Tab = "jobs"
	TabGifts     Tab = "gifts"
)

// Tabs in display order.
var Tabs = []Tab{TabOverview, TabPortfolio, TabReviews, TabJobs, TabGifts}

func ParseTab(s string) (Tab, bool) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

func (t Tab) Title() string {
	switch t {
	case TabPortfolio:
		return "Portfolio"
	case TabReviews:
		return "Reviews"
	case TabJobs:
		return "Jobs"
	case TabGifts:
		return "Gifts"
	}
	return "Overview"
}

// State is everything one rendered profile page needs.
type State struct {
	// Page is the id of the page session holding this state.
	Page string

	Viewer  *authctx.Identity
	Profile profile.Profile
	Own     bool

	Tab        Tab
	GiftFilter string

	Portfolio []portfolio.Item
	Reviews   []reviews.Review
	Jobs      []jobs.Job
	Gifts     *gifts.Aggregate
	Friend    friends.Status
}

// SignedIn reports whether someone is viewing.
func (s *State) SignedIn() bool {
	return s.Viewer != nil
}

func (s *State) clone() *State {
	cp := *s
	return &cp
}
