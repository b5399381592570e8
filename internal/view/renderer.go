package view

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"sewalink/backend/internal/domain/gifts"
	"sewalink/backend/internal/domain/reviews"
	"sewalink/backend/internal/page"
)

// Renderer turns page state into markup. It is safe for concurrent use.
type Renderer struct {
	site string
	now  func() time.Time
	tmpl *template.Template
}

type layoutData struct {
	Title string
	Body  template.HTML
}

type pageData struct {
	*page.State

	SignInURL      string
	GiftHistoryURL string
	TabList        []page.Tab
	Average        string
	AverageValue   float64
	Activity       []Activity
	GiftItems      []gifts.Gift
	EmptyGifts     string
}

func New(site string, now func() time.Time) (*Renderer, error) {
	if site == "" {
		site = "SewaLink"
	}
	if now == nil {
		now = time.Now
	}
	r := &Renderer{site: site, now: now}

	funcs := template.FuncMap{
		"esc": func(s string) template.HTML {
			return template.HTML(Escape(s))
		},
		"stars":      Stars,
		"formatDate": FormatDate,
		"timeAgo": func(t time.Time) string {
			return TimeAgo(t, r.now())
		},
		"coins":  Coins,
		"amount": CoinAmount,
		"budget": Budget,
		"avatar": AvatarURL,
		"cover":  CoverURL,
		"tabIcon": func(t page.Tab) string {
			switch t {
			case page.TabReviews:
				return "star"
			case page.TabPortfolio, page.TabJobs:
				return "briefcase"
			case page.TabGifts:
				return "gift"
			}
			return "user"
		},
		"giftFilters": func() []string {
			return []string{gifts.FilterAll, gifts.FilterSent, gifts.FilterReceived}
		},
		"filterTitle": func(f string) string {
			return strings.ToUpper(f[:1]) + f[1:]
		},
		"ratingChoices": func() []int {
			return []int{5, 4, 3, 2, 1}
		},
	}

	tmpl := template.New("sewalink").Funcs(funcs)
	for _, src := range []string{layoutTemplate, profileTemplate, bodyTemplate, errorTemplates} {
		var err error
		if tmpl, err = tmpl.Parse(src); err != nil {
			return nil, fmt.Errorf("parse templates: %w", err)
		}
	}
	r.tmpl = tmpl
	return r, nil
}

// Title is the document title for the profile on screen.
func (r *Renderer) Title(st *page.State) string {
	return fmt.Sprintf("%s - %s Profile", st.Profile.Name(), r.site)
}

// Page renders the complete document.
func (r *Renderer) Page(st *page.State) (string, error) {
	body, err := r.exec("profile", r.data(st))
	if err != nil {
		return "", err
	}
	return r.exec("layout", layoutData{Title: r.Title(st), Body: template.HTML(body)})
}

// Content renders the tab bar and the active tab, the region replaced on
// every tab switch or mutation.
func (r *Renderer) Content(st *page.State) (string, error) {
	return r.exec("body", r.data(st))
}

// GiftList renders the gift list for one filter.
func (r *Renderer) GiftList(st *page.State, filter string) (string, error) {
	cp := *st
	cp.GiftFilter = filter
	return r.exec("giftList", r.data(&cp))
}

func (r *Renderer) NotFound() (string, error) {
	body, err := r.exec("notFound", nil)
	if err != nil {
		return "", err
	}
	return r.exec("layout", layoutData{Title: "User Not Found - " + r.site, Body: template.HTML(body)})
}

func (r *Renderer) LoadError(cause error) (string, error) {
	msg := "Something went wrong."
	if cause != nil {
		msg = cause.Error()
	}
	body, err := r.exec("loadError", msg)
	if err != nil {
		return "", err
	}
	return r.exec("layout", layoutData{Title: "Error - " + r.site, Body: template.HTML(body)})
}

func (r *Renderer) exec(name string, data any) (string, error) {
	var buf strings.Builder
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// giftHistoryURL links the full gift history: the viewer's own, or the
// profile owner's when visiting someone else.
func giftHistoryURL(st *page.State) string {
	if st.Own {
		return "gift-history.html"
	}
	return "gift-history.html?user=" + url.QueryEscape(st.Profile.ID)
}

func (r *Renderer) data(st *page.State) pageData {
	cp := *st
	if cp.Gifts == nil {
		cp.Gifts = gifts.Empty()
	}
	if !gifts.ValidFilter(cp.GiftFilter) {
		cp.GiftFilter = gifts.FilterAll
	}

	empty := "No gifts yet"
	if cp.GiftFilter != gifts.FilterAll {
		empty = "No gifts " + cp.GiftFilter + " yet"
	}

	return pageData{
		State:          &cp,
		SignInURL:      "sign-in.html?redirect=" + url.QueryEscape("profile.html?id="+cp.Profile.ID),
		GiftHistoryURL: giftHistoryURL(&cp),
		TabList:        page.Tabs,
		Average:        AverageRating(cp.Reviews),
		AverageValue:   reviews.Average(cp.Reviews),
		Activity:       RecentActivity(cp.Reviews, cp.Gifts, 5),
		GiftItems:      cp.Gifts.Filter(cp.GiftFilter),
		EmptyGifts:     empty,
	}
}
