package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"sewalink/backend/internal/authctx"
	"sewalink/backend/internal/domain/portfolio"
	"sewalink/backend/internal/domain/profile"
	"sewalink/backend/internal/domain/reviews"
	"sewalink/backend/internal/httpjson"
	"sewalink/backend/internal/page"
	"sewalink/backend/internal/view"
)

// PageHeader carries the page session id rendered into each profile page.
// Each full page load gets its own session.
const PageHeader = "X-Page-Session"

// Pages serves the server-rendered profile page and its fragments.
type Pages struct {
	sessions  *page.Sessions
	renderer  *view.Renderer
	profiles  *profile.Repo
	portfolio *portfolio.Service
	reviews   *reviews.Service
}

func NewPages(sessions *page.Sessions, renderer *view.Renderer, profiles *profile.Repo, portfolioSvc *portfolio.Service, reviewsSvc *reviews.Service) *Pages {
	return &Pages{
		sessions:  sessions,
		renderer:  renderer,
		profiles:  profiles,
		portfolio: portfolioSvc,
		reviews:   reviewsSvc,
	}
}

// Current returns the page session a request came from and a copy of its
// state. The state must show the {uid} route parameter, otherwise
// page.ErrWrongProfile.
func (h *Pages) Current(r *http.Request) (*page.Session, *page.State, error) {
	id := strings.TrimSpace(r.Header.Get(PageHeader))
	if id == "" {
		return nil, nil, page.ErrNoProfile
	}
	sess, ok := h.sessions.Get(id)
	if !ok {
		return nil, nil, page.ErrNoProfile
	}
	st, err := sess.For(chi.URLParam(r, "uid"))
	if err != nil {
		return nil, nil, err
	}
	return sess, st, nil
}

// Profile renders /profile?id=<uid>. Without an id the signed-in user's own
// profile is shown.
func (h *Pages) Profile(w http.ResponseWriter, r *http.Request) {
	viewer := authctx.FromContext(r.Context())
	userID := strings.TrimSpace(r.URL.Query().Get("id"))
	if userID == "" {
		if viewer == nil {
			http.Redirect(w, r, "/sign-in.html?redirect=profile.html", http.StatusFound)
			return
		}
		userID = viewer.UID
	}

	sess := h.sessions.New()
	st, err := sess.Load(r.Context(), viewer, userID)
	if err != nil {
		h.sessions.Remove(sess.ID)
		h.fail(w, err)
		return
	}
	h.html(w, http.StatusOK, func() (string, error) { return h.renderer.Page(st) })
}

// Tab switches the active tab and re-renders the content region.
func (h *Pages) Tab(w http.ResponseWriter, r *http.Request) {
	tab, ok := page.ParseTab(chi.URLParam(r, "tab"))
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "unknown tab")
		return
	}
	sess, _, err := h.Current(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	st, err := sess.SetTab(tab)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.html(w, http.StatusOK, func() (string, error) { return h.renderer.Content(st) })
}

// Gifts re-renders the gift list for ?filter=all|sent|received.
func (h *Pages) Gifts(w http.ResponseWriter, r *http.Request) {
	sess, _, err := h.Current(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	st, err := sess.SetGiftFilter(r.URL.Query().Get("filter"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.html(w, http.StatusOK, func() (string, error) { return h.renderer.GiftList(st, st.GiftFilter) })
}

// DeletePortfolio removes one of the owner's items and re-renders.
func (h *Pages) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	viewer := authctx.FromContext(r.Context())
	sess, st, err := h.Current(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	if !st.Own {
		httpjson.Error(w, http.StatusForbidden, "only the owner can delete portfolio items")
		return
	}

	if err := h.portfolio.Delete(r.Context(), viewer.UID, chi.URLParam(r, "itemId")); err != nil {
		log.Printf("[profile] delete portfolio item: %v", err)
		switch {
		case portfolio.IsErrNotFound(err):
			httpjson.Error(w, http.StatusNotFound, "portfolio item not found")
		case portfolio.IsErrUnauthorized(err):
			httpjson.Error(w, http.StatusForbidden, "only the owner can delete portfolio items")
		case portfolio.IsErrBadRequest(err):
			httpjson.Error(w, http.StatusBadRequest, "invalid portfolio item")
		default:
			httpjson.Error(w, http.StatusInternalServerError, "Failed to delete portfolio item")
		}
		return
	}

	if st, err = sess.ReloadPortfolio(r.Context()); err != nil {
		h.fail(w, err)
		return
	}
	h.html(w, http.StatusOK, func() (string, error) { return h.renderer.Content(st) })
}

// CreateReview accepts the review form (rating, content) for the profile on
// screen and re-renders the reviews tab.
func (h *Pages) CreateReview(w http.ResponseWriter, r *http.Request) {
	viewer := authctx.FromContext(r.Context())
	sess, st, err := h.Current(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid form")
		return
	}
	rating, err := strconv.Atoi(r.PostForm.Get("rating"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "rating must be a number")
		return
	}

	photo := ""
	if me, err := h.profiles.Get(r.Context(), viewer.UID); err == nil {
		photo = me.PhotoURL
	}

	in := reviews.CreateInput{Rating: rating, Content: r.PostForm.Get("content")}
	if _, err := h.reviews.Create(r.Context(), viewer, photo, st.Profile.ID, in); err != nil {
		switch {
		case reviews.IsErrBadRequest(err):
			httpjson.Error(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), reviews.ErrBadRequest.Error()+": "))
		case reviews.IsErrUnauthorized(err):
			httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		default:
			log.Printf("[profile] create review: %v", err)
			httpjson.Error(w, http.StatusInternalServerError, "Failed to submit review")
		}
		return
	}

	if _, err := sess.ReloadReviews(r.Context()); err != nil {
		h.fail(w, err)
		return
	}
	if st, err = sess.SetTab(page.TabReviews); err != nil {
		h.fail(w, err)
		return
	}
	h.html(w, http.StatusOK, func() (string, error) { return h.renderer.Content(st) })
}

// fail maps a page error onto the matching view and status.
func (h *Pages) fail(w http.ResponseWriter, err error) {
	switch {
	case profile.IsErrNotFound(err):
		h.html(w, http.StatusNotFound, h.renderer.NotFound)
	case page.IsErrStale(err):
		httpjson.Error(w, http.StatusConflict, "a newer profile load replaced this one")
	case page.IsErrNoProfile(err):
		httpjson.Error(w, http.StatusConflict, "no profile loaded; reload the page")
	case page.IsErrWrongProfile(err):
		httpjson.Error(w, http.StatusConflict, "this page shows a different profile; reload the page")
	default:
		log.Printf("[profile] load failed: %v", err)
		h.html(w, http.StatusInternalServerError, func() (string, error) {
			return h.renderer.LoadError(page.ErrLoad)
		})
	}
}

func (h *Pages) html(w http.ResponseWriter, status int, render func() (string, error)) {
	out, err := render()
	if err != nil {
		log.Printf("[profile] render: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(out))
}
