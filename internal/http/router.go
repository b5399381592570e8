package http

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"sewalink/backend/internal/authctx"
	"sewalink/backend/internal/config"
	"sewalink/backend/internal/domain/friends"
	"sewalink/backend/internal/handlers"
	"sewalink/backend/internal/httpjson"
	"sewalink/backend/internal/middleware"
	"sewalink/backend/internal/page"
)

type RouterDeps struct {
	Cfg        config.Config
	Verifier   middleware.TokenVerifier
	Pages      *handlers.Pages
	Uploads    *handlers.Uploads
	FriendsSvc *friends.Service
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(d.Cfg.AllowedOrigins))
	r.Use(middleware.WithIdentity(d.Verifier))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Write(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})

	// ===== Profile page (anonymous viewers allowed) =====
	r.Get("/profile", d.Pages.Profile)
	r.Get("/profile/{uid}/tab/{tab}", d.Pages.Tab)
	r.Get("/profile/{uid}/gifts", d.Pages.Gifts)

	r.Get("/profile/{uid}/share", func(w http.ResponseWriter, r *http.Request) {
		_, st, err := d.Pages.Current(r)
		if err != nil {
			status, msg := mapPageError(err)
			httpjson.Error(w, status, msg)
			return
		}
		httpjson.Write(w, 200, sharePayload(d.Cfg, st))
	})

	r.Get("/profile/message/{uid}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/messages.html?user="+url.QueryEscape(chi.URLParam(r, "uid")), http.StatusFound)
	})
	r.Get("/profile/gift/{uid}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/send-gift.html?id="+url.QueryEscape(chi.URLParam(r, "uid")), http.StatusFound)
	})
	r.Get("/profile/edit", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/settings.html?tab=profile", http.StatusFound)
	})

	// Signed-in actions
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireIdentity)

		pr.Post("/profile/{uid}/friend", func(w http.ResponseWriter, r *http.Request) {
			viewer := authctx.FromContext(r.Context())
			sess, st, err := d.Pages.Current(r)
			if err != nil {
				status, msg := mapPageError(err)
				httpjson.Error(w, status, msg)
				return
			}

			next, err := d.FriendsSvc.Toggle(r.Context(), viewer, st.Profile)
			if err != nil {
				status, msg := mapFriendsError(err)
				httpjson.Error(w, status, msg)
				return
			}
			if _, err := sess.SetFriendStatus(next); err != nil && !page.IsErrNoProfile(err) {
				status, msg := mapPageError(err)
				httpjson.Error(w, status, msg)
				return
			}
			httpjson.Write(w, 200, map[string]any{"status": next, "label": next.Label()})
		})

		pr.Post("/profile/{uid}/portfolio/{itemId}/delete", d.Pages.DeletePortfolio)
		pr.Post("/profile/{uid}/reviews", d.Pages.CreateReview)

		// ===== Uploads =====
		pr.Post("/v1/uploads/{kind}", d.Uploads.CreateSignedUploadURL)
		pr.Post("/v1/profile/photo", d.Uploads.SetPhoto)
	})

	return r
}

type share struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

func sharePayload(cfg config.Config, st *page.State) share {
	who := st.Profile.DisplayName
	if who == "" {
		who = "this user"
	}
	return share{
		Title: st.Profile.Name() + "'s Profile",
		Text:  "Check out " + who + "'s profile on " + cfg.SiteName,
		URL:   cfg.PublicBaseURL + "/profile?id=" + url.QueryEscape(st.Profile.ID),
	}
}

func mapPageError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case page.IsErrNoProfile(err):
		return 409, "no profile loaded; reload the page"
	case page.IsErrStale(err), page.IsErrWrongProfile(err):
		return 409, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapFriendsError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case friends.IsErrUnauthorized(err):
		return 401, err.Error()
	case friends.IsErrBadRequest(err):
		return 400, err.Error()
	case friends.IsErrBusy(err):
		return 409, err.Error()
	default:
		return 500, "Failed to update friend status"
	}
}
