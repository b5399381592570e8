package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"sewalink/backend/internal/authctx"
	"sewalink/backend/internal/httpjson"
)

// SessionCookie carries the Firebase ID token for page requests.
const SessionCookie = "__session"

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// WithIdentity attaches the caller's identity when a valid ID token is
// present. Requests without one, or with a bad one, continue anonymously.
func WithIdentity(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idToken := tokenFrom(r)
			if idToken == "" || v == nil {
				next.ServeHTTP(w, r)
				return
			}

			tok, err := v.VerifyIDToken(r.Context(), idToken)
			if err != nil {
				log.Printf("[auth] ignoring invalid token: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			id := &authctx.Identity{UID: tok.UID}
			if name, ok := tok.Claims["name"].(string); ok {
				id.DisplayName = name
			}
			if email, ok := tok.Claims["email"].(string); ok {
				id.Email = email
			}

			next.ServeHTTP(w, r.WithContext(authctx.WithIdentity(r.Context(), id)))
		})
	}
}

// RequireIdentity rejects anonymous requests. It must run after WithIdentity.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if authctx.FromContext(r.Context()) == nil {
			httpjson.Redirect(w, http.StatusUnauthorized, "sign in required", "sign-in.html")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func tokenFrom(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > len("Bearer ") && strings.EqualFold(h[:len("Bearer ")], "bearer ") {
		return strings.TrimSpace(h[len("Bearer "):])
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}
