package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"

	"sewalink/backend/internal/authctx"
)

type fakeVerifier struct {
	tokens map[string]*auth.Token
}

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if tok, ok := f.tokens[idToken]; ok {
		return tok, nil
	}
	return nil, errors.New("invalid token")
}

func TestWithIdentity(t *testing.T) {
	v := fakeVerifier{tokens: map[string]*auth.Token{
		"good": {UID: "u1", Claims: map[string]interface{}{"name": "Asha", "email": "asha@example.com"}},
	}}

	var got *authctx.Identity
	h := WithIdentity(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = authctx.FromContext(r.Context())
	}))

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Bearer good")
		h.ServeHTTP(httptest.NewRecorder(), req)
		if assert.NotNil(t, got) {
			assert.Equal(t, "u1", got.UID)
			assert.Equal(t, "Asha", got.Name())
			assert.Equal(t, "asha@example.com", got.Email)
		}
	})

	t.Run("session cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good"})
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.NotNil(t, got)
	})

	t.Run("invalid token is anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Bearer bad")
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Nil(t, got)
	})

	t.Run("no token is anonymous", func(t *testing.T) {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/profile", nil))
		assert.Nil(t, got)
	})
}

func TestRequireIdentity(t *testing.T) {
	h := RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/profile/u1/friend", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "sign-in.html")

	req := httptest.NewRequest(http.MethodPost, "/profile/u1/friend", nil)
	req = req.WithContext(authctx.WithIdentity(req.Context(), &authctx.Identity{UID: "u1"}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
