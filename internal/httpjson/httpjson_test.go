package httpjson

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBodies(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusBadRequest, "bad")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"bad"}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	Redirect(rec, http.StatusUnauthorized, "sign in required", "sign-in.html")
	assert.JSONEq(t, `{"error":"sign in required","redirect":"sign-in.html"}`, rec.Body.String())
}

func TestRead(t *testing.T) {
	var dst struct {
		Kind string `json:"kind"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"kind":"avatar"}`))
	require.NoError(t, Read(req, &dst))
	assert.Equal(t, "avatar", dst.Kind)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"kind":"avatar","extra":1}`))
	assert.Error(t, Read(req, &dst))

	huge := `{"kind":"` + strings.Repeat("x", MaxBody) + `"}`
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(huge))
	assert.Error(t, Read(req, &dst))
}
