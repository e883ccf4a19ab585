package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_LoadAndRequireAuth(t *testing.T) {
	m, _, _ := newTestManager(t)
	identity := testIdentity()

	s := m.Anonymous()
	cookie, err := m.Authenticate(context.Background(), s, identity)
	require.NoError(t, err)

	var seen Identity
	handler := m.Load(m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = *FromContext(r.Context()).Identity
		w.WriteHeader(http.StatusNoContent)
	})))

	req := httptest.NewRequest(http.MethodGet, "/get-cart", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: cookie})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, identity, seen)
}

func TestMiddleware_RequireAuthRejectsAnonymous(t *testing.T) {
	m, _, _ := newTestManager(t)

	called := false
	handler := m.Load(m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/get-cart", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not logged in", body["message"])
}

func TestMiddleware_LoadClearsStaleCookie(t *testing.T) {
	m, _, _ := newTestManager(t)

	handler := m.Load(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, FromContext(r.Context()).Authenticated())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, DefaultCookieName, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestSetCookie_Attributes(t *testing.T) {
	m, _, clock := newTestManager(t)

	rec := httptest.NewRecorder()
	m.SetCookie(rec, "sealed", clock.Now().Add(m.cfg.TTL))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "sealed", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 86400, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.False(t, c.Secure)
}

func TestFromContext_DefaultsToAnonymous(t *testing.T) {
	s := FromContext(context.Background())
	require.NotNil(t, s)
	assert.False(t, s.Authenticated())
}
