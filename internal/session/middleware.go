package session

import (
	"context"
	"net/http"
	"time"

	"github.com/redmonkez12/greennest-api/internal/httputil"
	"github.com/redmonkez12/greennest-api/internal/logging"
)

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the request session, or an empty anonymous one.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(contextKey{}).(*Session); ok && s != nil {
		return s
	}
	return &Session{}
}

// IdentityFromContext returns the logged-in identity of the request session.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	s := FromContext(ctx)
	if !s.Authenticated() {
		return Identity{}, false
	}
	return *s.Identity, true
}

// Load resolves the session cookie and stores the session in the request
// context. Stale cookies are cleared.
func (m *Manager) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cookieValue string
		if c, err := r.Cookie(m.cfg.CookieName); err == nil {
			cookieValue = c.Value
		}

		s, err := m.Resolve(r.Context(), cookieValue)
		if err != nil {
			logging.GetLoggerFromContext(r.Context()).Error("failed to resolve session", "error", err)
		} else if cookieValue != "" && !s.Authenticated() {
			m.ClearCookie(w)
		}

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), s)))
	})
}

// RequireAuth rejects requests whose session is not bound to a user.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := m.RequireAuthenticated(FromContext(r.Context())); err != nil {
			httputil.RespondErrorWithCode(w, "Not logged in", httputil.CodeNotAuthenticated, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SetCookie writes the sealed session cookie, valid until expiresAt.
func (m *Manager) SetCookie(w http.ResponseWriter, value string, expiresAt time.Time) {
	maxAge := int(expiresAt.Sub(m.now()) / time.Second)
	if maxAge <= 0 {
		m.ClearCookie(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie in the browser.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cfg.CookieName
}
