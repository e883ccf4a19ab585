package session

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Config controls session lifetime and the cookie that carries it.
type Config struct {
	TTL          time.Duration
	CookieName   string
	SecureCookie bool
}

const DefaultCookieName = "greennest.sid"

// Option customises a Manager.
type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager owns the session lifecycle: resolve, authenticate, refresh, destroy.
type Manager struct {
	store  Store
	sealer *Sealer
	cfg    Config
	now    func() time.Time
}

func NewManager(store Store, sealer *Sealer, cfg Config, opts ...Option) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}

	m := &Manager{
		store:  store,
		sealer: sealer,
		cfg:    cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Anonymous returns a fresh session with no identity. Nothing is stored until
// it is authenticated.
func (m *Manager) Anonymous() *Session {
	now := m.now()
	return &Session{CreatedAt: now, ExpiresAt: now.Add(m.cfg.TTL)}
}

// Resolve maps a cookie value to its session. Missing, tampered, unknown and
// expired cookies all resolve to an anonymous session. The error is only set
// when the store itself fails.
func (m *Manager) Resolve(ctx context.Context, cookieValue string) (*Session, error) {
	if cookieValue == "" {
		return m.Anonymous(), nil
	}

	now := m.now()
	token, err := m.sealer.Open(cookieValue, now)
	if errors.Is(err, ErrExpiredCookie) {
		if err := m.store.Delete(ctx, token); err != nil {
			return m.Anonymous(), err
		}
		return m.Anonymous(), nil
	}
	if err != nil {
		return m.Anonymous(), nil
	}

	s, err := m.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return m.Anonymous(), nil
		}
		return m.Anonymous(), err
	}

	if s.Expired(now) {
		if err := m.store.Delete(ctx, token); err != nil {
			return m.Anonymous(), err
		}
		return m.Anonymous(), nil
	}

	return s, nil
}

// Authenticate binds identity to s under a newly issued token and returns the
// sealed cookie value. Any previous token of s is discarded.
func (m *Manager) Authenticate(ctx context.Context, s *Session, identity Identity) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	if s.Token != "" {
		if err := m.store.Delete(ctx, s.Token); err != nil {
			return "", err
		}
	}

	now := m.now()
	next := Session{
		Token:     token,
		Identity:  &identity,
		CreatedAt: now,
		ExpiresAt: now.Add(m.cfg.TTL),
	}

	if err := m.store.Save(ctx, &next); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	*s = next
	return m.sealer.Seal(s.Token, s.CreatedAt, s.ExpiresAt), nil
}

// RequireAuthenticated returns the identity bound to s.
func (m *Manager) RequireAuthenticated(s *Session) (Identity, error) {
	if !s.Authenticated() || s.Expired(m.now()) {
		return Identity{}, ErrNotAuthenticated
	}
	return *s.Identity, nil
}

// Refresh replaces the identity snapshot of an authenticated session. The
// expiry does not move.
func (m *Manager) Refresh(ctx context.Context, s *Session, identity Identity) error {
	if _, err := m.RequireAuthenticated(s); err != nil {
		return err
	}

	updated := *s
	updated.Identity = &identity
	if err := m.store.Save(ctx, &updated); err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}

	*s = updated
	return nil
}

// Destroy invalidates the token of s and turns s anonymous. Calling it on an
// anonymous or already destroyed session is a no-op.
func (m *Manager) Destroy(ctx context.Context, s *Session) error {
	if s.Token != "" {
		if err := m.store.Delete(ctx, s.Token); err != nil {
			return fmt.Errorf("failed to destroy session: %w", err)
		}
	}

	*s = *m.Anonymous()
	return nil
}
