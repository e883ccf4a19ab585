package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestManager(t *testing.T) (*Manager, *MemoryStore, *fakeClock) {
	t.Helper()

	sealer, err := NewSealer(testKey)
	require.NoError(t, err)

	clock := &fakeClock{now: time.Now()}
	store := NewMemoryStore()
	m := NewManager(store, sealer, Config{TTL: 24 * time.Hour}, WithClock(clock.Now))
	return m, store, clock
}

func testIdentity() Identity {
	return Identity{ID: uuid.New(), Email: "a@x.com", Name: "Ana"}
}

func TestManager_ResolveWithoutCookieIsAnonymous(t *testing.T) {
	m, store, _ := newTestManager(t)

	s, err := m.Resolve(context.Background(), "")
	require.NoError(t, err)

	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token)
	assert.Equal(t, 0, store.Len())
}

func TestManager_AuthenticateThenResolve(t *testing.T) {
	m, store, _ := newTestManager(t)
	ctx := context.Background()
	identity := testIdentity()

	s := m.Anonymous()
	cookie, err := m.Authenticate(ctx, s, identity)
	require.NoError(t, err)
	require.NotEmpty(t, cookie)

	assert.True(t, s.Authenticated())
	assert.NotEmpty(t, s.Token)
	assert.Equal(t, s.CreatedAt.Add(24*time.Hour), s.ExpiresAt)
	assert.Equal(t, 1, store.Len())

	resolved, err := m.Resolve(ctx, cookie)
	require.NoError(t, err)
	require.True(t, resolved.Authenticated())
	assert.Equal(t, identity, *resolved.Identity)
	assert.Equal(t, s.Token, resolved.Token)

	got, err := m.RequireAuthenticated(resolved)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestManager_AuthenticateRotatesToken(t *testing.T) {
	m, store, _ := newTestManager(t)
	ctx := context.Background()

	s := m.Anonymous()
	first, err := m.Authenticate(ctx, s, testIdentity())
	require.NoError(t, err)
	oldToken := s.Token

	second, err := m.Authenticate(ctx, s, testIdentity())
	require.NoError(t, err)

	assert.NotEqual(t, oldToken, s.Token)
	assert.Equal(t, 1, store.Len())

	stale, err := m.Resolve(ctx, first)
	require.NoError(t, err)
	assert.False(t, stale.Authenticated())

	current, err := m.Resolve(ctx, second)
	require.NoError(t, err)
	assert.True(t, current.Authenticated())
}

func TestManager_RequireAuthenticatedRejectsAnonymous(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, err := m.RequireAuthenticated(m.Anonymous())
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = m.RequireAuthenticated(&Session{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestManager_ExpiredSessionResolvesAnonymousAndIsDeleted(t *testing.T) {
	m, store, clock := newTestManager(t)
	ctx := context.Background()

	s := m.Anonymous()
	cookie, err := m.Authenticate(ctx, s, testIdentity())
	require.NoError(t, err)

	clock.Advance(24*time.Hour - time.Second)
	_, err = m.RequireAuthenticated(s)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = m.RequireAuthenticated(s)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	resolved, err := m.Resolve(ctx, cookie)
	require.NoError(t, err)
	assert.False(t, resolved.Authenticated())
	assert.Equal(t, 0, store.Len())
}

func TestManager_ExpiredStoredSessionIsDeletedLazily(t *testing.T) {
	m, store, _ := newTestManager(t)
	ctx := context.Background()

	s := m.Anonymous()
	cookie, err := m.Authenticate(ctx, s, testIdentity())
	require.NoError(t, err)

	// Shorten the stored record only; the cookie still looks valid.
	stored, err := store.Get(ctx, s.Token)
	require.NoError(t, err)
	stored.ExpiresAt = stored.CreatedAt
	require.NoError(t, store.Save(ctx, stored))

	resolved, err := m.Resolve(ctx, cookie)
	require.NoError(t, err)
	assert.False(t, resolved.Authenticated())
	assert.Equal(t, 0, store.Len())
}

func TestManager_TamperedCookieIsAnonymous(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	s := m.Anonymous()
	cookie, err := m.Authenticate(ctx, s, testIdentity())
	require.NoError(t, err)

	tampered := cookie[:len(cookie)-2] + "AA"
	if tampered == cookie {
		tampered = cookie[:len(cookie)-2] + "BB"
	}

	resolved, err := m.Resolve(ctx, tampered)
	require.NoError(t, err)
	assert.False(t, resolved.Authenticated())

	resolved, err = m.Resolve(ctx, "not-a-token")
	require.NoError(t, err)
	assert.False(t, resolved.Authenticated())
}

func TestManager_CookieFromOtherKeyIsAnonymous(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	other, err := NewSealer([]byte("ffffffffffffffffffffffffffffffff"))
	require.NoError(t, err)

	s := m.Anonymous()
	_, err = m.Authenticate(ctx, s, testIdentity())
	require.NoError(t, err)

	forged := other.Seal(s.Token, s.CreatedAt, s.ExpiresAt)
	resolved, err := m.Resolve(ctx, forged)
	require.NoError(t, err)
	assert.False(t, resolved.Authenticated())
}

func TestManager_DestroyIsIdempotent(t *testing.T) {
	m, store, _ := newTestManager(t)
	ctx := context.Background()

	s := m.Anonymous()
	cookie, err := m.Authenticate(ctx, s, testIdentity())
	require.NoError(t, err)

	require.NoError(t, m.Destroy(ctx, s))
	assert.False(t, s.Authenticated())
	assert.Equal(t, 0, store.Len())

	require.NoError(t, m.Destroy(ctx, s))
	require.NoError(t, m.Destroy(ctx, m.Anonymous()))

	resolved, err := m.Resolve(ctx, cookie)
	require.NoError(t, err)
	assert.False(t, resolved.Authenticated())
}

func TestManager_RefreshKeepsExpiry(t *testing.T) {
	m, _, clock := newTestManager(t)
	ctx := context.Background()

	s := m.Anonymous()
	cookie, err := m.Authenticate(ctx, s, testIdentity())
	require.NoError(t, err)
	expiresAt := s.ExpiresAt

	clock.Advance(time.Hour)
	renamed := *s.Identity
	renamed.Name = "Ana Maria"
	require.NoError(t, m.Refresh(ctx, s, renamed))

	assert.Equal(t, expiresAt, s.ExpiresAt)

	resolved, err := m.Resolve(ctx, cookie)
	require.NoError(t, err)
	require.True(t, resolved.Authenticated())
	assert.Equal(t, "Ana Maria", resolved.Identity.Name)
}

func TestManager_RefreshRequiresAuthentication(t *testing.T) {
	m, _, _ := newTestManager(t)

	err := m.Refresh(context.Background(), m.Anonymous(), testIdentity())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	identity := testIdentity()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := generateToken()
			if err != nil {
				return
			}
			s := &Session{Token: token, Identity: &identity, ExpiresAt: time.Now().Add(time.Hour)}
			_ = store.Save(ctx, s)
			_, _ = store.Get(ctx, token)
			_ = store.Delete(ctx, token)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, store.Len())
}

func TestNewSealer_RejectsShortKey(t *testing.T) {
	_, err := NewSealer([]byte("short"))
	assert.Error(t, err)
}

func TestSealer_OpenRejectsExpired(t *testing.T) {
	sealer, err := NewSealer(testKey)
	require.NoError(t, err)

	now := time.Now()
	value := sealer.Seal("tok", now, now.Add(time.Minute))

	token, err := sealer.Open(value, now)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	_, err = sealer.Open(value, now.Add(time.Minute))
	assert.ErrorIs(t, err, ErrExpiredCookie)
}
