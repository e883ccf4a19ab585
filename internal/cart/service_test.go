package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore serialises Modify with a single lock, like the row lock in
// Repository.
type memoryStore struct {
	mu    sync.Mutex
	carts map[uuid.UUID]Cart
}

func newMemoryStore(users ...uuid.UUID) *memoryStore {
	s := &memoryStore{carts: make(map[uuid.UUID]Cart)}
	for _, id := range users {
		s.carts[id] = Cart{}
	}
	return s
}

func (s *memoryStore) Get(_ context.Context, userID uuid.UUID) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return append(Cart{}, c...), nil
}

func (s *memoryStore) Modify(_ context.Context, userID uuid.UUID, fn func(Cart) Cart) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	next := fn(c)
	s.carts[userID] = next
	return append(Cart{}, next...), nil
}

func TestService_CartScenario(t *testing.T) {
	userID := uuid.New()
	svc := NewService(newMemoryStore(userID))
	ctx := context.Background()

	_, err := svc.AddItem(ctx, userID, Item{ProductID: "p1", Price: 10})
	require.NoError(t, err)
	c, err := svc.AddItem(ctx, userID, Item{ProductID: "p1", Price: 10})
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, "p1", c[0].ProductID)
	assert.Equal(t, 2, c[0].Quantity)

	c, err = svc.RemoveItem(ctx, userID, "p1")
	require.NoError(t, err)
	assert.Empty(t, c)

	require.NoError(t, svc.Checkout(ctx, userID))
	c, err = svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, c)
}

func TestService_CheckoutClearsCart(t *testing.T) {
	userID := uuid.New()
	svc := NewService(newMemoryStore(userID))
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := svc.AddItem(ctx, userID, Item{ProductID: id})
		require.NoError(t, err)
	}

	require.NoError(t, svc.Checkout(ctx, userID))

	c, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, c)
}

func TestService_RemoveMissingIsNoop(t *testing.T) {
	userID := uuid.New()
	svc := NewService(newMemoryStore(userID))
	ctx := context.Background()

	before, err := svc.AddItem(ctx, userID, Item{ProductID: "a"})
	require.NoError(t, err)

	after, err := svc.RemoveItem(ctx, userID, "zzz")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestService_UnknownUser(t *testing.T) {
	svc := NewService(newMemoryStore())

	_, err := svc.AddItem(context.Background(), uuid.New(), Item{ProductID: "a"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_ConcurrentAddsMergeIntoOneLine(t *testing.T) {
	userID := uuid.New()
	other := uuid.New()
	svc := NewService(newMemoryStore(userID, other))
	ctx := context.Background()

	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.AddItem(ctx, userID, Item{ProductID: "p1"})
		}()
		go func() {
			defer wg.Done()
			_, _ = svc.AddItem(ctx, other, Item{ProductID: "p1"})
		}()
	}
	wg.Wait()

	for _, id := range []uuid.UUID{userID, other} {
		c, err := svc.List(ctx, id)
		require.NoError(t, err)
		require.Len(t, c, 1)
		assert.Equal(t, workers, c[0].Quantity)
	}
}
