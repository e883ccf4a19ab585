package cart

import (
	"context"

	"github.com/google/uuid"
)

// Store is implemented by *Repository.
type Store interface {
	Get(ctx context.Context, userID uuid.UUID) (Cart, error)
	Modify(ctx context.Context, userID uuid.UUID, fn func(Cart) Cart) (Cart, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// AddItem merges item into the user's cart and returns the whole cart.
func (s *Service) AddItem(ctx context.Context, userID uuid.UUID, item Item) (Cart, error) {
	return s.store.Modify(ctx, userID, func(c Cart) Cart {
		return c.Add(item)
	})
}

// List returns the cart in insertion order.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (Cart, error) {
	return s.store.Get(ctx, userID)
}

// RemoveItem drops the line for productID; a missing line is not an error.
func (s *Service) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) (Cart, error) {
	return s.store.Modify(ctx, userID, func(c Cart) Cart {
		return c.Remove(productID)
	})
}

// Checkout empties the cart. There is no payment step.
func (s *Service) Checkout(ctx context.Context, userID uuid.UUID) error {
	_, err := s.store.Modify(ctx, userID, func(c Cart) Cart {
		return c.Clear()
	})
	return err
}
