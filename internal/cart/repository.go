package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/greennest-api/internal/database"
)

// Repository stores carts in the users.cart JSONB column.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the user's cart.
func (r *Repository) Get(ctx context.Context, userID uuid.UUID) (Cart, error) {
	row := new(database.User)
	err := r.db.NewSelect().
		Model(row).
		Column("id", "cart").
		Where("id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return fromRows(row.Cart), nil
}

// Modify applies fn to the user's cart and stores the result. The user row
// stays locked from read to write, so concurrent changes to one cart are
// applied one after another.
func (r *Repository) Modify(ctx context.Context, userID uuid.UUID, fn func(Cart) Cart) (Cart, error) {
	var result Cart

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row := new(database.User)
		err := tx.NewSelect().
			Model(row).
			Column("id", "cart").
			Where("id = ?", userID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to lock cart: %w", err)
		}

		next := fn(fromRows(row.Cart))

		payload, err := json.Marshal(toRows(next))
		if err != nil {
			return fmt.Errorf("failed to encode cart: %w", err)
		}

		_, err = tx.NewUpdate().
			Model((*database.User)(nil)).
			Set("cart = ?::jsonb", string(payload)).
			Set("updated_at = NOW()").
			Where("id = ?", userID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to save cart: %w", err)
		}

		result = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func fromRows(rows []database.CartLine) Cart {
	c := make(Cart, 0, len(rows))
	for _, row := range rows {
		c = append(c, Line(row))
	}
	return c
}

func toRows(c Cart) []database.CartLine {
	rows := make([]database.CartLine, 0, len(c))
	for _, line := range c {
		rows = append(rows, database.CartLine(line))
	}
	return rows
}
