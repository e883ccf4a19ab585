// Package cart keeps each user's shopping cart: one line per product id,
// in the order products were first added.
package cart

import "errors"

var ErrUserNotFound = errors.New("user not found")

// Item is a product as sent by the storefront.
type Item struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name"`
	Price     float64 `json:"price" validate:"gte=0"`
	Image     string  `json:"image"`
}

// Line is one product in a cart.
type Line struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

type Cart []Line

// Add returns a cart with item added. An existing line for the same product
// gains one unit and keeps its other fields; otherwise a new line with
// quantity 1 is appended.
func (c Cart) Add(item Item) Cart {
	next := make(Cart, len(c), len(c)+1)
	copy(next, c)

	for i := range next {
		if next[i].ProductID == item.ProductID {
			next[i].Quantity++
			return next
		}
	}

	return append(next, Line{
		ProductID: item.ProductID,
		Name:      item.Name,
		Price:     item.Price,
		Image:     item.Image,
		Quantity:  1,
	})
}

// Remove returns a cart without the line for productID. Unknown ids leave the
// cart unchanged.
func (c Cart) Remove(productID string) Cart {
	next := make(Cart, 0, len(c))
	for _, line := range c {
		if line.ProductID != productID {
			next = append(next, line)
		}
	}
	return next
}

// Clear returns an empty cart.
func (c Cart) Clear() Cart {
	return Cart{}
}
