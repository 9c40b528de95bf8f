package repositories

import (
	"context"

	"rapidreads/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	// AddItem decrements the product's available inventory by item.Quantity,
	// only if at least that many are available, and records the cart item.
	// It returns ErrInsufficientInventory when the decrement did not apply and
	// ErrNotFound when the product does not exist.
	AddItem(ctx context.Context, item *models.CartItem) error
}
