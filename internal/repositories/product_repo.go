package repositories

import (
	"context"
	"errors"

	"rapidreads/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a user with the same email already exists.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrInsufficientInventory is returned when a conditional inventory decrement
	// did not match because fewer items are available than requested.
	ErrInsufficientInventory = errors.New("insufficient inventory")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	// GetByLegacyID looks a product up by its numeric storefront id.
	GetByLegacyID(ctx context.Context, legacyID int) (*models.Product, error)
	// GetByID looks a product up by the store's own identifier.
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// IsValidID reports whether id is well-formed for the store's identifier scheme.
	IsValidID(id string) bool
	// Search returns products whose title, author, genre or description
	// contains query, case-insensitively.
	Search(ctx context.Context, query string) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, product *models.Product) error
}
