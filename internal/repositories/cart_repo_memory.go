package repositories

import (
	"context"
	"sync"
	"time"

	"rapidreads/internal/models"

	"github.com/google/uuid"
)

// MemoryCartRepository is an in-memory implementation of CartRepository.
// It decrements inventory in the product repository it was created with.
type MemoryCartRepository struct {
	products *MemoryProductRepository
	items    []models.CartItem
	mu       sync.Mutex
}

// NewMemoryCartRepository creates a new instance of MemoryCartRepository.
func NewMemoryCartRepository(products *MemoryProductRepository) *MemoryCartRepository {
	return &MemoryCartRepository{products: products}
}

// AddItem decrements inventory and records the item in one step.
func (r *MemoryCartRepository) AddItem(ctx context.Context, item *models.CartItem) error {
	return r.products.decrement(item.ProductID, item.Quantity, func() error {
		r.mu.Lock()
		defer r.mu.Unlock()

		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		if item.AddedAt.IsZero() {
			item.AddedAt = time.Now().UTC()
		}
		r.items = append(r.items, *item)
		return nil
	})
}

// Items returns a copy of all recorded cart items.
func (r *MemoryCartRepository) Items() []models.CartItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]models.CartItem, len(r.items))
	copy(items, r.items)
	return items
}

// NewMemoryStore wires the in-memory repositories into a Store.
func NewMemoryStore() *Store {
	products := NewMemoryProductRepository()
	return NewStore(NewMemoryUserRepository(), products, NewMemoryCartRepository(products), nil)
}
