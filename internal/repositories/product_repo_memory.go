package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"rapidreads/internal/models"

	"github.com/google/uuid"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// Products are kept in insertion order.
type MemoryProductRepository struct {
	products []models.Product
	byID     map[string]int
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		byID: make(map[string]int),
	}
}

// GetAll returns all products.
func (r *MemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, len(r.products))
	copy(productList, r.products)
	return productList, nil
}

// GetByLegacyID returns the first product with the given legacy id.
func (r *MemoryProductRepository) GetByLegacyID(ctx context.Context, legacyID int) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOfLegacy(legacyID); i >= 0 {
		product := r.products[i]
		return &product, nil
	}
	return nil, fmt.Errorf("product with legacy id %d: %w", legacyID, ErrNotFound)
}

// GetByID returns a product by its store ID.
func (r *MemoryProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	product := r.products[i]
	return &product, nil
}

// IsValidID reports whether id is a UUID.
func (r *MemoryProductRepository) IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Search returns the products matching query in any text field.
func (r *MemoryProductRepository) Search(ctx context.Context, query string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	result := make([]models.Product, 0)
	for _, p := range r.products {
		if containsFold(p.Title, needle) || containsFold(p.Author, needle) ||
			containsFold(p.Genre, needle) || containsFold(p.Description, needle) {
			result = append(result, p)
		}
	}
	return result, nil
}

// Count returns the number of products.
func (r *MemoryProductRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, ok := r.byID[product.ID]; ok {
		return fmt.Errorf("product with ID %s already exists", product.ID)
	}
	r.byID[product.ID] = len(r.products)
	r.products = append(r.products, *product)
	return nil
}

// decrement lowers the inventory of the product with the given legacy id
// if enough items are available. Callers run apply while the lock is held so
// that the decrement and their own write happen together.
func (r *MemoryProductRepository) decrement(legacyID, quantity int, apply func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOfLegacy(legacyID)
	if i < 0 {
		return fmt.Errorf("product with legacy id %d: %w", legacyID, ErrNotFound)
	}
	if r.products[i].AvailableInventory < quantity {
		return ErrInsufficientInventory
	}
	if err := apply(); err != nil {
		return err
	}
	r.products[i].AvailableInventory -= quantity
	return nil
}

func (r *MemoryProductRepository) indexOfLegacy(legacyID int) int {
	for i := range r.products {
		if r.products[i].LegacyID == legacyID {
			return i
		}
	}
	return -1
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
