package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rapidreads/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// AddItem runs the conditional decrement and the cart insert in one transaction.
func (r *GORMCartRepository) AddItem(ctx context.Context, item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Select("id").Where("legacy_id = ?", item.ProductID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product with legacy id %d: %w", item.ProductID, ErrNotFound)
			}
			return fmt.Errorf("failed to check product %d: %w", item.ProductID, err)
		}

		// Only the row read above is decremented, even if legacy ids repeat.
		res := tx.Model(&models.Product{}).
			Where("id = ? AND available_inventory >= ?", product.ID, item.Quantity).
			UpdateColumn("available_inventory", gorm.Expr("available_inventory - ?", item.Quantity))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement inventory for product %d: %w", item.ProductID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientInventory
		}

		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("failed to create cart item: %w", err)
		}
		return nil
	})
}

// NewGORMStore wires the GORM repositories into a Store.
func NewGORMStore(db *gorm.DB, closeFn func(ctx context.Context) error) *Store {
	return NewStore(NewGORMUserRepository(db), NewGORMProductRepository(db), NewGORMCartRepository(db), closeFn)
}
