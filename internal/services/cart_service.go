package services

import (
	"context"
	"errors"
	"time"

	"rapidreads/internal/apperrors"
	"rapidreads/internal/models"
	"rapidreads/internal/repositories"

	"go.uber.org/zap"
)

// CartEventPublisher is notified after an item was added to a cart.
type CartEventPublisher interface {
	PublishCartItemAdded(event models.CartItemAddedEvent) error
}

// CartService handles adding products to a user's cart.
type CartService struct {
	products  repositories.ProductRepository
	carts     repositories.CartRepository
	publisher CartEventPublisher
	log       *zap.Logger
	now       func() time.Time
}

// NewCartService creates a new CartService. publisher may be nil.
func NewCartService(products repositories.ProductRepository, carts repositories.CartRepository, publisher CartEventPublisher, log *zap.Logger) *CartService {
	return &CartService{
		products:  products,
		carts:     carts,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// AddToCart reserves quantity units of the product for the user.
func (s *CartService) AddToCart(ctx context.Context, userID string, productID, quantity int) error {
	product, err := s.products.GetByLegacyID(ctx, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrProductNotFound
		}
		return apperrors.Internal("Failed to add to cart", err)
	}
	if quantity > product.AvailableInventory {
		return apperrors.ErrInsufficientInventory
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   s.now().UTC(),
	}
	// The stock check above is advisory; AddItem re-checks atomically.
	if err := s.carts.AddItem(ctx, item); err != nil {
		switch {
		case errors.Is(err, repositories.ErrInsufficientInventory):
			return apperrors.ErrInsufficientInventory
		case errors.Is(err, repositories.ErrNotFound):
			return apperrors.ErrProductNotFound
		default:
			return apperrors.Internal("Failed to add to cart", err)
		}
	}

	s.log.Info("product added to cart",
		zap.String("user_id", userID),
		zap.Int("product_id", productID),
		zap.Int("quantity", quantity),
	)
	s.publish(item)
	return nil
}

func (s *CartService) publish(item *models.CartItem) {
	if s.publisher == nil {
		return
	}
	event := models.CartItemAddedEvent{
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		AddedAt:   item.AddedAt,
	}
	if err := s.publisher.PublishCartItemAdded(event); err != nil {
		s.log.Error("failed to publish cart event", zap.Int("product_id", item.ProductID), zap.Error(err))
	}
}
