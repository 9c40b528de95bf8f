package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"rapidreads/internal/apperrors"
	"rapidreads/internal/models"
	"rapidreads/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts retrieves the whole catalog. It never returns a nil slice.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch products", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProduct looks the product up by its numeric id first and falls back to
// the store identifier when rawID is well-formed for the store.
func (s *ProductService) GetProduct(ctx context.Context, rawID string) (*models.Product, error) {
	if legacyID, err := strconv.Atoi(rawID); err == nil {
		product, err := s.repo.GetByLegacyID(ctx, legacyID)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.Internal("Failed to fetch product", err)
		}
	}

	if !s.repo.IsValidID(rawID) {
		return nil, apperrors.ErrProductNotFound
	}

	product, err := s.repo.GetByID(ctx, rawID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.Internal("Failed to fetch product", err)
	}
	return product, nil
}

// SearchProducts matches query literally and case-insensitively against
// title, author, genre and description.
func (s *ProductService) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.InvalidInput("Search query is required")
	}

	products, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, apperrors.Internal("Search failed", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}
