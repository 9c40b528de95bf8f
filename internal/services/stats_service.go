package services

import (
	"context"

	"rapidreads/internal/apperrors"
	"rapidreads/internal/models"
	"rapidreads/internal/repositories"
)

const serverStatusRunning = "Running"

// StatsService builds the admin dashboard counters.
type StatsService struct {
	users    repositories.UserRepository
	products repositories.ProductRepository
}

func NewStatsService(users repositories.UserRepository, products repositories.ProductRepository) *StatsService {
	return &StatsService{users: users, products: products}
}

// Stats counts users and products.
func (s *StatsService) Stats(ctx context.Context) (*models.Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch stats", err)
	}
	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch stats", err)
	}
	return &models.Stats{
		Users:        users,
		Products:     products,
		ServerStatus: serverStatusRunning,
	}, nil
}
