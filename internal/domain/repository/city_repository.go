package repository

import (
	"context"

	"github.com/trace-microservice/internal/domain"
)

type CityRepository interface {
	// GetByName returns errors.ErrCityNotFound when no row matches.
	GetByName(ctx context.Context, name string) (*domain.City, error)
	GetAll(ctx context.Context) ([]*domain.City, error)
	Create(ctx context.Context, city *domain.City) (int64, error)
}
