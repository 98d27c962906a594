package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/trace-microservice/internal/domain"
	"github.com/trace-microservice/internal/domain/repository"
	"github.com/trace-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type cityRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCityRepository(db *DB) repository.CityRepository {
	return &cityRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *cityRepository) GetByName(ctx context.Context, name string) (*domain.City, error) {
	query := `
		SELECT id, name, latitude, longitude, department, region, country
		FROM cities
		WHERE name = $1
	`

	var city domain.City
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&city.ID, &city.Name, &city.Latitude, &city.Longitude,
		&city.Department, &city.Region, &city.Country,
	)

	if err == sql.ErrNoRows {
		return nil, errors.ErrCityNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get city by name", zap.String("name", name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &city, nil
}

func (r *cityRepository) GetAll(ctx context.Context) ([]*domain.City, error) {
	query := `
		SELECT id, name, latitude, longitude, department, region, country
		FROM cities
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to get cities", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var cities []*domain.City
	for rows.Next() {
		var c domain.City
		err := rows.Scan(&c.ID, &c.Name, &c.Latitude, &c.Longitude, &c.Department, &c.Region, &c.Country)
		if err != nil {
			r.logger.Error("Failed to scan city", zap.Error(err))
			continue
		}
		cities = append(cities, &c)
	}

	return cities, nil
}

func (r *cityRepository) Create(ctx context.Context, city *domain.City) (int64, error) {
	query := `
		INSERT INTO cities (name, latitude, longitude, department, region, country)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		city.Name, city.Latitude, city.Longitude,
		city.Department, city.Region, city.Country,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to create city", zap.String("name", city.Name), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return id, nil
}
