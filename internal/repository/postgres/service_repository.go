package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/trace-microservice/internal/domain/repository"
	"github.com/trace-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type serviceRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewServiceRepository(db *DB) repository.ServiceRepository {
	return &serviceRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *serviceRepository) GetOrCreate(ctx context.Context, name string, category string) (int64, error) {
	query := `
		INSERT INTO services (name, category)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, name, category).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to get or create service", zap.String("name", name), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return id, nil
}

func (r *serviceRepository) LinkSpot(ctx context.Context, spotID, serviceID int64) error {
	query := `
		INSERT INTO spot_service (spot_id, service_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, spotID, serviceID); err != nil {
		r.logger.Error("Failed to link spot service",
			zap.Int64("spot_id", spotID),
			zap.Int64("service_id", serviceID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *serviceRepository) LinkPOI(ctx context.Context, poiID, serviceID int64) error {
	query := `
		INSERT INTO poi_service (poi_id, service_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, poiID, serviceID); err != nil {
		r.logger.Error("Failed to link POI service",
			zap.Int64("poi_id", poiID),
			zap.Int64("service_id", serviceID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}
