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

type spotRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSpotRepository(db *DB) repository.SpotRepository {
	return &spotRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *spotRepository) ExistsByExternalID(ctx context.Context, externalID string, sourceID int64) (bool, error) {
	query := `SELECT 1 FROM spots WHERE external_id = $1 AND source_id = $2 LIMIT 1`

	var one int
	err := r.db.QueryRowContext(ctx, query, externalID, sourceID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		r.logger.Error("Failed to check spot external id",
			zap.String("external_id", externalID),
			zap.Int64("source_id", sourceID),
			zap.Error(err))
		return false, errors.ErrDatabaseError
	}

	return true, nil
}

func (r *spotRepository) Create(ctx context.Context, spot *domain.Spot) (int64, error) {
	query := `
		INSERT INTO spots (
			name, description, type, latitude, longitude,
			external_id, rating, url, source_id, verified
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		spot.Name, spot.Description, spot.Type, spot.Latitude, spot.Longitude,
		spot.ExternalID, spot.Rating, spot.URL, spot.SourceID, spot.Verified,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to create spot",
			zap.String("external_id", spot.ExternalID),
			zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return id, nil
}
