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

type poiRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPOIRepository(db *DB) repository.POIRepository {
	return &poiRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *poiRepository) GetIDByExternalID(ctx context.Context, externalID string, sourceID int64) (int64, error) {
	query := `SELECT id FROM poi WHERE external_id = $1 AND source_id = $2 LIMIT 1`

	var id int64
	err := r.db.QueryRowContext(ctx, query, externalID, sourceID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		r.logger.Error("Failed to look up POI external id",
			zap.String("external_id", externalID),
			zap.Int64("source_id", sourceID),
			zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return id, nil
}

func (r *poiRepository) Create(ctx context.Context, poi *domain.POI) (int64, error) {
	query := `
		INSERT INTO poi (
			name, description, latitude, longitude,
			image_url, url, external_id, source_id, verified
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		poi.Name, poi.Description, poi.Latitude, poi.Longitude,
		poi.ImageURL, poi.URL, poi.ExternalID, poi.SourceID, poi.Verified,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to create POI",
			zap.String("external_id", poi.ExternalID),
			zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return id, nil
}
