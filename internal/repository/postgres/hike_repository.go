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

type hikeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewHikeRepository(db *DB) repository.HikeRepository {
	return &hikeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *hikeRepository) ExistsByFilename(ctx context.Context, filename string) (bool, error) {
	query := `SELECT 1 FROM hikes WHERE filename = $1 LIMIT 1`

	var one int
	err := r.db.QueryRowContext(ctx, query, filename).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		r.logger.Error("Failed to check hike filename", zap.String("filename", filename), zap.Error(err))
		return false, errors.ErrDatabaseError
	}

	return true, nil
}

func (r *hikeRepository) Create(ctx context.Context, hike *domain.Hike) (int64, error) {
	query := `
		INSERT INTO hikes (
			name, description, start_latitude, start_longitude,
			distance_km, elevation_gain_m, estimated_duration_h, difficulty,
			filename, document_ref, source_id, city_id, verified
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULL, $10, $11, $12)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		hike.Name, hike.Description, hike.StartLatitude, hike.StartLongitude,
		hike.DistanceKm, hike.ElevationGainM, hike.EstimatedDurationH, hike.Difficulty,
		hike.Filename, hike.SourceID, hike.CityID, hike.Verified,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to create hike",
			zap.String("filename", hike.Filename),
			zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return id, nil
}

func (r *hikeRepository) SetDocumentRef(ctx context.Context, hikeID int64, documentRef string) error {
	query := `UPDATE hikes SET document_ref = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, documentRef, hikeID)
	if err != nil {
		r.logger.Error("Failed to patch hike document_ref",
			zap.Int64("hike_id", hikeID),
			zap.String("document_ref", documentRef),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.ErrHikeNotFound
	}

	return nil
}

func (r *hikeRepository) GetByID(ctx context.Context, id int64) (*domain.Hike, error) {
	query := `
		SELECT id, name, description, start_latitude, start_longitude,
		       distance_km, elevation_gain_m, estimated_duration_h, difficulty,
		       filename, document_ref, source_id, city_id, verified, imported_at
		FROM hikes
		WHERE id = $1
	`

	var hike domain.Hike
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&hike.ID, &hike.Name, &hike.Description, &hike.StartLatitude, &hike.StartLongitude,
		&hike.DistanceKm, &hike.ElevationGainM, &hike.EstimatedDurationH, &hike.Difficulty,
		&hike.Filename, &hike.DocumentRef, &hike.SourceID, &hike.CityID, &hike.Verified, &hike.ImportedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.ErrHikeNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get hike by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &hike, nil
}
