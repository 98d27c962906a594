package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/trace-microservice/internal/domain/repository"
	"github.com/trace-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type historyRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewHistoryRepository(db *DB) repository.HistoryRepository {
	return &historyRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *historyRepository) RecordScrape(ctx context.Context, spotID, cityID int64) error {
	query := `
		INSERT INTO scrape_history (spot_id, city_id)
		VALUES ($1, $2)
		ON CONFLICT (spot_id, city_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, spotID, cityID); err != nil {
		r.logger.Error("Failed to record scrape history",
			zap.Int64("spot_id", spotID),
			zap.Int64("city_id", cityID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *historyRepository) RecordPOI(ctx context.Context, poiID, cityID int64) error {
	query := `
		INSERT INTO poi_history (poi_id, city_id)
		VALUES ($1, $2)
		ON CONFLICT (poi_id, city_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, poiID, cityID); err != nil {
		r.logger.Error("Failed to record POI history",
			zap.Int64("poi_id", poiID),
			zap.Int64("city_id", cityID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *historyRepository) CityHasScrape(ctx context.Context, cityID int64) (bool, error) {
	query := `SELECT 1 FROM scrape_history WHERE city_id = $1 LIMIT 1`

	var one int
	err := r.db.QueryRowContext(ctx, query, cityID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		r.logger.Error("Failed to check scrape history", zap.Int64("city_id", cityID), zap.Error(err))
		return false, errors.ErrDatabaseError
	}

	return true, nil
}

func (r *historyRepository) CityIDsWithScrape(ctx context.Context) ([]int64, error) {
	return r.cityIDs(ctx, `SELECT DISTINCT city_id FROM scrape_history`)
}

func (r *historyRepository) CityIDsWithPOI(ctx context.Context) ([]int64, error) {
	return r.cityIDs(ctx, `SELECT DISTINCT city_id FROM poi_history`)
}

func (r *historyRepository) cityIDs(ctx context.Context, query string) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list history city ids", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			r.logger.Error("Failed to scan history city id", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate history city ids", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return ids, nil
}
