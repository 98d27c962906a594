package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/trace-microservice/internal/domain"
	"github.com/trace-microservice/internal/domain/repository"
	"github.com/trace-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type weatherRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewWeatherRepository(db *DB) repository.WeatherRepository {
	return &weatherRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *weatherRepository) Exists(ctx context.Context, cityID int64, date time.Time) (bool, error) {
	query := `SELECT 1 FROM weather WHERE city_id = $1 AND date = $2 LIMIT 1`

	var one int
	err := r.db.QueryRowContext(ctx, query, cityID, date).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		r.logger.Error("Failed to check weather row",
			zap.Int64("city_id", cityID),
			zap.Time("date", date),
			zap.Error(err))
		return false, errors.ErrDatabaseError
	}

	return true, nil
}

func (r *weatherRepository) Insert(ctx context.Context, forecast *domain.DailyForecast) error {
	query := `
		INSERT INTO weather (
			city_id, date, temp_max_c, temp_min_c,
			precipitation_mm, wind_max_kmh, weather_code, solar_energy_sum
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (city_id, date) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		forecast.CityID, forecast.Date, forecast.TempMaxC, forecast.TempMinC,
		forecast.PrecipitationMm, forecast.WindMaxKmh, forecast.WeatherCode, forecast.SolarEnergySum,
	)
	if err != nil {
		r.logger.Error("Failed to insert forecast",
			zap.Int64("city_id", forecast.CityID),
			zap.Time("date", forecast.Date),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *weatherRepository) ListByCity(ctx context.Context, cityID int64) ([]domain.DailyForecast, error) {
	query := `
		SELECT id, city_id, date, temp_max_c, temp_min_c,
		       precipitation_mm, wind_max_kmh, weather_code, solar_energy_sum
		FROM weather
		WHERE city_id = $1
		ORDER BY date
	`

	var forecasts []domain.DailyForecast
	if err := r.db.SelectContext(ctx, &forecasts, query, cityID); err != nil {
		r.logger.Error("Failed to list forecasts",
			zap.Int64("city_id", cityID),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return forecasts, nil
}
