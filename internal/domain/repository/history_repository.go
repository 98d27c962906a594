package repository

import (
	"context"
	"time"

	"github.com/trace-microservice/internal/domain"
)

// HistoryRepository persists the per-source idempotency markers consumed by
// the reconciliation job. Inserts are ignored on conflict.
type HistoryRepository interface {
	RecordScrape(ctx context.Context, spotID, cityID int64) error
	RecordPOI(ctx context.Context, poiID, cityID int64) error
	CityHasScrape(ctx context.Context, cityID int64) (bool, error)
	CityIDsWithScrape(ctx context.Context) ([]int64, error)
	CityIDsWithPOI(ctx context.Context) ([]int64, error)
}

type WeatherRepository interface {
	Exists(ctx context.Context, cityID int64, date time.Time) (bool, error)
	Insert(ctx context.Context, forecast *domain.DailyForecast) error
	ListByCity(ctx context.Context, cityID int64) ([]domain.DailyForecast, error)
}
