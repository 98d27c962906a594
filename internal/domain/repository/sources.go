package repository

import (
	"context"

	"github.com/trace-microservice/internal/domain"
)

// GeoResolver is the geocoding contract. Every call retries transient remote
// failures a bounded number of times and reports "not found" as zero values
// rather than an error.
type GeoResolver interface {
	// Geocode resolves a city name to coordinates. found is false when the
	// name cannot be resolved.
	Geocode(ctx context.Context, name string) (lat, lon float64, found bool, err error)
	// ReverseCity resolves a point to a city name, or "" when none applies.
	ReverseCity(ctx context.Context, lat, lon float64) (string, error)
	// ReverseAdmin resolves a point to administrative metadata, or nil.
	ReverseAdmin(ctx context.Context, lat, lon float64) (*domain.AdminArea, error)
}

// WeatherSource fetches up to seven daily forecasts for a point.
type WeatherSource interface {
	Fetch(ctx context.Context, lat, lon float64) ([]domain.DailyForecast, error)
}

// POISource is one of the two point-of-interest providers.
type POISource interface {
	Name() string
	Query(ctx context.Context, city *domain.City) ([]domain.POIRecord, error)
}

// SpotSource is the slow, browser-driven spot provider. Search returns detail
// page URLs; Detail scrapes one page. Callers must tolerate individual Detail
// failures without aborting the batch.
type SpotSource interface {
	Search(ctx context.Context, lat, lon float64) ([]string, error)
	ExternalID(url string) string
	Detail(ctx context.Context, url string) (*domain.SpotRecord, error)
}
