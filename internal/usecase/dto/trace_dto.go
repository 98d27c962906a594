package dto

import (
	"time"

	"github.com/trace-microservice/internal/domain"
)

// UploadResponse подтверждает приём файла трека
type UploadResponse struct {
	Filename string   `json:"filename"`
	Status   string   `json:"status"`
	Cities   []string `json:"cities,omitempty"`
}

// IntakeResponse - итог одного прохода импорта
type IntakeResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Cities   []string `json:"cities,omitempty"`
}

// EnrichCityRequest - ручной запуск обогащения одного города
type EnrichCityRequest struct {
	City string `json:"city" validate:"required,min=1"`
}

// ReconcileResponse - итог одного запуска догона
type ReconcileResponse struct {
	Cities       int `json:"cities"`
	MissingPOI   int `json:"missing_poi"`
	MissingScrap int `json:"missing_scrape"`
}

// ForecastDay - день прогноза с иконкой для фронта
type ForecastDay struct {
	Date            time.Time `json:"date"`
	TempMaxC        float64   `json:"temp_max_c"`
	TempMinC        float64   `json:"temp_min_c"`
	PrecipitationMm float64   `json:"precipitation_mm"`
	WindMaxKmh      float64   `json:"wind_max_kmh"`
	WeatherCode     int       `json:"weather_code"`
	Picto           string    `json:"picto"`
}

// HikeDetail is a hike row, optionally with its trace document attached.
type HikeDetail struct {
	Hike  *domain.Hike          `json:"hike"`
	Trace *domain.TraceDocument `json:"trace,omitempty"`
}
