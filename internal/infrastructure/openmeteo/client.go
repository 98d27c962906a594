package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/trace-microservice/internal/config"
	"github.com/trace-microservice/internal/domain"
	"github.com/trace-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

const dailyParams = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum,wind_speed_10m_max,shortwave_radiation_sum"

type client struct {
	httpClient   *http.Client
	baseURL      string
	timezone     string
	forecastDays int
	logger       *zap.Logger
}

// NewOpenMeteoClient создает новый клиент для Open-Meteo API
func NewOpenMeteoClient(cfg *config.WeatherConfig, logger *zap.Logger) repository.WeatherSource {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:      cfg.BaseURL,
		timezone:     cfg.Timezone,
		forecastDays: cfg.ForecastDays,
		logger:       logger,
	}
}

type forecastResponse struct {
	Daily struct {
		Time                  []string  `json:"time"`
		WeatherCode           []int     `json:"weather_code"`
		TemperatureMax        []float64 `json:"temperature_2m_max"`
		TemperatureMin        []float64 `json:"temperature_2m_min"`
		PrecipitationSum      []float64 `json:"precipitation_sum"`
		WindSpeedMax          []float64 `json:"wind_speed_10m_max"`
		ShortwaveRadiationSum []float64 `json:"shortwave_radiation_sum"`
	} `json:"daily"`
}

// Fetch returns one forecast per day for the configured horizon. CityID is
// left unset; the caller attaches it before persisting.
func (c *client) Fetch(ctx context.Context, lat, lon float64) ([]domain.DailyForecast, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("daily", dailyParams)
	query.Set("timezone", c.timezone)
	query.Set("forecast_days", strconv.Itoa(c.forecastDays))

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute weather request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Weather API returned error", zap.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("weather API error: status %d", resp.StatusCode)
	}

	var body forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	daily := body.Daily
	forecasts := make([]domain.DailyForecast, 0, len(daily.Time))
	for i, day := range daily.Time {
		date, err := time.Parse("2006-01-02", day)
		if err != nil {
			c.logger.Warn("Skipping forecast day with bad date", zap.String("date", day))
			continue
		}

		f := domain.DailyForecast{Date: date}
		if i < len(daily.WeatherCode) {
			f.WeatherCode = daily.WeatherCode[i]
		}
		if i < len(daily.TemperatureMax) {
			f.TempMaxC = daily.TemperatureMax[i]
		}
		if i < len(daily.TemperatureMin) {
			f.TempMinC = daily.TemperatureMin[i]
		}
		if i < len(daily.PrecipitationSum) {
			f.PrecipitationMm = daily.PrecipitationSum[i]
		}
		if i < len(daily.WindSpeedMax) {
			f.WindMaxKmh = daily.WindSpeedMax[i]
		}
		if i < len(daily.ShortwaveRadiationSum) {
			f.SolarEnergySum = daily.ShortwaveRadiationSum[i]
		}
		forecasts = append(forecasts, f)
	}

	c.logger.Debug("Fetched forecast",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.Int("days", len(forecasts)))

	return forecasts, nil
}
