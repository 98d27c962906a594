package nominatim

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

type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	country    string
	language   string
	maxRetries int
	backoff    time.Duration
	logger     *zap.Logger
}

// NewNominatimClient создает новый клиент для Nominatim API
func NewNominatimClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.GeoResolver {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		country:    cfg.Country,
		language:   cfg.Language,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoff,
		logger:     logger,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type reverseResult struct {
	Address struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
		Hamlet       string `json:"hamlet"`
		County       string `json:"county"`
		State        string `json:"state"`
		Country      string `json:"country"`
	} `json:"address"`
}

// Geocode resolves a city name to coordinates. Remote failures are retried
// with a fixed backoff; after the last attempt the point is reported as not
// found instead of failing the caller.
func (c *client) Geocode(ctx context.Context, name string) (float64, float64, bool, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("%s, %s", name, c.country))
	query.Set("format", "json")
	query.Set("limit", "1")

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, query.Encode())

	var results []searchResult
	if err := c.getJSON(ctx, reqURL, &results); err != nil {
		c.logger.Warn("Geocoding failed", zap.String("city", name), zap.Error(err))
		return 0, 0, false, nil
	}

	if len(results) == 0 {
		c.logger.Warn("No coordinates found for city", zap.String("city", name))
		return 0, 0, false, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, false, nil
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, false, nil
	}

	c.logger.Debug("Geocoded city",
		zap.String("city", name),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))

	return lat, lon, true, nil
}

// ReverseCity resolves a point to a locality name, trying address levels from
// the most specific to the most general.
func (c *client) ReverseCity(ctx context.Context, lat, lon float64) (string, error) {
	result, err := c.reverse(ctx, lat, lon)
	if err != nil {
		c.logger.Warn("Reverse geocoding failed",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err))
		return "", nil
	}

	addr := result.Address
	for _, candidate := range []string{addr.City, addr.Town, addr.Village, addr.Municipality, addr.Hamlet} {
		if candidate != "" {
			return candidate, nil
		}
	}

	c.logger.Warn("No locality in reverse geocoding result",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))
	return "", nil
}

// ReverseAdmin resolves administrative metadata for a point, or nil when the
// lookup fails.
func (c *client) ReverseAdmin(ctx context.Context, lat, lon float64) (*domain.AdminArea, error) {
	result, err := c.reverse(ctx, lat, lon)
	if err != nil {
		c.logger.Warn("Admin reverse geocoding failed",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err))
		return nil, nil
	}

	return &domain.AdminArea{
		Department: result.Address.County,
		Region:     result.Address.State,
		Country:    result.Address.Country,
	}, nil
}

func (c *client) reverse(ctx context.Context, lat, lon float64) (*reverseResult, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("format", "json")
	query.Set("accept-language", c.language)

	reqURL := fmt.Sprintf("%s/reverse?%s", c.baseURL, query.Encode())

	var result reverseResult
	if err := c.getJSON(ctx, reqURL, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		err := c.doOnce(ctx, reqURL, out)
		if err == nil {
			return nil
		}
		lastErr = err

		c.logger.Debug("Nominatim request failed",
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < c.maxRetries {
			select {
			case <-time.After(c.backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return lastErr
}

func (c *client) doOnce(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nominatim API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
