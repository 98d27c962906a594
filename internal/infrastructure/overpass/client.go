package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/trace-microservice/internal/config"
	"github.com/trace-microservice/internal/domain"
	"github.com/trace-microservice/internal/domain/repository"
	"github.com/trace-microservice/internal/pkg/errors"
	"github.com/trace-microservice/internal/pkg/utils"
	"go.uber.org/zap"
)

// Tag selectors queried around each city. Filtering happens on the response;
// the query casts a wide net on purpose.
var poiSelectors = []string{
	`nwr["tourism"="attraction"]`,
	`nwr["tourism"="viewpoint"]`,
	`nwr["man_made"="lighthouse"]`,
	`nwr["historic"]`,
	`nwr["natural"="beach"]`,
	`nwr["amenity"="drinking_water"]`,
	`nwr["amenity"="toilets"]`,
	`nwr["amenity"="shelter"]`,
	`nwr["amenity"="parking"]`,
	`nwr["amenity"="restaurant"]`,
	`nwr["amenity"="cafe"]`,
	`nwr["amenity"="pharmacy"]`,
	`nwr["tourism"="camp_site"]`,
	`nwr["tourism"="caravan_site"]`,
	`nwr["tourism"="information"]`,
	`nwr["shop"="supermarket"]`,
	`nwr["shop"="convenience"]`,
	`nwr["shop"="bakery"]`,
	`nwr["amenity"="fuel"]`,
}

type client struct {
	httpClient *http.Client
	servers    []string
	radiusKm   float64
	logger     *zap.Logger
}

// NewOverpassClient создает новый клиент для Overpass API
func NewOverpassClient(cfg *config.OverpassConfig, logger *zap.Logger) repository.POISource {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		servers:  cfg.Servers,
		radiusKm: cfg.RadiusKm,
		logger:   logger,
	}
}

func (c *client) Name() string {
	return domain.SourceOSM
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Query runs the bounding-box POI query against the configured servers in
// order, returning the first successful response.
func (c *client) Query(ctx context.Context, city *domain.City) ([]domain.POIRecord, error) {
	south, west, north, east := utils.BoundingBoxAround(city.Latitude, city.Longitude, c.radiusKm)
	bbox := fmt.Sprintf("(%f,%f,%f,%f)", south, west, north, east)

	var b strings.Builder
	b.WriteString("[out:json][timeout:45];\n(\n")
	for _, sel := range poiSelectors {
		b.WriteString("  " + sel + bbox + ";\n")
	}
	b.WriteString(");\nout center;")

	var body *overpassResponse
	var lastErr error
	for _, server := range c.servers {
		resp, err := c.post(ctx, server, b.String())
		if err != nil {
			c.logger.Warn("Overpass server failed",
				zap.String("server", server),
				zap.String("city", city.Name),
				zap.Error(err))
			lastErr = err
			continue
		}
		body = resp
		break
	}

	if body == nil {
		c.logger.Error("All Overpass servers failed",
			zap.String("city", city.Name),
			zap.Error(lastErr))
		return nil, errors.ErrSourceUnavailable
	}

	records := c.normalize(body.Elements)
	c.logger.Info("Overpass query done",
		zap.String("city", city.Name),
		zap.Int("elements", len(body.Elements)),
		zap.Int("records", len(records)))

	return records, nil
}

func (c *client) post(ctx context.Context, server, query string) (*overpassResponse, error) {
	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, server, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass API error: status %d", resp.StatusCode)
	}

	var body overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &body, nil
}

// normalize keeps named nodes with a recognized type, plus named beach ways.
// "information" elements are kept only for the tourist office.
func (c *client) normalize(elements []overpassElement) []domain.POIRecord {
	var records []domain.POIRecord
	for _, el := range elements {
		if el.Tags == nil {
			continue
		}

		switch {
		case el.Type == "node":
			name := el.Tags["name"]
			poiType := firstNonEmpty(el.Tags["amenity"], el.Tags["tourism"], el.Tags["leisure"], el.Tags["shop"])
			if name == "" || poiType == "" {
				continue
			}
			if poiType == "information" && name != "Office du tourisme" {
				continue
			}
			records = append(records, domain.POIRecord{
				ExternalID:  strconv.FormatInt(el.ID, 10),
				Name:        name,
				Description: el.Tags["description"],
				Category:    poiType,
				Latitude:    el.Lat,
				Longitude:   el.Lon,
				URL:         el.Tags["website"],
			})

		case el.Type == "way" && el.Tags["natural"] == "beach":
			name := firstNonEmpty(el.Tags["name"], el.Tags["alt_name"])
			if name == "" || el.Center == nil {
				continue
			}
			records = append(records, domain.POIRecord{
				ExternalID:  strconv.FormatInt(el.ID, 10),
				Name:        name,
				Description: el.Tags["description"],
				Category:    "beach",
				Latitude:    el.Center.Lat,
				Longitude:   el.Center.Lon,
				URL:         el.Tags["website"],
			})
		}
	}
	return records
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
