package wikidata

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
	"go.uber.org/zap"
)

const retryDelay = 5 * time.Second

type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	radiusKm   float64
	maxRetries int
	logger     *zap.Logger
}

// NewWikidataClient создает новый клиент для Wikidata SPARQL API
func NewWikidataClient(cfg *config.WikidataConfig, logger *zap.Logger) repository.POISource {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		radiusKm:   cfg.RadiusKm,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

func (c *client) Name() string {
	return domain.SourceWikidata
}

type sparqlResponse struct {
	Results struct {
		Bindings []map[string]sparqlValue `json:"bindings"`
	} `json:"results"`
}

type sparqlValue struct {
	Value string `json:"value"`
}

// Query searches entities of the targeted landmark classes around the city
// commune. A 504 from the query service is retried after a fixed delay.
func (c *client) Query(ctx context.Context, city *domain.City) ([]domain.POIRecord, error) {
	query := c.buildQuery(city.Name)

	params := url.Values{}
	params.Set("query", query)
	params.Set("format", "json")
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	var body *sparqlResponse
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		resp, status, err := c.get(ctx, reqURL)
		if err == nil {
			body = resp
			break
		}
		lastErr = err

		if status == http.StatusGatewayTimeout && attempt < c.maxRetries {
			c.logger.Warn("Wikidata query timed out, retrying",
				zap.String("city", city.Name),
				zap.Int("attempt", attempt))
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			continue
		}
		break
	}

	if body == nil {
		c.logger.Error("Wikidata query failed", zap.String("city", city.Name), zap.Error(lastErr))
		return nil, lastErr
	}

	records := c.normalize(body.Results.Bindings)
	c.logger.Info("Wikidata query done",
		zap.String("city", city.Name),
		zap.Int("bindings", len(body.Results.Bindings)),
		zap.Int("records", len(records)))

	return records, nil
}

func (c *client) get(ctx context.Context, reqURL string) (*sparqlResponse, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("wikidata API error: status %d", resp.StatusCode)
	}

	var body sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}

	return &body, resp.StatusCode, nil
}

// buildQuery centers the search on the French commune matching the city name
// and collects landmark entities within the configured radius, one aggregated
// row per entity.
func (c *client) buildQuery(cityName string) string {
	return fmt.Sprintf(`SELECT ?item
    (SAMPLE(?label) AS ?itemLabel)
    (SAMPLE(?desc) AS ?itemDescription)
    (SAMPLE(?coord) AS ?coord)
    (SAMPLE(?image) AS ?image)
    (GROUP_CONCAT(DISTINCT ?baseTypeLabel; separator=", ") AS ?types)
WHERE {
  BIND("%s"@fr AS ?name)
  ?place rdfs:label ?name ;
         wdt:P31/wdt:P279* wd:Q484170 ;
         wdt:P625 ?center .

  ?item wdt:P625 ?coord .
  SERVICE wikibase:around {
    ?item wdt:P625 ?loc .
    bd:serviceParam wikibase:center ?center .
    bd:serviceParam wikibase:radius "%s" .
  }

  VALUES ?baseType {
    wd:Q570116
    wd:Q23397
    wd:Q57821
    wd:Q16970
    wd:Q839954
    wd:Q4989906
    wd:Q49899
    wd:Q44539
  }
  ?item wdt:P31/wdt:P279* ?baseType .

  OPTIONAL { ?item wdt:P18 ?image. }
  OPTIONAL { ?item schema:description ?desc FILTER(LANG(?desc)="fr") }

  OPTIONAL { ?item rdfs:label ?lfr FILTER(LANG(?lfr)="fr") }
  OPTIONAL { ?item rdfs:label ?len FILTER(LANG(?len)="en") }
  BIND( COALESCE(?lfr, ?len, STRAFTER(STR(?item),"entity/")) AS ?label )

  SERVICE wikibase:label { bd:serviceParam wikibase:language "fr,en".
                           ?baseType rdfs:label ?baseTypeLabel. }
}
GROUP BY ?item
ORDER BY ?itemLabel
LIMIT 500`, cityName, strconv.FormatFloat(c.radiusKm, 'f', -1, 64))
}

// normalize drops monuments and bindings without a usable position. Entities
// surviving the filter are marked verified.
func (c *client) normalize(bindings []map[string]sparqlValue) []domain.POIRecord {
	var records []domain.POIRecord
	for _, binding := range bindings {
		entityURI := binding["item"].Value
		name := binding["itemLabel"].Value
		poiType := binding["types"].Value

		if entityURI == "" || name == "" {
			continue
		}
		if strings.Contains(strings.ToLower(poiType), "monument") {
			continue
		}

		lat, lon, ok := ParsePointWKT(binding["coord"].Value)
		if !ok {
			continue
		}

		records = append(records, domain.POIRecord{
			ExternalID:  entityURI,
			Name:        name,
			Description: binding["itemDescription"].Value,
			Category:    poiType,
			Latitude:    lat,
			Longitude:   lon,
			ImageURL:    binding["image"].Value,
			URL:         entityURI,
			Verified:    true,
		})
	}
	return records
}

// ParsePointWKT parses a "Point(lon lat)" literal.
func ParsePointWKT(wkt string) (lat, lon float64, ok bool) {
	s := strings.TrimSuffix(strings.TrimPrefix(wkt, "Point("), ")")
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return 0, 0, false
	}

	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, false
	}
	lat, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, false
	}

	return lat, lon, true
}
