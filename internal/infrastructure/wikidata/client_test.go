package wikidata_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/trace-microservice/internal/config"
	"github.com/trace-microservice/internal/domain"
	"github.com/trace-microservice/internal/infrastructure/wikidata"
	"go.uber.org/zap"
)

const sparqlJSON = `{
	"results": {
		"bindings": [
			{
				"item": {"value": "http://www.wikidata.org/entity/Q1477034"},
				"itemLabel": {"value": "Pointe Saint-Mathieu"},
				"itemDescription": {"value": "cap du Finistère"},
				"coord": {"value": "Point(-4.77083 48.33055)"},
				"types": {"value": "cap, phare"}
			},
			{
				"item": {"value": "http://www.wikidata.org/entity/Q999"},
				"itemLabel": {"value": "Monument aux morts"},
				"coord": {"value": "Point(-4.7 48.3)"},
				"types": {"value": "monument aux morts"}
			},
			{
				"item": {"value": "http://www.wikidata.org/entity/Q888"},
				"itemLabel": {"value": "Sans Position"},
				"coord": {"value": "not-a-point"},
				"types": {"value": "château"}
			}
		]
	}
}`

func newTestConfig() *config.WikidataConfig {
	return &config.WikidataConfig{
		BaseURL:        "https://query.wikidata.test/sparql",
		UserAgent:      "trace-microservice-test",
		RadiusKm:       10,
		RequestTimeout: 5,
		MaxRetries:     3,
	}
}

func testCity() *domain.City {
	return &domain.City{ID: 1, Name: "Plougonvelin", Latitude: 48.34, Longitude: -4.72}
}

func TestQuery_NormalizesBindings(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://query.wikidata.test/sparql",
		func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Contains(t, q.Get("query"), `"Plougonvelin"@fr`)
			assert.Equal(t, "json", q.Get("format"))
			return httpmock.NewStringResponse(200, sparqlJSON), nil
		})

	client := wikidata.NewWikidataClient(newTestConfig(), zap.NewNop())

	records, err := client.Query(context.Background(), testCity())

	assert.NoError(t, err)
	// Памятники и записи без координат отфильтрованы
	if assert.Len(t, records, 1) {
		rec := records[0]
		assert.Equal(t, "http://www.wikidata.org/entity/Q1477034", rec.ExternalID)
		assert.Equal(t, rec.ExternalID, rec.URL)
		assert.Equal(t, "Pointe Saint-Mathieu", rec.Name)
		assert.Equal(t, "cap, phare", rec.Category)
		assert.InDelta(t, 48.33055, rec.Latitude, 0.0001)
		assert.InDelta(t, -4.77083, rec.Longitude, 0.0001)
		assert.True(t, rec.Verified)
	}
}

func TestQuery_GatewayTimeoutEntersRetryWait(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://query.wikidata.test/sparql",
		httpmock.NewStringResponder(504, "timeout"))

	client := wikidata.NewWikidataClient(newTestConfig(), zap.NewNop())

	// Отменяем контекст в паузе перед ретраем, чтобы тест не ждал 5 секунд
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	_, err := client.Query(ctx, testCity())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestQuery_NonRetryableStatusFails(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://query.wikidata.test/sparql",
		httpmock.NewStringResponder(400, "bad query"))

	client := wikidata.NewWikidataClient(newTestConfig(), zap.NewNop())

	_, err := client.Query(context.Background(), testCity())
	assert.Error(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestName(t *testing.T) {
	assert.Equal(t, domain.SourceWikidata, wikidata.NewWikidataClient(newTestConfig(), zap.NewNop()).Name())
}

func TestParsePointWKT(t *testing.T) {
	tests := []struct {
		wkt string
		lat float64
		lon float64
		ok  bool
	}{
		{"Point(-4.75968 48.36939)", 48.36939, -4.75968, true},
		{"Point(6.0 45.0)", 45.0, 6.0, true},
		{"Point(6.0)", 0, 0, false},
		{"not-a-point", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		lat, lon, ok := wikidata.ParsePointWKT(tt.wkt)
		assert.Equal(t, tt.ok, ok, tt.wkt)
		if tt.ok {
			assert.Equal(t, tt.lat, lat, tt.wkt)
			assert.Equal(t, tt.lon, lon, tt.wkt)
		}
	}
}
