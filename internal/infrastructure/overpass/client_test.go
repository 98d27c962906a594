package overpass_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/trace-microservice/internal/config"
	"github.com/trace-microservice/internal/domain"
	"github.com/trace-microservice/internal/infrastructure/overpass"
	"github.com/trace-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

const overpassJSON = `{
	"elements": [
		{"type": "node", "id": 1, "lat": 48.36, "lon": -4.77, "tags": {"name": "Plage du Trez Hir", "amenity": "drinking_water"}},
		{"type": "node", "id": 2, "lat": 48.36, "lon": -4.76, "tags": {"amenity": "toilets"}},
		{"type": "node", "id": 3, "lat": 48.37, "lon": -4.75, "tags": {"name": "Accueil", "tourism": "information"}},
		{"type": "node", "id": 4, "lat": 48.37, "lon": -4.74, "tags": {"name": "Office du tourisme", "tourism": "information"}},
		{"type": "way", "id": 5, "center": {"lat": 48.35, "lon": -4.77}, "tags": {"natural": "beach", "alt_name": "Grande Plage"}},
		{"type": "way", "id": 6, "tags": {"natural": "beach", "name": "Sans Centre"}},
		{"type": "way", "id": 7, "center": {"lat": 48.34, "lon": -4.78}, "tags": {"highway": "residential", "name": "Rue du Port"}}
	]
}`

func newTestConfig() *config.OverpassConfig {
	return &config.OverpassConfig{
		Servers:        []string{"https://overpass-a.test/api", "https://overpass-b.test/api"},
		RadiusKm:       5.55,
		RequestTimeout: 5,
	}
}

func testCity() *domain.City {
	return &domain.City{ID: 1, Name: "Plougonvelin", Latitude: 48.34, Longitude: -4.72}
}

func TestQuery_NormalizesElements(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", "https://overpass-a.test/api",
		func(req *http.Request) (*http.Response, error) {
			raw, _ := io.ReadAll(req.Body)
			body := string(raw)
			assert.Contains(t, body, "out%3Ajson")
			return httpmock.NewStringResponse(200, overpassJSON), nil
		})

	client := overpass.NewOverpassClient(newTestConfig(), zap.NewNop())

	records, err := client.Query(context.Background(), testCity())

	assert.NoError(t, err)
	// Безымянный узел, чужой info-пункт и way без центра отфильтрованы
	if assert.Len(t, records, 3) {
		assert.Equal(t, "1", records[0].ExternalID)
		assert.Equal(t, "Plage du Trez Hir", records[0].Name)
		assert.Equal(t, "drinking_water", records[0].Category)

		assert.Equal(t, "4", records[1].ExternalID)
		assert.Equal(t, "Office du tourisme", records[1].Name)

		assert.Equal(t, "5", records[2].ExternalID)
		assert.Equal(t, "Grande Plage", records[2].Name)
		assert.Equal(t, "beach", records[2].Category)
		assert.Equal(t, 48.35, records[2].Latitude)
		assert.Equal(t, -4.77, records[2].Longitude)
	}
}

func TestQuery_FallsBackToSecondServer(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", "https://overpass-a.test/api",
		httpmock.NewStringResponder(504, "gateway timeout"))
	httpmock.RegisterResponder("POST", "https://overpass-b.test/api",
		httpmock.NewStringResponder(200, `{"elements": []}`))

	client := overpass.NewOverpassClient(newTestConfig(), zap.NewNop())

	records, err := client.Query(context.Background(), testCity())

	assert.NoError(t, err)
	assert.Empty(t, records)
	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["POST https://overpass-a.test/api"])
	assert.Equal(t, 1, info["POST https://overpass-b.test/api"])
}

func TestQuery_AllServersFail(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", "https://overpass-a.test/api",
		httpmock.NewStringResponder(500, "boom"))
	httpmock.RegisterResponder("POST", "https://overpass-b.test/api",
		httpmock.NewStringResponder(500, "boom"))

	client := overpass.NewOverpassClient(newTestConfig(), zap.NewNop())

	_, err := client.Query(context.Background(), testCity())
	assert.ErrorIs(t, err, errors.ErrSourceUnavailable)
}

func TestName(t *testing.T) {
	client := overpass.NewOverpassClient(newTestConfig(), zap.NewNop())
	assert.Equal(t, domain.SourceOSM, client.Name())
}
