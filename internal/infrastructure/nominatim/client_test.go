package nominatim_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/trace-microservice/internal/config"
	"github.com/trace-microservice/internal/infrastructure/nominatim"
	"go.uber.org/zap"
)

func newTestConfig() *config.GeocoderConfig {
	return &config.GeocoderConfig{
		BaseURL:        "https://nominatim.test",
		UserAgent:      "trace-microservice-test",
		Country:        "France",
		Language:       "fr",
		RequestTimeout: 5,
		MaxRetries:     3,
		RetryBackoff:   time.Millisecond,
	}
}

func TestGeocode_Success(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://nominatim.test/search",
		httpmock.NewStringResponder(200, `[{"lat": "48.3903", "lon": "-4.4863"}]`))

	client := nominatim.NewNominatimClient(newTestConfig(), zap.NewNop())

	lat, lon, found, err := client.Geocode(context.Background(), "Brest")

	assert.NoError(t, err)
	assert.True(t, found)
	assert.InDelta(t, 48.3903, lat, 0.0001)
	assert.InDelta(t, -4.4863, lon, 0.0001)
}

func TestGeocode_NoResult(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://nominatim.test/search",
		httpmock.NewStringResponder(200, `[]`))

	client := nominatim.NewNominatimClient(newTestConfig(), zap.NewNop())

	_, _, found, err := client.Geocode(context.Background(), "Nulle Part")

	assert.NoError(t, err)
	assert.False(t, found)
}

func TestGeocode_RemoteFailureReportsNotFound(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://nominatim.test/search",
		httpmock.NewStringResponder(500, "boom"))

	client := nominatim.NewNominatimClient(newTestConfig(), zap.NewNop())

	_, _, found, err := client.Geocode(context.Background(), "Brest")

	assert.NoError(t, err)
	assert.False(t, found)
	// Все попытки ушли на ретраи
	assert.Equal(t, 3, httpmock.GetTotalCallCount())
}

func TestGeocode_RetryThenSuccess(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	calls := 0
	httpmock.RegisterResponder("GET", "https://nominatim.test/search",
		func(req *http.Request) (*http.Response, error) {
			calls++
			if calls == 1 {
				return httpmock.NewStringResponse(503, "unavailable"), nil
			}
			return httpmock.NewStringResponse(200, `[{"lat": "45.0", "lon": "6.0"}]`), nil
		})

	client := nominatim.NewNominatimClient(newTestConfig(), zap.NewNop())

	lat, lon, found, err := client.Geocode(context.Background(), "Briançon")

	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 45.0, lat)
	assert.Equal(t, 6.0, lon)
	assert.Equal(t, 2, calls)
}

func TestReverseCity_LocalityFallback(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	// city отсутствует, берётся village
	httpmock.RegisterResponder("GET", "https://nominatim.test/reverse",
		httpmock.NewStringResponder(200, `{"address": {"village": "Plougonvelin", "county": "Finistère", "state": "Bretagne", "country": "France"}}`))

	client := nominatim.NewNominatimClient(newTestConfig(), zap.NewNop())

	city, err := client.ReverseCity(context.Background(), 48.34, -4.72)

	assert.NoError(t, err)
	assert.Equal(t, "Plougonvelin", city)
}

func TestReverseCity_NoLocality(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://nominatim.test/reverse",
		httpmock.NewStringResponder(200, `{"address": {"country": "France"}}`))

	client := nominatim.NewNominatimClient(newTestConfig(), zap.NewNop())

	city, err := client.ReverseCity(context.Background(), 47.0, -5.0)

	assert.NoError(t, err)
	assert.Equal(t, "", city)
}

func TestReverseAdmin(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://nominatim.test/reverse",
		httpmock.NewStringResponder(200, `{"address": {"town": "Brest", "county": "Finistère", "state": "Bretagne", "country": "France"}}`))

	client := nominatim.NewNominatimClient(newTestConfig(), zap.NewNop())

	admin, err := client.ReverseAdmin(context.Background(), 48.39, -4.49)

	assert.NoError(t, err)
	if assert.NotNil(t, admin) {
		assert.Equal(t, "Finistère", admin.Department)
		assert.Equal(t, "Bretagne", admin.Region)
		assert.Equal(t, "France", admin.Country)
	}
}
