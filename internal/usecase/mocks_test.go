package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/trace-microservice/internal/domain"
)

// MockGeoResolver is a mock of GeoResolver
type MockGeoResolver struct {
	mock.Mock
}

func (m *MockGeoResolver) Geocode(ctx context.Context, name string) (float64, float64, bool, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(float64), args.Get(1).(float64), args.Bool(2), args.Error(3)
}

func (m *MockGeoResolver) ReverseCity(ctx context.Context, lat, lon float64) (string, error) {
	args := m.Called(ctx, lat, lon)
	return args.String(0), args.Error(1)
}

func (m *MockGeoResolver) ReverseAdmin(ctx context.Context, lat, lon float64) (*domain.AdminArea, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminArea), args.Error(1)
}

// MockCityRepository is a mock of CityRepository
type MockCityRepository struct {
	mock.Mock
}

func (m *MockCityRepository) GetByName(ctx context.Context, name string) (*domain.City, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockCityRepository) GetAll(ctx context.Context) ([]*domain.City, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.City), args.Error(1)
}

func (m *MockCityRepository) Create(ctx context.Context, city *domain.City) (int64, error) {
	args := m.Called(ctx, city)
	return args.Get(0).(int64), args.Error(1)
}

// MockHikeRepository is a mock of HikeRepository
type MockHikeRepository struct {
	mock.Mock
}

func (m *MockHikeRepository) ExistsByFilename(ctx context.Context, filename string) (bool, error) {
	args := m.Called(ctx, filename)
	return args.Bool(0), args.Error(1)
}

func (m *MockHikeRepository) Create(ctx context.Context, hike *domain.Hike) (int64, error) {
	args := m.Called(ctx, hike)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHikeRepository) SetDocumentRef(ctx context.Context, hikeID int64, documentRef string) error {
	args := m.Called(ctx, hikeID, documentRef)
	return args.Error(0)
}

func (m *MockHikeRepository) GetByID(ctx context.Context, id int64) (*domain.Hike, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hike), args.Error(1)
}

// MockSourceRepository is a mock of SourceRepository
type MockSourceRepository struct {
	mock.Mock
}

func (m *MockSourceRepository) GetOrCreate(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

// MockTraceDocumentRepository is a mock of TraceDocumentRepository
type MockTraceDocumentRepository struct {
	mock.Mock
}

func (m *MockTraceDocumentRepository) Insert(ctx context.Context, doc *domain.TraceDocument) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

func (m *MockTraceDocumentRepository) Get(ctx context.Context, id string) (*domain.TraceDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TraceDocument), args.Error(1)
}

// MockWeatherSource is a mock of WeatherSource
type MockWeatherSource struct {
	mock.Mock
}

func (m *MockWeatherSource) Fetch(ctx context.Context, lat, lon float64) ([]domain.DailyForecast, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyForecast), args.Error(1)
}

// MockWeatherRepository is a mock of WeatherRepository
type MockWeatherRepository struct {
	mock.Mock
}

func (m *MockWeatherRepository) Exists(ctx context.Context, cityID int64, date time.Time) (bool, error) {
	args := m.Called(ctx, cityID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockWeatherRepository) Insert(ctx context.Context, forecast *domain.DailyForecast) error {
	args := m.Called(ctx, forecast)
	return args.Error(0)
}

func (m *MockWeatherRepository) ListByCity(ctx context.Context, cityID int64) ([]domain.DailyForecast, error) {
	args := m.Called(ctx, cityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyForecast), args.Error(1)
}

// MockPOISource is a mock of POISource
type MockPOISource struct {
	mock.Mock
	name string
}

func (m *MockPOISource) Name() string {
	return m.name
}

func (m *MockPOISource) Query(ctx context.Context, city *domain.City) ([]domain.POIRecord, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.POIRecord), args.Error(1)
}

// MockPOIRepository is a mock of POIRepository
type MockPOIRepository struct {
	mock.Mock
}

func (m *MockPOIRepository) GetIDByExternalID(ctx context.Context, externalID string, sourceID int64) (int64, error) {
	args := m.Called(ctx, externalID, sourceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPOIRepository) Create(ctx context.Context, poi *domain.POI) (int64, error) {
	args := m.Called(ctx, poi)
	return args.Get(0).(int64), args.Error(1)
}

// MockSpotSource is a mock of SpotSource
type MockSpotSource struct {
	mock.Mock
}

func (m *MockSpotSource) Search(ctx context.Context, lat, lon float64) ([]string, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSpotSource) ExternalID(url string) string {
	args := m.Called(url)
	return args.String(0)
}

func (m *MockSpotSource) Detail(ctx context.Context, url string) (*domain.SpotRecord, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpotRecord), args.Error(1)
}

// MockSpotRepository is a mock of SpotRepository
type MockSpotRepository struct {
	mock.Mock
}

func (m *MockSpotRepository) ExistsByExternalID(ctx context.Context, externalID string, sourceID int64) (bool, error) {
	args := m.Called(ctx, externalID, sourceID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSpotRepository) Create(ctx context.Context, spot *domain.Spot) (int64, error) {
	args := m.Called(ctx, spot)
	return args.Get(0).(int64), args.Error(1)
}

// MockServiceRepository is a mock of ServiceRepository
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) GetOrCreate(ctx context.Context, name string, category string) (int64, error) {
	args := m.Called(ctx, name, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockServiceRepository) LinkSpot(ctx context.Context, spotID, serviceID int64) error {
	args := m.Called(ctx, spotID, serviceID)
	return args.Error(0)
}

func (m *MockServiceRepository) LinkPOI(ctx context.Context, poiID, serviceID int64) error {
	args := m.Called(ctx, poiID, serviceID)
	return args.Error(0)
}

// MockHistoryRepository is a mock of HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) RecordScrape(ctx context.Context, spotID, cityID int64) error {
	args := m.Called(ctx, spotID, cityID)
	return args.Error(0)
}

func (m *MockHistoryRepository) RecordPOI(ctx context.Context, poiID, cityID int64) error {
	args := m.Called(ctx, poiID, cityID)
	return args.Error(0)
}

func (m *MockHistoryRepository) CityHasScrape(ctx context.Context, cityID int64) (bool, error) {
	args := m.Called(ctx, cityID)
	return args.Bool(0), args.Error(1)
}

func (m *MockHistoryRepository) CityIDsWithScrape(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockHistoryRepository) CityIDsWithPOI(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}
