package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/trace-microservice/internal/domain"
	"github.com/trace-microservice/internal/usecase"
	"go.uber.org/zap"
)

func newHikeFixture() (*MockHikeRepository, *MockCityRepository, *MockTraceDocumentRepository, *MockWeatherRepository, *usecase.HikeUseCase) {
	hikeRepo := new(MockHikeRepository)
	cityRepo := new(MockCityRepository)
	docRepo := new(MockTraceDocumentRepository)
	weatherRepo := new(MockWeatherRepository)
	uc := usecase.NewHikeUseCase(hikeRepo, cityRepo, docRepo, weatherRepo, zap.NewNop())
	return hikeRepo, cityRepo, docRepo, weatherRepo, uc
}

func TestGetHike_OrphanServedWithoutTrace(t *testing.T) {
	hikeRepo, _, docRepo, _, uc := newHikeFixture()

	hikeRepo.On("GetByID", mock.Anything, int64(42)).Return(&domain.Hike{ID: 42, Name: "Tour du Lac"}, nil)

	detail, err := uc.GetHike(context.Background(), 42, true)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), detail.Hike.ID)
	assert.Nil(t, detail.Trace)
	// Без ссылки на документ хранилище документов не трогается
	docRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGetCityWeather_MapsPicto(t *testing.T) {
	_, _, _, weatherRepo, uc := newHikeFixture()

	day1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	weatherRepo.On("ListByCity", mock.Anything, int64(5)).Return([]domain.DailyForecast{
		{CityID: 5, Date: day1, TempMaxC: 18, WeatherCode: 2},
		{CityID: 5, Date: day2, TempMaxC: 12, WeatherCode: 63},
	}, nil)

	days, err := uc.GetCityWeather(context.Background(), 5)

	assert.NoError(t, err)
	assert.Len(t, days, 2)
	assert.Equal(t, "partly_cloudy", days[0].Picto)
	assert.Equal(t, 2, days[0].WeatherCode)
	assert.Equal(t, "rain", days[1].Picto)
}

func TestGetCityWeather_EmptyCity(t *testing.T) {
	_, _, _, weatherRepo, uc := newHikeFixture()

	weatherRepo.On("ListByCity", mock.Anything, int64(9)).Return([]domain.DailyForecast{}, nil)

	days, err := uc.GetCityWeather(context.Background(), 9)

	assert.NoError(t, err)
	assert.Empty(t, days)
}
