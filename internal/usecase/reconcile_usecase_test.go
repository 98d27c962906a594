package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/trace-microservice/internal/domain"
	"github.com/trace-microservice/internal/usecase"
	"go.uber.org/zap"
)

func newReconcileFixture(f *enrichmentFixture, cityRepo *MockCityRepository) *usecase.ReconcileUseCase {
	return usecase.NewReconcileUseCase(cityRepo, f.historyRepo, f.uc, zap.NewNop())
}

func TestReconcile_FullyCoveredDoesNothing(t *testing.T) {
	f := newEnrichmentFixture()
	cityRepo := new(MockCityRepository)
	uc := newReconcileFixture(f, cityRepo)

	cityRepo.On("GetAll", mock.Anything).Return([]*domain.City{
		{ID: 1, Name: "Brest"},
		{ID: 2, Name: "Quimper"},
	}, nil)
	f.historyRepo.On("CityIDsWithPOI", mock.Anything).Return([]int64{1, 2}, nil)
	f.historyRepo.On("CityIDsWithScrape", mock.Anything).Return([]int64{1, 2}, nil)

	result, err := uc.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Cities)
	assert.Equal(t, 0, result.MissingPOI)
	assert.Equal(t, 0, result.MissingScrap)
	f.poiSource.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
	f.spotSource.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcile_ReplaysOnlyMissingStage(t *testing.T) {
	f := newEnrichmentFixture()
	cityRepo := new(MockCityRepository)
	uc := newReconcileFixture(f, cityRepo)

	brest := &domain.City{ID: 1, Name: "Brest", Latitude: 48.39, Longitude: -4.49}
	cityRepo.On("GetAll", mock.Anything).Return([]*domain.City{brest}, nil)
	// POI уже собраны, скрапа ещё не было
	f.historyRepo.On("CityIDsWithPOI", mock.Anything).Return([]int64{1}, nil)
	f.historyRepo.On("CityIDsWithScrape", mock.Anything).Return([]int64{}, nil)

	f.historyRepo.On("CityHasScrape", mock.Anything, brest.ID).Return(false, nil)
	f.sourceRepo.On("GetOrCreate", mock.Anything, domain.SourceP4N).Return(int64(2), nil)
	f.spotSource.On("Search", mock.Anything, brest.Latitude, brest.Longitude).Return([]string{}, nil)
	f.historyRepo.On("RecordScrape", mock.Anything, domain.SentinelSpotID, brest.ID).Return(nil)

	result, err := uc.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, result.MissingPOI)
	assert.Equal(t, 1, result.MissingScrap)
	f.poiSource.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
	f.spotSource.AssertCalled(t, "Search", mock.Anything, brest.Latitude, brest.Longitude)
}

func TestReconcile_ReplaysMissingPOI(t *testing.T) {
	f := newEnrichmentFixture()
	cityRepo := new(MockCityRepository)
	uc := newReconcileFixture(f, cityRepo)

	quimper := &domain.City{ID: 2, Name: "Quimper", Latitude: 47.99, Longitude: -4.1}
	cityRepo.On("GetAll", mock.Anything).Return([]*domain.City{quimper}, nil)
	f.historyRepo.On("CityIDsWithPOI", mock.Anything).Return([]int64{}, nil)
	f.historyRepo.On("CityIDsWithScrape", mock.Anything).Return([]int64{2}, nil)

	f.sourceRepo.On("GetOrCreate", mock.Anything, domain.SourceOSM).Return(int64(1), nil)
	f.poiSource.On("Query", mock.Anything, quimper).Return([]domain.POIRecord{}, nil)

	result, err := uc.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, result.MissingPOI)
	assert.Equal(t, 0, result.MissingScrap)
	f.poiSource.AssertCalled(t, "Query", mock.Anything, quimper)
	f.spotSource.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}
