package usecase

import (
	"context"

	"github.com/trace-microservice/internal/domain"
	"github.com/trace-microservice/internal/domain/repository"
	"github.com/trace-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// HikeUseCase - use case для чтения импортированных походов
type HikeUseCase struct {
	hikeRepo    repository.HikeRepository
	cityRepo    repository.CityRepository
	docRepo     repository.TraceDocumentRepository
	weatherRepo repository.WeatherRepository
	logger      *zap.Logger
}

func NewHikeUseCase(
	hikeRepo repository.HikeRepository,
	cityRepo repository.CityRepository,
	docRepo repository.TraceDocumentRepository,
	weatherRepo repository.WeatherRepository,
	logger *zap.Logger,
) *HikeUseCase {
	return &HikeUseCase{
		hikeRepo:    hikeRepo,
		cityRepo:    cityRepo,
		docRepo:     docRepo,
		weatherRepo: weatherRepo,
		logger:      logger,
	}
}

// GetHike returns one hike, with its trace document when withTrace is set.
// An orphaned hike row (NULL document reference) is still served, the trace
// just stays nil.
func (u *HikeUseCase) GetHike(ctx context.Context, id int64, withTrace bool) (*dto.HikeDetail, error) {
	hike, err := u.hikeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.HikeDetail{Hike: hike}
	if withTrace && hike.DocumentRef != nil {
		doc, err := u.docRepo.Get(ctx, *hike.DocumentRef)
		if err != nil {
			u.logger.Warn("Hike references a missing trace document",
				zap.Int64("hike_id", id),
				zap.String("document_ref", *hike.DocumentRef),
				zap.Error(err))
		} else {
			detail.Trace = doc
		}
	}

	return detail, nil
}

// ListCities returns every known city.
func (u *HikeUseCase) ListCities(ctx context.Context) ([]*domain.City, error) {
	return u.cityRepo.GetAll(ctx)
}

// GetCityWeather returns the stored forecast days for one city, each with
// its display icon.
func (u *HikeUseCase) GetCityWeather(ctx context.Context, cityID int64) ([]dto.ForecastDay, error) {
	forecasts, err := u.weatherRepo.ListByCity(ctx, cityID)
	if err != nil {
		return nil, err
	}

	days := make([]dto.ForecastDay, 0, len(forecasts))
	for _, f := range forecasts {
		days = append(days, dto.ForecastDay{
			Date:            f.Date,
			TempMaxC:        f.TempMaxC,
			TempMinC:        f.TempMinC,
			PrecipitationMm: f.PrecipitationMm,
			WindMaxKmh:      f.WindMaxKmh,
			WeatherCode:     f.WeatherCode,
			Picto:           domain.PictoForCode(f.WeatherCode),
		})
	}

	return days, nil
}
