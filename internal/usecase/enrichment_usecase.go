package usecase

import (
	"context"
	"sync"

	"github.com/trace-microservice/internal/domain"
	"github.com/trace-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

// EnrichmentUseCase runs the enrichment stages for one city: weather, the
// two POI sources, then the scraped spots. Stages are isolated, a failing
// stage is logged and the next one still runs.
type EnrichmentUseCase struct {
	weatherSource repository.WeatherSource
	weatherRepo   repository.WeatherRepository
	poiSources    []repository.POISource
	poiRepo       repository.POIRepository
	spotSource    repository.SpotSource
	spotRepo      repository.SpotRepository
	serviceRepo   repository.ServiceRepository
	sourceRepo    repository.SourceRepository
	historyRepo   repository.HistoryRepository
	logger        *zap.Logger

	// Держит не более одного активного скрапа на процесс
	scrapeMu sync.Mutex
}

func NewEnrichmentUseCase(
	weatherSource repository.WeatherSource,
	weatherRepo repository.WeatherRepository,
	poiSources []repository.POISource,
	poiRepo repository.POIRepository,
	spotSource repository.SpotSource,
	spotRepo repository.SpotRepository,
	serviceRepo repository.ServiceRepository,
	sourceRepo repository.SourceRepository,
	historyRepo repository.HistoryRepository,
	logger *zap.Logger,
) *EnrichmentUseCase {
	return &EnrichmentUseCase{
		weatherSource: weatherSource,
		weatherRepo:   weatherRepo,
		poiSources:    poiSources,
		poiRepo:       poiRepo,
		spotSource:    spotSource,
		spotRepo:      spotRepo,
		serviceRepo:   serviceRepo,
		sourceRepo:    sourceRepo,
		historyRepo:   historyRepo,
		logger:        logger,
	}
}

// EnrichCity runs every stage for one city.
func (u *EnrichmentUseCase) EnrichCity(ctx context.Context, city *domain.City) {
	u.logger.Info("Enriching city", zap.String("city", city.Name), zap.Int64("city_id", city.ID))

	if err := u.EnrichWeather(ctx, city); err != nil {
		u.logger.Error("Weather stage failed", zap.String("city", city.Name), zap.Error(err))
	}

	for _, src := range u.poiSources {
		if err := u.EnrichPOI(ctx, city, src); err != nil {
			u.logger.Error("POI stage failed",
				zap.String("city", city.Name),
				zap.String("source", src.Name()),
				zap.Error(err))
		}
	}

	if err := u.EnrichSpots(ctx, city); err != nil {
		u.logger.Error("Spot stage failed", zap.String("city", city.Name), zap.Error(err))
	}

	u.logger.Info("City enrichment done", zap.String("city", city.Name))
}

// EnrichWeather fetches the forecast horizon and inserts the days the city
// does not have yet.
func (u *EnrichmentUseCase) EnrichWeather(ctx context.Context, city *domain.City) error {
	forecasts, err := u.weatherSource.Fetch(ctx, city.Latitude, city.Longitude)
	if err != nil {
		return err
	}

	inserted := 0
	for _, f := range forecasts {
		exists, err := u.weatherRepo.Exists(ctx, city.ID, f.Date)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		f.CityID = city.ID
		if err := u.weatherRepo.Insert(ctx, &f); err != nil {
			return err
		}
		inserted++
	}

	u.logger.Info("Weather stage done",
		zap.String("city", city.Name),
		zap.Int("fetched", len(forecasts)),
		zap.Int("inserted", inserted))

	return nil
}

// EnrichPOI queries one POI source and persists its records, deduplicated on
// the source's external id. The city link is recorded for every record, new
// or already known.
func (u *EnrichmentUseCase) EnrichPOI(ctx context.Context, city *domain.City, src repository.POISource) error {
	sourceID, err := u.sourceRepo.GetOrCreate(ctx, src.Name())
	if err != nil {
		return err
	}

	records, err := src.Query(ctx, city)
	if err != nil {
		return err
	}

	created := 0
	for _, rec := range records {
		poiID, err := u.poiRepo.GetIDByExternalID(ctx, rec.ExternalID, sourceID)
		if err != nil {
			return err
		}
		if poiID == 0 {
			poiID, err = u.poiRepo.Create(ctx, &domain.POI{
				Name:        rec.Name,
				Description: rec.Description,
				Latitude:    rec.Latitude,
				Longitude:   rec.Longitude,
				ImageURL:    rec.ImageURL,
				URL:         rec.URL,
				ExternalID:  rec.ExternalID,
				SourceID:    sourceID,
				Verified:    rec.Verified,
			})
			if err != nil {
				return err
			}
			created++
		}

		if err := u.historyRepo.RecordPOI(ctx, poiID, city.ID); err != nil {
			return err
		}

		if rec.Category != "" {
			serviceID, err := u.serviceRepo.GetOrCreate(ctx, domain.POICategoryLabel(rec.Category), rec.Category)
			if err != nil {
				return err
			}
			if err := u.serviceRepo.LinkPOI(ctx, poiID, serviceID); err != nil {
				return err
			}
		}
	}

	u.logger.Info("POI stage done",
		zap.String("city", city.Name),
		zap.String("source", src.Name()),
		zap.Int("records", len(records)),
		zap.Int("created", created))

	return nil
}

// EnrichSpots runs the browser scrape for one city. Only one scrape runs per
// process; the history check happens before the lock so a covered city does
// not queue behind a running scrape, and is repeated under the lock because
// another city may have covered this one while we waited. An attempted run
// that yields no new spot is marked with a sentinel row so it is not retried
// forever.
func (u *EnrichmentUseCase) EnrichSpots(ctx context.Context, city *domain.City) error {
	scraped, err := u.historyRepo.CityHasScrape(ctx, city.ID)
	if err != nil {
		return err
	}
	if scraped {
		u.logger.Info("City already scraped, skipping", zap.String("city", city.Name))
		return nil
	}

	u.scrapeMu.Lock()
	defer u.scrapeMu.Unlock()

	// Пока ждали лок, город мог быть закрыт другим скрапом
	scraped, err = u.historyRepo.CityHasScrape(ctx, city.ID)
	if err != nil {
		return err
	}
	if scraped {
		u.logger.Info("City already scraped, skipping", zap.String("city", city.Name))
		return nil
	}

	sourceID, err := u.sourceRepo.GetOrCreate(ctx, domain.SourceP4N)
	if err != nil {
		return err
	}

	urls, err := u.spotSource.Search(ctx, city.Latitude, city.Longitude)
	if err != nil {
		return err
	}

	inserted := 0
	for _, url := range urls {
		externalID := u.spotSource.ExternalID(url)
		if externalID == "" {
			continue
		}

		exists, err := u.spotRepo.ExistsByExternalID(ctx, externalID, sourceID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		rec, err := u.spotSource.Detail(ctx, url)
		if err != nil {
			u.logger.Warn("Failed to scrape spot detail", zap.String("url", url), zap.Error(err))
			continue
		}

		spotID, err := u.spotRepo.Create(ctx, &domain.Spot{
			Name:        rec.Name,
			Description: rec.Description,
			Type:        rec.Type,
			Latitude:    rec.Latitude,
			Longitude:   rec.Longitude,
			ExternalID:  rec.ExternalID,
			Rating:      rec.Rating,
			URL:         rec.URL,
			SourceID:    sourceID,
		})
		if err != nil {
			return err
		}

		if err := u.historyRepo.RecordScrape(ctx, spotID, city.ID); err != nil {
			return err
		}
		inserted++

		for _, label := range rec.Services {
			serviceID, err := u.serviceRepo.GetOrCreate(ctx, label, domain.SpotServiceCategory(label))
			if err != nil {
				return err
			}
			if err := u.serviceRepo.LinkSpot(ctx, spotID, serviceID); err != nil {
				return err
			}
		}
	}

	if inserted == 0 {
		if err := u.historyRepo.RecordScrape(ctx, domain.SentinelSpotID, city.ID); err != nil {
			return err
		}
		u.logger.Info("Scrape yielded nothing, sentinel recorded", zap.String("city", city.Name))
	}

	u.logger.Info("Spot stage done",
		zap.String("city", city.Name),
		zap.Int("results", len(urls)),
		zap.Int("inserted", inserted))

	return nil
}
