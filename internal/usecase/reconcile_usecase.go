package usecase

import (
	"context"

	"github.com/trace-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

// ReconcileResult summarizes one reconciliation run.
type ReconcileResult struct {
	Cities       int
	MissingPOI   int
	MissingScrap int
}

// ReconcileUseCase re-runs enrichment stages for cities the history tables
// have no record of. Each stage has its own gap set: a city covered by the
// POI sources but never scraped only gets the scrape stage, and vice versa.
type ReconcileUseCase struct {
	cityRepo    repository.CityRepository
	historyRepo repository.HistoryRepository
	enrichment  *EnrichmentUseCase
	logger      *zap.Logger
}

func NewReconcileUseCase(
	cityRepo repository.CityRepository,
	historyRepo repository.HistoryRepository,
	enrichment *EnrichmentUseCase,
	logger *zap.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		cityRepo:    cityRepo,
		historyRepo: historyRepo,
		enrichment:  enrichment,
		logger:      logger,
	}
}

// Run computes both gap sets and replays the missing stages. A run over a
// fully covered database does nothing.
func (u *ReconcileUseCase) Run(ctx context.Context) (*ReconcileResult, error) {
	cities, err := u.cityRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	poiCovered, err := u.idSet(ctx, u.historyRepo.CityIDsWithPOI)
	if err != nil {
		return nil, err
	}
	scrapeCovered, err := u.idSet(ctx, u.historyRepo.CityIDsWithScrape)
	if err != nil {
		return nil, err
	}

	result := &ReconcileResult{Cities: len(cities)}

	for _, city := range cities {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if !poiCovered[city.ID] {
			result.MissingPOI++
			u.logger.Info("Reconciling POI sources", zap.String("city", city.Name), zap.Int64("city_id", city.ID))
			for _, src := range u.enrichment.poiSources {
				if err := u.enrichment.EnrichPOI(ctx, city, src); err != nil {
					u.logger.Error("POI reconciliation failed",
						zap.String("city", city.Name),
						zap.String("source", src.Name()),
						zap.Error(err))
				}
			}
		}

		if !scrapeCovered[city.ID] {
			result.MissingScrap++
			u.logger.Info("Reconciling scrape", zap.String("city", city.Name), zap.Int64("city_id", city.ID))
			if err := u.enrichment.EnrichSpots(ctx, city); err != nil {
				u.logger.Error("Scrape reconciliation failed", zap.String("city", city.Name), zap.Error(err))
			}
		}
	}

	u.logger.Info("Reconciliation done",
		zap.Int("cities", result.Cities),
		zap.Int("missing_poi", result.MissingPOI),
		zap.Int("missing_scrape", result.MissingScrap))

	return result, nil
}

func (u *ReconcileUseCase) idSet(ctx context.Context, fetch func(context.Context) ([]int64, error)) (map[int64]bool, error) {
	ids, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
