package etl

import (
	"context"
	"sync"
	"time"

	"github.com/trace-microservice/internal/domain"
	"github.com/trace-microservice/internal/usecase"
	"github.com/trace-microservice/internal/worker"
	"go.uber.org/zap"
)

// IntakeWorker периодически сканирует каталог с треками
type IntakeWorker struct {
	*worker.BaseWorker
	intakeUC   *usecase.IntakeUseCase
	enrichment *usecase.EnrichmentUseCase
	interval   time.Duration
	wg         sync.WaitGroup
}

// NewIntakeWorker создает новый IntakeWorker
func NewIntakeWorker(
	intakeUC *usecase.IntakeUseCase,
	enrichment *usecase.EnrichmentUseCase,
	interval time.Duration,
	logger *zap.Logger,
) *IntakeWorker {
	return &IntakeWorker{
		BaseWorker: worker.NewBaseWorker("trace-intake", logger),
		intakeUC:   intakeUC,
		enrichment: enrichment,
		interval:   interval,
	}
}

// Start запускает воркер
func (w *IntakeWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting IntakeWorker", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Первый проход сразу при старте
	w.pass(ctx)

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			w.wg.Wait()
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			w.wg.Wait()
			return ctx.Err()

		case <-ticker.C:
			w.pass(ctx)
		}
	}
}

// pass runs one intake scan and hands every touched city to the enrichment
// stages, one goroutine per city. The scrape stage serializes itself.
func (w *IntakeWorker) pass(ctx context.Context) {
	result, err := w.intakeUC.Run(ctx)
	if err != nil {
		w.Logger().Error("Intake pass failed", zap.Error(err))
		return
	}

	for _, city := range result.Cities {
		w.wg.Add(1)
		go func(c *domain.City) {
			defer w.wg.Done()
			w.enrichment.EnrichCity(ctx, c)
		}(city)
	}
}
