package etl

import (
	"context"
	"time"

	"github.com/trace-microservice/internal/usecase"
	"github.com/trace-microservice/internal/worker"
	"go.uber.org/zap"
)

// ReconcileWorker периодически запускает догон недообогащённых городов
type ReconcileWorker struct {
	*worker.BaseWorker
	reconcileUC *usecase.ReconcileUseCase
	interval    time.Duration
}

// NewReconcileWorker создает новый ReconcileWorker
func NewReconcileWorker(
	reconcileUC *usecase.ReconcileUseCase,
	interval time.Duration,
	logger *zap.Logger,
) *ReconcileWorker {
	return &ReconcileWorker{
		BaseWorker:  worker.NewBaseWorker("enrichment-reconcile", logger),
		reconcileUC: reconcileUC,
		interval:    interval,
	}
}

// Start запускает воркер
func (w *ReconcileWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting ReconcileWorker", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			if _, err := w.reconcileUC.Run(ctx); err != nil {
				logger.Error("Reconciliation run failed", zap.Error(err))
			}
		}
	}
}
