package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/trace-microservice/internal/config"
	domainRepo "github.com/trace-microservice/internal/domain/repository"
	"github.com/trace-microservice/internal/infrastructure/nominatim"
	"github.com/trace-microservice/internal/infrastructure/openmeteo"
	"github.com/trace-microservice/internal/infrastructure/overpass"
	"github.com/trace-microservice/internal/infrastructure/park4night"
	"github.com/trace-microservice/internal/infrastructure/wikidata"
	"github.com/trace-microservice/internal/pkg/logger"
	"github.com/trace-microservice/internal/repository/document"
	"github.com/trace-microservice/internal/repository/postgres"
	"github.com/trace-microservice/internal/usecase"
	"github.com/trace-microservice/internal/worker"
	"github.com/trace-microservice/internal/worker/etl"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Trace ETL Worker")
	log.Info("Configuration loaded",
		zap.String("intake_dir", cfg.Intake.Dir),
		zap.Duration("intake_interval", cfg.Worker.IntakeInterval),
		zap.Duration("reconcile_interval", cfg.Worker.ReconcileInterval))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to the document store
	store, err := document.NewStore(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to document store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Failed to close document store connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	cityRepo := postgres.NewCityRepository(db)
	hikeRepo := postgres.NewHikeRepository(db)
	spotRepo := postgres.NewSpotRepository(db)
	poiRepo := postgres.NewPOIRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	sourceRepo := postgres.NewSourceRepository(db)
	weatherRepo := postgres.NewWeatherRepository(db)
	historyRepo := postgres.NewHistoryRepository(db)
	docRepo := document.NewTraceDocumentRepository(store)

	// 6. Initialize external clients
	geoResolver := nominatim.NewNominatimClient(&cfg.Geocoder, log)
	weatherSource := openmeteo.NewOpenMeteoClient(&cfg.Weather, log)
	osmSource := overpass.NewOverpassClient(&cfg.Overpass, log)
	wikiSource := wikidata.NewWikidataClient(&cfg.Wikidata, log)

	scraper, err := park4night.NewClient(&cfg.Scraper, log)
	if err != nil {
		log.Fatal("Failed to start scraper browser", zap.Error(err))
	}
	defer func() {
		if err := scraper.Close(); err != nil {
			log.Error("Failed to close scraper browser", zap.Error(err))
		}
	}()

	// 7. Initialize use cases
	transformer := usecase.NewTraceTransformer(geoResolver, log)
	intakeUC := usecase.NewIntakeUseCase(
		transformer, cityRepo, sourceRepo, hikeRepo, docRepo, geoResolver,
		&cfg.Intake, log,
	)
	enrichmentUC := usecase.NewEnrichmentUseCase(
		weatherSource, weatherRepo,
		[]domainRepo.POISource{osmSource, wikiSource}, poiRepo,
		scraper, spotRepo,
		serviceRepo, sourceRepo, historyRepo,
		log,
	)
	reconcileUC := usecase.NewReconcileUseCase(cityRepo, historyRepo, enrichmentUC, log)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(etl.NewIntakeWorker(intakeUC, enrichmentUC, cfg.Worker.IntakeInterval, log))
	workerManager.Register(etl.NewReconcileWorker(reconcileUC, cfg.Worker.ReconcileInterval, log))

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
