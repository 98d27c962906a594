package main

// @title Trace Microservice API
// @version 1.0.0
// @description Микросервис импорта GPX треков и обогащения городов. Принимает файлы треков, считает их метрики (дистанция, набор высоты, длительность, сложность), сохраняет поход в PostgreSQL и документ трека в Redis, и обогащает затронутые города погодой, POI и местами ночёвки.

// @contact.name API Support
// @contact.email support@trace-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/trace-microservice/docs"
	"github.com/trace-microservice/internal/config"
	httpDelivery "github.com/trace-microservice/internal/delivery/http"
	"github.com/trace-microservice/internal/delivery/http/handler"
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
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Trace Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

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

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := store.Health(ctx); err != nil {
		log.Fatal("Document store health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Initialize repositories
	cityRepo := postgres.NewCityRepository(db)
	hikeRepo := postgres.NewHikeRepository(db)
	spotRepo := postgres.NewSpotRepository(db)
	poiRepo := postgres.NewPOIRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	sourceRepo := postgres.NewSourceRepository(db)
	weatherRepo := postgres.NewWeatherRepository(db)
	historyRepo := postgres.NewHistoryRepository(db)
	docRepo := document.NewTraceDocumentRepository(store)

	log.Info("Repositories initialized")

	// 7. Initialize external clients
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

	// 8. Initialize use cases
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
	hikeUC := usecase.NewHikeUseCase(hikeRepo, cityRepo, docRepo, weatherRepo, log)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP handlers and server
	traceHandler := handler.NewTraceHandler(intakeUC, enrichmentUC, hikeUC, log)
	etlHandler := handler.NewETLHandler(intakeUC, enrichmentUC, reconcileUC, cityRepo, log)

	server := httpDelivery.NewServer(cfg, log, db, store, traceHandler, etlHandler)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
