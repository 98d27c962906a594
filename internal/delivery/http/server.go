package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"github.com/trace-microservice/internal/config"
	"github.com/trace-microservice/internal/delivery/http/handler"
	"github.com/trace-microservice/internal/delivery/http/middleware"
	"github.com/trace-microservice/internal/repository/document"
	"github.com/trace-microservice/internal/repository/postgres"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	db    *postgres.DB
	store *document.Store

	// Handlers
	traceHandler *handler.TraceHandler
	etlHandler   *handler.ETLHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	db *postgres.DB,
	store *document.Store,
	traceHandler *handler.TraceHandler,
	etlHandler *handler.ETLHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Trace Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    32 * 1024 * 1024,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:          app,
		config:       cfg,
		logger:       logger,
		db:           db,
		store:        store,
		traceHandler: traceHandler,
		etlHandler:   etlHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", s.health)

	// Trace routes
	api.Post("/traces/upload", s.traceHandler.Upload)
	api.Get("/hikes/:id", s.traceHandler.GetHike)
	api.Get("/cities", s.traceHandler.ListCities)
	api.Get("/cities/:id/weather", s.traceHandler.GetCityWeather)

	// ETL routes
	api.Post("/etl/run", s.etlHandler.RunIntake)
	api.Post("/etl/enrich", s.etlHandler.EnrichCity)
	api.Post("/etl/reconcile", s.etlHandler.RunReconcile)
}

func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	status := "healthy"
	code := fiber.StatusOK

	dbErr := s.db.Health(ctx)
	storeErr := s.store.Health(ctx)
	if dbErr != nil || storeErr != nil {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"database": healthLabel(dbErr),
		"document": healthLabel(storeErr),
		"time":     time.Now(),
	})
}

func healthLabel(err error) string {
	if err != nil {
		return "down"
	}
	return "up"
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
