package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/trace-microservice/internal/domain/repository"
	"github.com/trace-microservice/internal/pkg/errors"
	"github.com/trace-microservice/internal/pkg/utils"
	"github.com/trace-microservice/internal/pkg/validator"
	"github.com/trace-microservice/internal/usecase"
	"github.com/trace-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// ETLHandler - обработчик ручного запуска пайплайна
type ETLHandler struct {
	intakeUC    *usecase.IntakeUseCase
	enrichment  *usecase.EnrichmentUseCase
	reconcileUC *usecase.ReconcileUseCase
	cityRepo    repository.CityRepository
	logger      *zap.Logger
}

// NewETLHandler - создание нового ETLHandler
func NewETLHandler(
	intakeUC *usecase.IntakeUseCase,
	enrichment *usecase.EnrichmentUseCase,
	reconcileUC *usecase.ReconcileUseCase,
	cityRepo repository.CityRepository,
	logger *zap.Logger,
) *ETLHandler {
	return &ETLHandler{
		intakeUC:    intakeUC,
		enrichment:  enrichment,
		reconcileUC: reconcileUC,
		cityRepo:    cityRepo,
		logger:      logger,
	}
}

// RunIntake godoc
// @Summary Запустить проход импорта
// @Description Сканирует каталог импорта один раз и запускает обогащение затронутых городов в фоне.
// @Tags ETL
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.IntakeResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/etl/run [post]
func (h *ETLHandler) RunIntake(c *fiber.Ctx) error {
	result, err := h.intakeUC.Run(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	resp := dto.IntakeResponse{
		Imported: result.Imported,
		Skipped:  result.Skipped,
		Failed:   result.Failed,
	}
	for _, city := range result.Cities {
		resp.Cities = append(resp.Cities, city.Name)
	}

	// Обогащение уходит в фон, ответ не ждёт внешних источников
	for _, city := range result.Cities {
		city := city
		go h.enrichment.EnrichCity(context.Background(), city)
	}

	return utils.SendSuccess(c, resp, nil)
}

// EnrichCity godoc
// @Summary Запустить обогащение одного города
// @Description Запускает все стадии обогащения для уже известного города в фоне.
// @Tags ETL
// @Accept json
// @Produce json
// @Param request body dto.EnrichCityRequest true "Имя города"
// @Success 202 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/etl/enrich [post]
func (h *ETLHandler) EnrichCity(c *fiber.Ctx) error {
	var req dto.EnrichCityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	city, err := h.cityRepo.GetByName(c.Context(), req.City)
	if err != nil {
		return utils.SendError(c, err)
	}

	go h.enrichment.EnrichCity(context.Background(), city)

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, fiber.Map{
		"city":   city.Name,
		"status": "queued",
	}, nil)
}

// RunReconcile godoc
// @Summary Запустить догон обогащения
// @Description Находит города без записей в истории и повторяет для них недостающие стадии.
// @Tags ETL
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ReconcileResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/etl/reconcile [post]
func (h *ETLHandler) RunReconcile(c *fiber.Ctx) error {
	result, err := h.reconcileUC.Run(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ReconcileResponse{
		Cities:       result.Cities,
		MissingPOI:   result.MissingPOI,
		MissingScrap: result.MissingScrap,
	}, nil)
}
