package handler

import (
	"context"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/trace-microservice/internal/pkg/errors"
	"github.com/trace-microservice/internal/pkg/utils"
	"github.com/trace-microservice/internal/usecase"
	"github.com/trace-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// TraceHandler - обработчик загрузки и чтения треков
type TraceHandler struct {
	intakeUC   *usecase.IntakeUseCase
	enrichment *usecase.EnrichmentUseCase
	hikeUC     *usecase.HikeUseCase
	logger     *zap.Logger
}

// NewTraceHandler - создание нового TraceHandler
func NewTraceHandler(
	intakeUC *usecase.IntakeUseCase,
	enrichment *usecase.EnrichmentUseCase,
	hikeUC *usecase.HikeUseCase,
	logger *zap.Logger,
) *TraceHandler {
	return &TraceHandler{
		intakeUC:   intakeUC,
		enrichment: enrichment,
		hikeUC:     hikeUC,
		logger:     logger,
	}
}

// Upload godoc
// @Summary Загрузка GPX трека
// @Description Принимает GPX файл, кладёт его в каталог импорта и сразу запускает проход импорта. Обогащение затронутых городов выполняется в фоне.
// @Tags Traces
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "GPX файл"
// @Success 202 {object} utils.SuccessResponse{data=dto.UploadResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/traces/upload [post]
func (h *TraceHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.intakeUC.SaveUpload(c.Context(), fileHeader.Filename, data); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.intakeUC.Run(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	resp := dto.UploadResponse{
		Filename: fileHeader.Filename,
		Status:   "imported",
	}
	for _, city := range result.Cities {
		resp.Cities = append(resp.Cities, city.Name)
	}
	// Файл мог не пройти трансформацию, тогда он остаётся до следующего прохода
	if result.Imported == 0 {
		resp.Status = "queued"
	}

	// Обогащение уходит в фон, ответ не ждёт внешних источников
	for _, city := range result.Cities {
		city := city
		go h.enrichment.EnrichCity(context.Background(), city)
	}

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, resp, nil)
}

// GetHike godoc
// @Summary Получить поход по id
// @Description Возвращает поход; с параметром trace=true подтягивает и документ трека.
// @Tags Traces
// @Produce json
// @Param id path int true "ID похода"
// @Param trace query bool false "Вернуть документ трека" default(false)
// @Success 200 {object} utils.SuccessResponse{data=dto.HikeDetail}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/hikes/{id} [get]
func (h *TraceHandler) GetHike(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	withTrace := c.QueryBool("trace", false)

	detail, err := h.hikeUC.GetHike(c.Context(), id, withTrace)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, detail, nil)
}

// GetCityWeather godoc
// @Summary Прогноз погоды по городу
// @Description Возвращает сохранённые дни прогноза для города, каждый с иконкой погоды.
// @Tags Cities
// @Produce json
// @Param id path int true "ID города"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.ForecastDay}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/cities/{id}/weather [get]
func (h *TraceHandler) GetCityWeather(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	days, err := h.hikeUC.GetCityWeather(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, days, &utils.Meta{Total: len(days)})
}

// ListCities godoc
// @Summary Список городов
// @Description Возвращает все города, созданные импортом треков.
// @Tags Cities
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/cities [get]
func (h *TraceHandler) ListCities(c *fiber.Ctx) error {
	cities, err := h.hikeUC.ListCities(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, cities, &utils.Meta{Total: len(cities)})
}
