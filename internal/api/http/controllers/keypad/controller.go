package keypad

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"keypadCalc/internal/domain"
	"keypadCalc/internal/engine"
	"keypadCalc/internal/ports"
)

// Controller — маршруты калькулятора: сессии, нажатия, форматирование.
type Controller struct {
	uc  ports.IKeypadUseCase
	log *slog.Logger
}

// New создаёт контроллер калькулятора.
func New(uc ports.IKeypadUseCase, log *slog.Logger) *Controller {
	return &Controller{uc: uc, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	api.POST("/sessions", c.open)
	api.GET("/sessions/:id", c.get)
	api.POST("/sessions/:id/keys", c.press)
	api.DELETE("/sessions/:id", c.close)
	api.POST("/format", c.format)
}

// @Summary Открыть сессию калькулятора
// @Tags keypad
// @Produce json
// @Success 201 {object} SessionResponse "Чистый калькулятор"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/sessions [post]
func (c *Controller) open(ctx *gin.Context) {
	s, err := c.uc.Open(ctx.Request.Context())
	if err != nil {
		c.log.Error("open session failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, newSessionResponse(s))
}

// @Summary Состояние сессии
// @Tags keypad
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} ErrorResponse "Сессия не найдена или истекла"
// @Router /api/v1/sessions/{id} [get]
func (c *Controller) get(ctx *gin.Context) {
	s, err := c.uc.Session(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.fail(ctx, "get session", err)
		return
	}
	ctx.JSON(http.StatusOK, newSessionResponse(s))
}

// @Summary Нажать клавиши
// @Description Применяет нажатия по порядку: цифры, ".", "+", "-", "×", "÷", "=", "C", "+/-", "%".
// @Tags keypad
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body PressRequest true "Клавиши"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse "Невалидный запрос или неизвестная клавиша"
// @Failure 404 {object} ErrorResponse "Сессия не найдена или истекла"
// @Router /api/v1/sessions/{id}/keys [post]
func (c *Controller) press(ctx *gin.Context) {
	var req PressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.log.Warn("press bind failed", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request: " + err.Error()})
		return
	}

	keys, err := req.Validate()
	if err != nil {
		c.log.Warn("press validation failed", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	s, err := c.uc.Press(ctx.Request.Context(), ctx.Param("id"), keys...)
	if err != nil {
		c.fail(ctx, "press", err)
		return
	}
	ctx.JSON(http.StatusOK, newSessionResponse(s))
}

// @Summary Закрыть сессию
// @Tags keypad
// @Param id path string true "ID сессии"
// @Success 204
// @Router /api/v1/sessions/{id} [delete]
func (c *Controller) close(ctx *gin.Context) {
	if err := c.uc.Close(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.fail(ctx, "close session", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// @Summary Отформатировать число для дисплея
// @Tags keypad
// @Accept json
// @Produce json
// @Param request body FormatRequest true "Каноническое число"
// @Success 200 {object} FormatResponse
// @Router /api/v1/format [post]
func (c *Controller) format(ctx *gin.Context) {
	var req FormatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request: " + err.Error()})
		return
	}
	display := engine.FormatNumber(req.Raw)
	ctx.JSON(http.StatusOK, FormatResponse{Display: display, Canonical: engine.UnformatNumber(display)})
}

// fail отвечает статусом по ошибке use case.
func (c *Controller) fail(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownKey):
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	default:
		c.log.Error(op+" failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
	}
}
