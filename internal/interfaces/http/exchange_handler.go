package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/application/exchange"
)

// ExchangeHandler maneja las peticiones HTTP de la tasa de cambio.
type ExchangeHandler struct {
	svc *exchange.RateService
}

// NewExchangeHandler construye el handler.
func NewExchangeHandler(svc *exchange.RateService) *ExchangeHandler {
	return &ExchangeHandler{svc: svc}
}

// CurrentRate godoc
// @Summary      Tasa de cambio vigente
// @Description  Resuelve según la fuente activa (BCV USD, BCV EUR o manual).
// @Description  Si el BCV no responde se usa la última tasa sincronizada.
// @Tags         exchange
// @Produce      json
// @Success      200  {object}  dto.CurrentRateResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/exchange/rate [get]
func (h *ExchangeHandler) CurrentRate(c *fiber.Ctx) error {
	out, err := h.svc.GetCurrentRate(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetConfig godoc
// @Summary      Configuración de tasa de cambio
// @Tags         exchange
// @Produce      json
// @Success      200  {object}  dto.ExchangeConfigResponse
// @Router       /api/exchange/config [get]
func (h *ExchangeHandler) GetConfig(c *fiber.Ctx) error {
	out, err := h.svc.GetConfig(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateConfig godoc
// @Summary      Actualizar configuración de tasa de cambio
// @Tags         exchange
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExchangeConfigInput  true  "Cambios parciales"
// @Success      200   {object}  dto.ExchangeConfigResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/exchange/config [put]
func (h *ExchangeHandler) UpdateConfig(c *fiber.Ctx) error {
	var in dto.ExchangeConfigInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.UpdateConfig(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Sync godoc
// @Summary      Forzar sincronización con el BCV
// @Tags         exchange
// @Produce      json
// @Success      200  {object}  dto.ExchangeConfigResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/exchange/sync [post]
func (h *ExchangeHandler) Sync(c *fiber.Ctx) error {
	out, err := h.svc.Sync(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
