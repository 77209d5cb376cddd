package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-pos-api/internal/application/analytics"
	"github.com/jhoicas/taller-pos-api/internal/application/dto"
)

// DashboardHandler maneja las peticiones HTTP del dashboard.
type DashboardHandler struct {
	uc *analytics.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Resumen operativo del taller
// @Description  Órdenes por estado, ingresos del período, ítems más vendidos
// @Description  y productos con stock bajo. Sin rango, usa el mes en curso.
// @Tags         dashboard
// @Produce      json
// @Param        fromDate  query  string  false  "Desde (RFC 3339)"
// @Param        toDate    query  string  false  "Hasta (RFC 3339)"
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	var req dto.DashboardRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	out, err := h.uc.Dashboard(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
