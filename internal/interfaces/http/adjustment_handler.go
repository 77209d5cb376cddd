package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/application/inventory"
)

// AdjustmentHandler maneja las peticiones HTTP para ajustes de inventario.
type AdjustmentHandler struct {
	uc *inventory.UseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *inventory.UseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar ajuste manual de stock
// @Description  IN suma, OUT resta. El ajuste queda con snapshot del stock
// @Description  antes y después, y es inmutable.
// @Tags         adjustments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentInput  true  "Datos del ajuste"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	var in dto.AdjustmentInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ProductID == "" {
		return badRequest(c, "VALIDATION", "productId es requerido")
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ajuste por ID
// @Tags         adjustments
// @Produce      json
// @Param        id   path  string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments/{id} [get]
func (h *AdjustmentHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ajustes de inventario
// @Tags         adjustments
// @Produce      json
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        productId  query  string  false  "Filtra por producto"
// @Param        reason     query  string  false  "DAMAGED | EXPIRED | THEFT | AUDIT_CORRECTION | SPILLED | OTHER"
// @Param        fromDate   query  string  false  "Desde (RFC 3339)"
// @Param        toDate     query  string  false  "Hasta (RFC 3339)"
// @Success      200  {object}  dto.ListResponse
// @Router       /api/inventory/adjustments [get]
func (h *AdjustmentHandler) List(c *fiber.Ctx) error {
	var req dto.AdjustmentListRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	data, meta, err := h.uc.List(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListResponse{Data: data, Meta: *meta})
}
