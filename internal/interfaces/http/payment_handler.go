package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/application/payment"
)

// PaymentHandler maneja las peticiones HTTP para pagos.
type PaymentHandler struct {
	uc *payment.UseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *payment.UseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// CreateForOrder godoc
// @Summary      Registrar pago sobre una orden
// @Description  Acepta montos en USD o VES (exactamente uno). Montos negativos
// @Description  registran una reversa y exigen notas. Si el pago completa el
// @Description  total y la orden está completada, la venta se deriva en la
// @Description  misma transacción.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.PaymentCreateInput  true  "Datos del pago"
// @Success      201   {object}  dto.PaymentRegisteredResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/payments [post]
func (h *PaymentHandler) CreateForOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	if orderID == "" {
		return missingID(c)
	}
	var in dto.PaymentCreateInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateForOrder(c.Context(), orderID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateForSale godoc
// @Summary      Registrar pago sobre una venta
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.PaymentCreateInput  true  "Datos del pago"
// @Success      201   {object}  dto.PaymentRegisteredResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/payments [post]
func (h *PaymentHandler) CreateForSale(c *fiber.Ctx) error {
	saleID := c.Params("id")
	if saleID == "" {
		return missingID(c)
	}
	var in dto.PaymentCreateInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateForSale(c.Context(), saleID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener pago por ID
// @Tags         payments
// @Produce      json
// @Param        id   path  string  true  "ID del pago"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [get]
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar pagos de una orden o venta
// @Tags         payments
// @Produce      json
// @Param        page      query  int     false  "Página"  default(1)
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        orderId   query  string  false  "ID de la orden (excluyente con saleId)"
// @Param        saleId    query  string  false  "ID de la venta (excluyente con orderId)"
// @Param        methodId  query  string  false  "ID del método de pago"
// @Success      200  {object}  dto.ListResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	var req dto.PaymentListRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	data, meta, err := h.uc.List(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListResponse{Data: data, Meta: *meta})
}
