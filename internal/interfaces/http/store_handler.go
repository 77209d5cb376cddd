package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/application/store"
)

// StoreHandler maneja las peticiones HTTP de los datos del comercio.
type StoreHandler struct {
	uc *store.UseCase
}

// NewStoreHandler construye el handler.
func NewStoreHandler(uc *store.UseCase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// Get godoc
// @Summary      Datos del comercio
// @Tags         store
// @Produce      json
// @Success      200  {object}  dto.StoreInfoResponse
// @Router       /api/store [get]
func (h *StoreHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar datos del comercio
// @Tags         store
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StoreInfoInput  true  "Campos a actualizar (los vacíos se conservan)"
// @Success      200   {object}  dto.StoreInfoResponse
// @Router       /api/store [put]
func (h *StoreHandler) Update(c *fiber.Ctx) error {
	var in dto.StoreInfoInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
