package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/pkg/logger"
)

// opaqueInternalMessage respuesta fija para fallos internos: el detalle (SQL,
// red, etc.) va al log, nunca al cliente.
const opaqueInternalMessage = "ocurrió un error en el servidor, intente de nuevo más tarde"

// errLog logger del boundary HTTP. Router lo reemplaza con el logger real de
// la aplicación; el default descarta todo.
var errLog = logger.Nop()

// respondError traduce errores de negocio a su respuesta HTTP. Los errores
// de dominio traen código y estatus propios; cualquier otro es un fallo
// interno: se registra con detalle completo y al cliente solo llega una
// respuesta opaca.
func respondError(c *fiber.Ctx, err error) error {
	var be *domain.BusinessError
	if errors.As(err, &be) {
		return c.Status(be.Status).JSON(dto.ErrorResponse{Code: string(be.Code), Message: be.Message})
	}

	errLog.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno atendiendo la petición")
	return c.Status(fiber.StatusInternalServerError).
		JSON(dto.ErrorResponse{Code: "INTERNAL", Message: opaqueInternalMessage})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func invalidBody(c *fiber.Ctx) error {
	return badRequest(c, "INVALID_BODY", "cuerpo inválido")
}

func missingID(c *fiber.Ctx) error {
	return badRequest(c, "MISSING_ID", "id es requerido")
}
