package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/masterdata-api/internal/application/dto"
	"github.com/jhoicas/masterdata-api/internal/interfaces/httperr"
)

// fail escribe el error traducido con el cuerpo estándar {code, message, field}.
func fail(c *fiber.Ctx, tr *httperr.Translator, err error) error {
	out := tr.Translate(c.UserContext(), err)
	return c.Status(out.Status).JSON(dto.ErrorResponse{Code: out.Code, Message: out.Message, Field: out.Field})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// parseID lee el parámetro :id como entero positivo.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: httperr.CodeValidation, Message: "id debe ser un entero positivo", Field: "id"})
}
