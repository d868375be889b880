package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/masterdata-api/internal/application/dto"
	"github.com/jhoicas/masterdata-api/internal/application/usecase"
	"github.com/jhoicas/masterdata-api/internal/interfaces/httperr"
)

// RoleLister caso de uso de roles (solo lectura).
type RoleLister interface {
	List(ctx context.Context) (*dto.ListResponse[dto.RoleResponse], error)
}

// LookupHandler consultas de solo lectura: roles y decodificación de números de identidad.
type LookupHandler struct {
	roles RoleLister
	tr    *httperr.Translator
}

// NewLookupHandler construye el handler.
func NewLookupHandler(roles RoleLister, tr *httperr.Translator) *LookupHandler {
	return &LookupHandler{roles: roles, tr: tr}
}

// Roles godoc
// @Summary      Listar roles
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.RoleResponse]
// @Router       /api/roles [get]
func (h *LookupHandler) Roles(c *fiber.Ctx) error {
	out, err := h.roles.List(c.UserContext())
	if err != nil {
		return fail(c, h.tr, err)
	}
	return c.JSON(out)
}

// IdNumber godoc
// @Summary      Decodificar número de identidad nacional
// @Description  Devuelve validez, fecha de nacimiento, sexo y ciudadanía. Un número inválido responde 200 con valid=false.
// @Tags         id-numbers
// @Security     Bearer
// @Produce      json
// @Param        number  path  string  true  "Número de 13 dígitos"
// @Success      200     {object}  dto.IdNumberResponse
// @Router       /api/id-numbers/{number} [get]
func (h *LookupHandler) IdNumber(c *fiber.Ctx) error {
	return c.JSON(usecase.DescribeIdNumber(c.Params("number")))
}
