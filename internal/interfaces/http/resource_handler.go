package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/masterdata-api/internal/application/dto"
	"github.com/jhoicas/masterdata-api/internal/interfaces/httperr"
)

// Resource operaciones que expone cada caso de uso de datos maestros
// (países, catálogos, personas, usuarios).
type Resource[Req, Resp any] interface {
	Create(ctx context.Context, actor string, in Req) (*Resp, error)
	Update(ctx context.Context, actor string, id int64, in Req) (*Resp, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Resp, error)
	List(ctx context.Context) (*dto.ListResponse[Resp], error)
}

// ResourceHandler handler CRUD común a todas las entidades.
type ResourceHandler[Req, Resp any] struct {
	uc Resource[Req, Resp]
	tr *httperr.Translator
}

// NewResourceHandler construye el handler.
func NewResourceHandler[Req, Resp any](uc Resource[Req, Resp], tr *httperr.Translator) *ResourceHandler[Req, Resp] {
	return &ResourceHandler[Req, Resp]{uc: uc, tr: tr}
}

// Create godoc
// @Summary      Crear registro de datos maestros
// @Tags         masterdata
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "Campos de la entidad (sin id)"
// @Success      201   {object}  object
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/countries [post]
// @Router       /api/genders [post]
// @Router       /api/titles [post]
// @Router       /api/id-types [post]
// @Router       /api/persons [post]
// @Router       /api/users [post]
func (h *ResourceHandler[Req, Resp]) Create(c *fiber.Ctx) error {
	var in Req
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return fail(c, h.tr, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar registro (parcial: solo cambian los campos enviados)
// @Tags         masterdata
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int     true  "ID"
// @Param        body  body  object  true  "Campos a modificar"
// @Success      200   {object}  object
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/countries/{id} [patch]
// @Router       /api/genders/{id} [patch]
// @Router       /api/titles/{id} [patch]
// @Router       /api/id-types/{id} [patch]
// @Router       /api/persons/{id} [patch]
// @Router       /api/users/{id} [patch]
func (h *ResourceHandler[Req, Resp]) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	var in Req
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return fail(c, h.tr, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro
// @Tags         masterdata
// @Security     Bearer
// @Param        id   path  int  true  "ID"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/countries/{id} [delete]
// @Router       /api/genders/{id} [delete]
// @Router       /api/titles/{id} [delete]
// @Router       /api/id-types/{id} [delete]
// @Router       /api/persons/{id} [delete]
// @Router       /api/users/{id} [delete]
func (h *ResourceHandler[Req, Resp]) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return fail(c, h.tr, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener registro por ID
// @Tags         masterdata
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  object
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/countries/{id} [get]
// @Router       /api/genders/{id} [get]
// @Router       /api/titles/{id} [get]
// @Router       /api/id-types/{id} [get]
// @Router       /api/persons/{id} [get]
// @Router       /api/users/{id} [get]
func (h *ResourceHandler[Req, Resp]) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, h.tr, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar registros en su orden natural
// @Tags         masterdata
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  object
// @Router       /api/countries [get]
// @Router       /api/genders [get]
// @Router       /api/titles [get]
// @Router       /api/id-types [get]
// @Router       /api/persons [get]
// @Router       /api/users [get]
func (h *ResourceHandler[Req, Resp]) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, h.tr, err)
	}
	return c.JSON(out)
}

// mount registra las rutas CRUD. Las lecturas solo exigen sesión; las escrituras, los roles indicados.
func (h *ResourceHandler[Req, Resp]) mount(r fiber.Router, write fiber.Handler) {
	r.Get("/", h.List)
	r.Get("/:id", h.GetByID)
	r.Post("/", write, h.Create)
	r.Patch("/:id", write, h.Update)
	r.Put("/:id", write, h.Update)
	r.Delete("/:id", write, h.Delete)
}
