// Package web sirve fragmentos HTML (estilo HTMX) para administrar los datos de referencia
// desde un panel. Comparte casos de uso y traductor de errores con la API JSON.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/masterdata-api/internal/application/dto"
	"github.com/jhoicas/masterdata-api/internal/domain"
	apphttp "github.com/jhoicas/masterdata-api/internal/interfaces/http"
	"github.com/jhoicas/masterdata-api/internal/interfaces/httperr"
)

//go:embed templates/*.html
var templatesFS embed.FS

var fragments = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

var errInvalidForm = domain.NewValidation("form", "formulario inválido")

// Deps casos de uso expuestos en el panel.
type Deps struct {
	Countries  Service[dto.CountryRequest, dto.CountryResponse]
	Genders    Service[dto.CatalogRequest, dto.CatalogResponse]
	Titles     Service[dto.CatalogRequest, dto.CatalogResponse]
	IdTypes    Service[dto.CatalogRequest, dto.CatalogResponse]
	Translator *httperr.Translator
}

// Handler fragmentos HTML de países y catálogos.
type Handler struct {
	sections map[string]section
	tr       *httperr.Translator
}

// NewHandler construye el handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		sections: map[string]section{
			"countries": countrySection(deps.Countries),
			"genders":   catalogSection("genders", deps.Genders),
			"titles":    catalogSection("titles", deps.Titles),
			"id-types":  catalogSection("id-types", deps.IdTypes),
		},
		tr: deps.Translator,
	}
}

// Mount registra las rutas bajo r. write protege las operaciones de escritura.
func (h *Handler) Mount(r fiber.Router, write fiber.Handler) {
	r.Get("/:entity", h.Table)
	r.Post("/:entity", write, h.Create)
	r.Post("/:entity/:id", write, h.Update)
	r.Delete("/:entity/:id", write, h.Delete)
}

// Table devuelve la tabla completa de la entidad.
func (h *Handler) Table(c *fiber.Ctx) error {
	s, name, ok := h.section(c)
	if !ok {
		return h.notFound(c)
	}
	rows, err := s.list(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return render(c, fiber.StatusOK, "table", map[string]any{
		"Entity":  name,
		"Columns": s.columns(),
		"Rows":    rows,
	})
}

// Create crea desde el formulario y devuelve la fila nueva.
func (h *Handler) Create(c *fiber.Ctx) error {
	s, _, ok := h.section(c)
	if !ok {
		return h.notFound(c)
	}
	r, err := s.create(c, apphttp.GetActor(c))
	if err != nil {
		return h.fail(c, err)
	}
	return render(c, fiber.StatusCreated, "row", r)
}

// Update actualiza desde el formulario y devuelve la fila modificada.
func (h *Handler) Update(c *fiber.Ctx) error {
	s, _, ok := h.section(c)
	if !ok {
		return h.notFound(c)
	}
	id, ok := parseID(c)
	if !ok {
		return h.fail(c, domain.NewValidation("id", "debe ser un entero positivo"))
	}
	r, err := s.update(c, apphttp.GetActor(c), id)
	if err != nil {
		return h.fail(c, err)
	}
	return render(c, fiber.StatusOK, "row", r)
}

// Delete elimina y responde vacío para que el cliente retire la fila.
func (h *Handler) Delete(c *fiber.Ctx) error {
	s, _, ok := h.section(c)
	if !ok {
		return h.notFound(c)
	}
	id, ok := parseID(c)
	if !ok {
		return h.fail(c, domain.NewValidation("id", "debe ser un entero positivo"))
	}
	if err := s.delete(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *Handler) section(c *fiber.Ctx) (section, string, bool) {
	name := c.Params("entity")
	s, ok := h.sections[name]
	return s, name, ok
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	out := h.tr.Translate(c.UserContext(), err)
	return render(c, out.Status, "error", out)
}

func (h *Handler) notFound(c *fiber.Ctx) error {
	return render(c, fiber.StatusNotFound, "error", httperr.Outcome{
		Status:  fiber.StatusNotFound,
		Code:    httperr.CodeNotFound,
		Message: "sección desconocida: " + c.Params("entity"),
	})
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

func render(c *fiber.Ctx, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}
