package web

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/masterdata-api/internal/application/dto"
)

// Service operaciones de un caso de uso de datos maestros que usan los fragmentos.
type Service[Req, Resp any] interface {
	Create(ctx context.Context, actor string, in Req) (*Resp, error)
	Update(ctx context.Context, actor string, id int64, in Req) (*Resp, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) (*dto.ListResponse[Resp], error)
}

type row struct {
	Entity string
	ID     int64
	Cells  []string
}

// section adapta una entidad a filas de tabla y formularios.
type section interface {
	columns() []string
	list(ctx context.Context) ([]row, error)
	create(c *fiber.Ctx, actor string) (row, error)
	update(c *fiber.Ctx, actor string, id int64) (row, error)
	delete(ctx context.Context, id int64) error
}

// formSection implementación común; toRow define las columnas de cada entidad.
type formSection[Req, Resp any] struct {
	name    string
	headers []string
	uc      Service[Req, Resp]
	toRow   func(*Resp) (int64, []string)
	// detach copia los textos del formulario fuera del buffer de la petición.
	detach func(*Req)
}

func (s *formSection[Req, Resp]) columns() []string { return s.headers }

func (s *formSection[Req, Resp]) list(ctx context.Context) ([]row, error) {
	out, err := s.uc.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]row, 0, len(out.Items))
	for i := range out.Items {
		rows = append(rows, s.row(&out.Items[i]))
	}
	return rows, nil
}

func (s *formSection[Req, Resp]) create(c *fiber.Ctx, actor string) (row, error) {
	in, err := s.parse(c)
	if err != nil {
		return row{}, err
	}
	out, err := s.uc.Create(c.UserContext(), actor, in)
	if err != nil {
		return row{}, err
	}
	return s.row(out), nil
}

func (s *formSection[Req, Resp]) update(c *fiber.Ctx, actor string, id int64) (row, error) {
	in, err := s.parse(c)
	if err != nil {
		return row{}, err
	}
	out, err := s.uc.Update(c.UserContext(), actor, id, in)
	if err != nil {
		return row{}, err
	}
	return s.row(out), nil
}

// parse lee el formulario y copia sus textos; fasthttp reutiliza el buffer de la petición.
func (s *formSection[Req, Resp]) parse(c *fiber.Ctx) (Req, error) {
	var in Req
	if err := c.BodyParser(&in); err != nil {
		return in, errInvalidForm
	}
	if s.detach != nil {
		s.detach(&in)
	}
	return in, nil
}

func (s *formSection[Req, Resp]) delete(ctx context.Context, id int64) error {
	return s.uc.Delete(ctx, id)
}

func (s *formSection[Req, Resp]) row(r *Resp) row {
	id, cells := s.toRow(r)
	return row{Entity: s.name, ID: id, Cells: cells}
}

func countrySection(uc Service[dto.CountryRequest, dto.CountryResponse]) section {
	return &formSection[dto.CountryRequest, dto.CountryResponse]{
		name:    "countries",
		headers: []string{"ID", "Código", "Nombre", "Año", "ccTLD"},
		uc:      uc,
		toRow: func(c *dto.CountryResponse) (int64, []string) {
			return c.ID, []string{strconv.FormatInt(c.ID, 10), c.Code, c.Name, deref(c.Year), deref(c.CCTLD)}
		},
		detach: func(in *dto.CountryRequest) {
			in.Code, in.Name, in.Year, in.CCTLD = own(in.Code), own(in.Name), own(in.Year), own(in.CCTLD)
		},
	}
}

func catalogSection(name string, uc Service[dto.CatalogRequest, dto.CatalogResponse]) section {
	return &formSection[dto.CatalogRequest, dto.CatalogResponse]{
		name:    name,
		headers: []string{"ID", "Código", "Descripción"},
		uc:      uc,
		toRow: func(c *dto.CatalogResponse) (int64, []string) {
			return c.ID, []string{strconv.FormatInt(c.ID, 10), c.Code, c.Description}
		},
		detach: func(in *dto.CatalogRequest) {
			in.Code, in.Description = own(in.Code), own(in.Description)
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func own(s *string) *string {
	if s == nil {
		return nil
	}
	v := utils.CopyString(*s)
	return &v
}
