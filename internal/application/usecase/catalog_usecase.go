package usecase

import (
	"context"
	"regexp"

	"github.com/jhoicas/masterdata-api/internal/application/dto"
	"github.com/jhoicas/masterdata-api/internal/application/masterdata"
	"github.com/jhoicas/masterdata-api/internal/domain/entity"
	"github.com/jhoicas/masterdata-api/internal/domain/repository"
	"github.com/jhoicas/masterdata-api/internal/domain/rules"
)

// CatalogUseCase casos de uso CRUD para los catálogos código/descripción.
// Gender, Title e IdType solo difieren en el formato del código.
type CatalogUseCase[T any, P masterdata.Record[T]] struct {
	pipeline   *masterdata.Pipeline[T, P]
	toResponse func(*T) dto.CatalogResponse
}

type (
	GenderUseCase = CatalogUseCase[entity.Gender, *entity.Gender]
	TitleUseCase  = CatalogUseCase[entity.Title, *entity.Title]
	IdTypeUseCase = CatalogUseCase[entity.IdType, *entity.IdType]
)

var (
	genderRules = catalogRules(1, regexp.MustCompile(`^[A-Z]$`), "debe ser una letra",
		func(g *entity.Gender) *string { return &g.Code },
		func(g *entity.Gender) *string { return &g.Description })
	titleRules = catalogRules(5, regexp.MustCompile(`^[A-Z]{1,5}$`), "solo admite letras",
		func(t *entity.Title) *string { return &t.Code },
		func(t *entity.Title) *string { return &t.Description })
	idTypeRules = catalogRules(5, regexp.MustCompile(`^[A-Z]{1,5}$`), "solo admite letras",
		func(t *entity.IdType) *string { return &t.Code },
		func(t *entity.IdType) *string { return &t.Description })
)

func catalogRules[T any](codeMax int, pattern *regexp.Regexp, patternMsg string, code, desc func(*T) *string) *rules.Validator[T] {
	return &rules.Validator[T]{Fields: []rules.Field[T]{
		{
			Name: "code", Kind: rules.Code, Required: true, Min: 1, Max: codeMax, Unique: true,
			Pattern: pattern, PatternMessage: patternMsg, Str: code,
		},
		{Name: "description", Kind: rules.Text, Required: true, Max: 100, Unique: true, Str: desc},
	}}
}

// NewGenderUseCase construye el caso de uso de géneros.
func NewGenderUseCase(repo repository.GenderRepository, opts Options) *GenderUseCase {
	return newCatalogUseCase[entity.Gender, *entity.Gender](entity.GenderEntity, repo, genderRules, opts,
		func(g *entity.Gender) dto.CatalogResponse {
			return catalogResponse(g.ID, g.Code, g.Description, g.Audit)
		})
}

// NewTitleUseCase construye el caso de uso de títulos.
func NewTitleUseCase(repo repository.TitleRepository, opts Options) *TitleUseCase {
	return newCatalogUseCase[entity.Title, *entity.Title](entity.TitleEntity, repo, titleRules, opts,
		func(t *entity.Title) dto.CatalogResponse {
			return catalogResponse(t.ID, t.Code, t.Description, t.Audit)
		})
}

// NewIdTypeUseCase construye el caso de uso de tipos de identificación.
func NewIdTypeUseCase(repo repository.IdTypeRepository, opts Options) *IdTypeUseCase {
	return newCatalogUseCase[entity.IdType, *entity.IdType](entity.IdTypeEntity, repo, idTypeRules, opts,
		func(t *entity.IdType) dto.CatalogResponse {
			return catalogResponse(t.ID, t.Code, t.Description, t.Audit)
		})
}

func newCatalogUseCase[T any, P masterdata.Record[T]](
	name string,
	store repository.Store[T],
	v *rules.Validator[T],
	opts Options,
	toResponse func(*T) dto.CatalogResponse,
) *CatalogUseCase[T, P] {
	return &CatalogUseCase[T, P]{
		pipeline:   masterdata.New[T, P](pipelineConfig(name, store, v, opts)),
		toResponse: toResponse,
	}
}

// Entity nombre de la entidad del catálogo.
func (uc *CatalogUseCase[T, P]) Entity() string { return uc.pipeline.Entity() }

// Create crea una entrada del catálogo.
func (uc *CatalogUseCase[T, P]) Create(ctx context.Context, actor string, in dto.CatalogRequest) (*dto.CatalogResponse, error) {
	e, err := uc.pipeline.Create(ctx, actor, catalogInput(in))
	if err != nil {
		return nil, err
	}
	out := uc.toResponse(e)
	return &out, nil
}

// Update actualiza parcialmente una entrada del catálogo.
func (uc *CatalogUseCase[T, P]) Update(ctx context.Context, actor string, id int64, in dto.CatalogRequest) (*dto.CatalogResponse, error) {
	e, err := uc.pipeline.Update(ctx, actor, id, catalogInput(in))
	if err != nil {
		return nil, err
	}
	out := uc.toResponse(e)
	return &out, nil
}

// Delete elimina una entrada por ID.
func (uc *CatalogUseCase[T, P]) Delete(ctx context.Context, id int64) error {
	return uc.pipeline.Delete(ctx, id)
}

// GetByID obtiene una entrada por ID.
func (uc *CatalogUseCase[T, P]) GetByID(ctx context.Context, id int64) (*dto.CatalogResponse, error) {
	e, err := uc.pipeline.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := uc.toResponse(e)
	return &out, nil
}

// List lista el catálogo ordenado por código.
func (uc *CatalogUseCase[T, P]) List(ctx context.Context) (*dto.ListResponse[dto.CatalogResponse], error) {
	list, err := uc.pipeline.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapResponses(list, uc.toResponse)), nil
}

func catalogInput(in dto.CatalogRequest) masterdata.Input {
	return masterdata.Input{ID: in.ID, Fields: map[string]*string{
		"code":        in.Code,
		"description": in.Description,
	}}
}

func catalogResponse(id int64, code, description string, a entity.Audit) dto.CatalogResponse {
	return dto.CatalogResponse{
		ID:            id,
		Code:          code,
		Description:   description,
		AuditResponse: toAuditResponse(a),
	}
}
