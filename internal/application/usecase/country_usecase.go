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

var countryRules = &rules.Validator[entity.Country]{Fields: []rules.Field[entity.Country]{
	{
		Name: "code", Kind: rules.Code, Required: true, Min: 2, Max: 2, Unique: true,
		Pattern:        regexp.MustCompile(`^[A-Z]{2}$`),
		PatternMessage: "debe ser un código ISO de 2 letras",
		Str:            func(c *entity.Country) *string { return &c.Code },
	},
	{
		Name: "name", Kind: rules.Text, Required: true, Max: 100, Unique: true,
		Str: func(c *entity.Country) *string { return &c.Name },
	},
	{
		Name: "year", Kind: rules.Text, Max: 10,
		Opt: func(c *entity.Country) **string { return &c.Year },
	},
	{
		Name: "cctld", Kind: rules.Text, Max: 10,
		Opt: func(c *entity.Country) **string { return &c.CCTLD },
	},
}}

// CountryUseCase casos de uso CRUD para países.
type CountryUseCase struct {
	pipeline *masterdata.Pipeline[entity.Country, *entity.Country]
}

// NewCountryUseCase construye el caso de uso.
func NewCountryUseCase(repo repository.CountryRepository, opts Options) *CountryUseCase {
	cfg := pipelineConfig[entity.Country](entity.CountryEntity, repo, countryRules, opts)
	return &CountryUseCase{pipeline: masterdata.New[entity.Country, *entity.Country](cfg)}
}

// Create crea un país. actor queda registrado como creador.
func (uc *CountryUseCase) Create(ctx context.Context, actor string, in dto.CountryRequest) (*dto.CountryResponse, error) {
	c, err := uc.pipeline.Create(ctx, actor, countryInput(in))
	if err != nil {
		return nil, err
	}
	return toCountryResponse(c), nil
}

// Update actualiza parcialmente un país.
func (uc *CountryUseCase) Update(ctx context.Context, actor string, id int64, in dto.CountryRequest) (*dto.CountryResponse, error) {
	c, err := uc.pipeline.Update(ctx, actor, id, countryInput(in))
	if err != nil {
		return nil, err
	}
	return toCountryResponse(c), nil
}

// Delete elimina un país por ID.
func (uc *CountryUseCase) Delete(ctx context.Context, id int64) error {
	return uc.pipeline.Delete(ctx, id)
}

// GetByID obtiene un país por ID.
func (uc *CountryUseCase) GetByID(ctx context.Context, id int64) (*dto.CountryResponse, error) {
	c, err := uc.pipeline.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCountryResponse(c), nil
}

// List lista los países ordenados por nombre.
func (uc *CountryUseCase) List(ctx context.Context) (*dto.ListResponse[dto.CountryResponse], error) {
	list, err := uc.pipeline.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapResponses(list, func(c *entity.Country) dto.CountryResponse {
		return *toCountryResponse(c)
	})), nil
}

func countryInput(in dto.CountryRequest) masterdata.Input {
	return masterdata.Input{ID: in.ID, Fields: map[string]*string{
		"code":  in.Code,
		"name":  in.Name,
		"year":  in.Year,
		"cctld": in.CCTLD,
	}}
}

func toCountryResponse(c *entity.Country) *dto.CountryResponse {
	return &dto.CountryResponse{
		ID:            c.ID,
		Code:          c.Code,
		Name:          c.Name,
		Year:          c.Year,
		CCTLD:         c.CCTLD,
		AuditResponse: toAuditResponse(c.Audit),
	}
}
