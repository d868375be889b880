package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/masterdata-api/internal/application/dto"
	"github.com/jhoicas/masterdata-api/internal/application/masterdata"
	"github.com/jhoicas/masterdata-api/internal/domain"
	"github.com/jhoicas/masterdata-api/internal/domain/entity"
	"github.com/jhoicas/masterdata-api/internal/domain/repository"
	"github.com/jhoicas/masterdata-api/internal/domain/rules"
	"github.com/jhoicas/masterdata-api/pkg/idnumber"
	"github.com/jhoicas/masterdata-api/pkg/validation"
)

const dateLayout = "2006-01-02"

var personFields = []rules.Field[entity.Person]{
	{
		Name: "first_name", Kind: rules.Text, Required: true, Max: 100,
		Str: func(p *entity.Person) *string { return &p.FirstName },
	},
	{
		Name: "middle_name", Kind: rules.Text, Max: 100,
		Opt: func(p *entity.Person) **string { return &p.MiddleName },
	},
	{
		Name: "last_name", Kind: rules.Text, Required: true, Max: 100,
		Str: func(p *entity.Person) *string { return &p.LastName },
	},
	{
		Name: "email", Kind: rules.Email, Required: true, Max: 255, Unique: true,
		Format: validation.IsEmail, FormatMessage: "no es un email válido",
		Str: func(p *entity.Person) *string { return &p.Email },
	},
	{
		Name: "id_number", Kind: rules.Text, Max: 50,
		Opt: func(p *entity.Person) **string { return &p.IdNumber },
	},
}

// PersonReferences repositorios de los datos maestros que una persona referencia.
// Suelen estar envueltos en la caché de referencias.
type PersonReferences struct {
	Titles    repository.TitleRepository
	Genders   repository.GenderRepository
	IdTypes   repository.IdTypeRepository
	Countries repository.CountryRepository
}

// PersonUseCase casos de uso CRUD para personas.
type PersonUseCase struct {
	pipeline       *masterdata.Pipeline[entity.Person, *entity.Person]
	refs           PersonReferences
	nationalIDCode string
}

// NewPersonUseCase construye el caso de uso. nationalIDCode es el código del IdType cuyo
// número se valida con el códec de identidad nacional.
func NewPersonUseCase(repo repository.PersonRepository, refs PersonReferences, nationalIDCode string, opts Options) *PersonUseCase {
	uc := &PersonUseCase{refs: refs, nationalIDCode: nationalIDCode}
	v := &rules.Validator[entity.Person]{
		Fields: personFields,
		Cross:  []rules.CrossCheck[entity.Person]{uc.checkIdentity},
	}
	uc.pipeline = masterdata.New[entity.Person, *entity.Person](pipelineConfig[entity.Person](entity.PersonEntity, repo, v, opts))
	return uc
}

// Create crea una persona.
func (uc *PersonUseCase) Create(ctx context.Context, actor string, in dto.PersonRequest) (*dto.PersonResponse, error) {
	p, err := uc.pipeline.Create(ctx, actor, personInput(in), uc.referencesHook(in))
	if err != nil {
		return nil, err
	}
	return toPersonResponse(p), nil
}

// Update actualiza parcialmente una persona.
func (uc *PersonUseCase) Update(ctx context.Context, actor string, id int64, in dto.PersonRequest) (*dto.PersonResponse, error) {
	p, err := uc.pipeline.Update(ctx, actor, id, personInput(in), uc.referencesHook(in))
	if err != nil {
		return nil, err
	}
	return toPersonResponse(p), nil
}

// Delete elimina una persona por ID.
func (uc *PersonUseCase) Delete(ctx context.Context, id int64) error {
	return uc.pipeline.Delete(ctx, id)
}

// GetByID obtiene una persona por ID.
func (uc *PersonUseCase) GetByID(ctx context.Context, id int64) (*dto.PersonResponse, error) {
	p, err := uc.pipeline.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPersonResponse(p), nil
}

// List lista las personas por apellido y nombre.
func (uc *PersonUseCase) List(ctx context.Context) (*dto.ListResponse[dto.PersonResponse], error) {
	list, err := uc.pipeline.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapResponses(list, func(p *entity.Person) dto.PersonResponse {
		return *toPersonResponse(p)
	})), nil
}

// referencesHook resuelve las referencias enviadas y la fecha de nacimiento. Si la fecha
// falta, o cambia el documento sin enviar fecha, se deriva del número de identidad nacional.
func (uc *PersonUseCase) referencesHook(in dto.PersonRequest) masterdata.Hook[entity.Person] {
	return func(ctx context.Context, p *entity.Person, _ rules.Mode) error {
		if err := resolveRef[entity.Title](ctx, uc.refs.Titles, entity.TitleEntity, in.TitleID, &p.TitleID); err != nil {
			return err
		}
		if err := resolveRef[entity.Gender](ctx, uc.refs.Genders, entity.GenderEntity, in.GenderID, &p.GenderID); err != nil {
			return err
		}
		if err := resolveRef[entity.IdType](ctx, uc.refs.IdTypes, entity.IdTypeEntity, in.IdTypeID, &p.IdTypeID); err != nil {
			return err
		}
		if err := resolveRef[entity.Country](ctx, uc.refs.Countries, entity.CountryEntity, in.CountryID, &p.CountryID); err != nil {
			return err
		}
		if in.DateOfBirth != nil {
			dob, err := parseDate(*in.DateOfBirth)
			if err != nil {
				return err
			}
			p.DateOfBirth = dob
		}
		if p.IdTypeID == nil || p.IdNumber == nil {
			return nil
		}
		// Un documento nuevo sin fecha explícita vuelve a derivar la fecha de nacimiento.
		rederive := in.DateOfBirth == nil && (in.IdNumber != nil || in.IdTypeID != nil)
		if p.DateOfBirth != nil && !rederive {
			return nil
		}
		national, err := uc.isNational(ctx, *p.IdTypeID)
		if err != nil || !national {
			return err
		}
		if dob, ok := idnumber.DateOfBirth(*p.IdNumber); ok {
			p.DateOfBirth = &dob
		}
		return nil
	}
}

// checkIdentity un tipo de identificación exige número; el documento nacional además
// debe superar el códec y coincidir con la fecha de nacimiento.
func (uc *PersonUseCase) checkIdentity(ctx context.Context, p *entity.Person) error {
	if p.IdTypeID == nil {
		return nil
	}
	if p.IdNumber == nil {
		return domain.NewValidation("id_number", "es obligatorio cuando se indica id_type_id")
	}
	national, err := uc.isNational(ctx, *p.IdTypeID)
	if err != nil || !national {
		return err
	}
	dob, ok := idnumber.DateOfBirth(*p.IdNumber)
	if !ok {
		return domain.NewValidation("id_number", "no es un número de identidad nacional válido")
	}
	if p.DateOfBirth != nil && !p.DateOfBirth.Equal(dob) {
		return domain.NewValidation("date_of_birth", "no coincide con id_number")
	}
	return nil
}

func (uc *PersonUseCase) isNational(ctx context.Context, idTypeID int64) (bool, error) {
	t, err := uc.refs.IdTypes.GetByID(ctx, idTypeID)
	if err != nil {
		return false, fmt.Errorf("obtener id_type %d: %w", idTypeID, err)
	}
	if t == nil {
		return false, domain.NewNotFound(entity.IdTypeEntity, idTypeID)
	}
	return t.Code == uc.nationalIDCode, nil
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, domain.NewValidation("date_of_birth", "debe tener formato AAAA-MM-DD")
	}
	return &d, nil
}

func personInput(in dto.PersonRequest) masterdata.Input {
	return masterdata.Input{ID: in.ID, Fields: map[string]*string{
		"first_name":  in.FirstName,
		"middle_name": in.MiddleName,
		"last_name":   in.LastName,
		"email":       in.Email,
		"id_number":   in.IdNumber,
	}}
}

func toPersonResponse(p *entity.Person) *dto.PersonResponse {
	out := &dto.PersonResponse{
		ID:            p.ID,
		TitleID:       p.TitleID,
		FirstName:     p.FirstName,
		MiddleName:    p.MiddleName,
		LastName:      p.LastName,
		GenderID:      p.GenderID,
		Email:         p.Email,
		IdTypeID:      p.IdTypeID,
		IdNumber:      p.IdNumber,
		CountryID:     p.CountryID,
		AuditResponse: toAuditResponse(p.Audit),
	}
	if p.DateOfBirth != nil {
		s := p.DateOfBirth.Format(dateLayout)
		out.DateOfBirth = &s
	}
	return out
}
