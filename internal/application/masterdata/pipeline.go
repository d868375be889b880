// Package masterdata implementa el flujo único normalizar → validar → verificar unicidad → persistir
// que comparten todas las entidades de datos maestros. Cada entidad lo instancia una vez con su
// tabla de reglas (rules.Validator) y su puerto de persistencia.
package masterdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/masterdata-api/internal/domain"
	"github.com/jhoicas/masterdata-api/internal/domain/repository"
	"github.com/jhoicas/masterdata-api/internal/domain/rules"
)

// ErrMissingActor el llamador no indicó quién realiza la operación.
var ErrMissingActor = errors.New("masterdata: actor obligatorio")

// Record restricción de las entidades que maneja el pipeline (*T con ID y auditoría).
type Record[T any] interface {
	*T
	Identity() int64
	StampCreated(actor string, at time.Time)
	StampUpdated(actor string, at time.Time)
}

// Input valores enviados por el llamador. Un puntero nil (o una clave ausente) significa
// "no enviado"; en Update un texto vacío limpia un opcional y es error en un obligatorio.
type Input struct {
	ID     *int64
	Fields map[string]*string
}

// Hook lógica propia de la entidad que se ejecuta tras asignar los campos de texto
// (resolución de referencias, hash de contraseña, roles). Se pasa por llamada.
type Hook[T any] func(ctx context.Context, e *T, mode rules.Mode) error

// Observer recibe el resultado de cada operación (métricas).
type Observer interface {
	Observe(entity, operation string, err error)
}

type nopObserver struct{}

func (nopObserver) Observe(string, string, error) {}

// Config dependencias de un pipeline.
type Config[T any] struct {
	Entity    string
	Store     repository.Store[T]
	Validator *rules.Validator[T]
	Observer  Observer
	Now       func() time.Time
}

// Pipeline orquesta create/update/delete para una entidad.
type Pipeline[T any, P Record[T]] struct {
	entity    string
	store     repository.Store[T]
	validator *rules.Validator[T]
	oracle    *rules.Oracle
	observer  Observer
	now       func() time.Time
}

// New construye el pipeline de una entidad.
func New[T any, P Record[T]](cfg Config[T]) *Pipeline[T, P] {
	p := &Pipeline[T, P]{
		entity:    cfg.Entity,
		store:     cfg.Store,
		validator: cfg.Validator,
		oracle:    rules.NewOracle(cfg.Entity, cfg.Store),
		observer:  cfg.Observer,
		now:       cfg.Now,
	}
	if p.observer == nil {
		p.observer = nopObserver{}
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Entity nombre de la entidad del pipeline.
func (p *Pipeline[T, P]) Entity() string { return p.entity }

// Create valida, normaliza, verifica unicidad y persiste una nueva entidad.
func (p *Pipeline[T, P]) Create(ctx context.Context, actor string, in Input, hooks ...Hook[T]) (*T, error) {
	e, err := p.create(ctx, actor, in, hooks)
	p.observer.Observe(p.entity, string(domain.OperationCreate), err)
	return e, err
}

func (p *Pipeline[T, P]) create(ctx context.Context, actor string, in Input, hooks []Hook[T]) (*T, error) {
	if actor == "" {
		return nil, ErrMissingActor
	}
	if in.ID != nil {
		return nil, domain.NewValidation("id", "no debe incluirse al crear")
	}
	if err := p.rejectUnknown(in); err != nil {
		return nil, err
	}
	e := new(T)
	for _, f := range p.validator.Fields {
		v := rules.Normalize(f.Kind, in.Fields[f.Name])
		if err := f.Check(v, rules.Create, true); err != nil {
			return nil, err
		}
		f.Set(e, v)
	}
	for _, hook := range hooks {
		if err := hook(ctx, e, rules.Create); err != nil {
			return nil, err
		}
	}
	if err := p.validator.ValidateCross(ctx, e); err != nil {
		return nil, err
	}
	for _, f := range p.validator.Fields {
		if !f.Unique {
			continue
		}
		if v := f.Get(e); v != nil {
			if err := p.oracle.Ensure(ctx, f.Name, *v, 0, domain.OperationCreate); err != nil {
				return nil, err
			}
		}
	}
	P(e).StampCreated(actor, p.now())
	if err := p.store.Create(ctx, e); err != nil {
		return nil, p.persistError(err, e, domain.OperationCreate)
	}
	return e, nil
}

// Update aplica una actualización parcial: solo los campos enviados (no nil) cambian.
func (p *Pipeline[T, P]) Update(ctx context.Context, actor string, id int64, in Input, hooks ...Hook[T]) (*T, error) {
	e, err := p.update(ctx, actor, id, in, hooks)
	p.observer.Observe(p.entity, string(domain.OperationUpdate), err)
	return e, err
}

func (p *Pipeline[T, P]) update(ctx context.Context, actor string, id int64, in Input, hooks []Hook[T]) (*T, error) {
	if actor == "" {
		return nil, ErrMissingActor
	}
	e, err := p.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.ID != nil && *in.ID != id {
		return nil, domain.NewValidation("id", "no coincide con el recurso")
	}
	if err := p.rejectUnknown(in); err != nil {
		return nil, err
	}
	for _, f := range p.validator.Fields {
		raw, ok := in.Fields[f.Name]
		if !ok || raw == nil {
			continue
		}
		v := rules.Normalize(f.Kind, raw)
		if err := f.Check(v, rules.Update, true); err != nil {
			return nil, err
		}
		if f.Unique && v != nil {
			if err := p.oracle.Ensure(ctx, f.Name, *v, id, domain.OperationUpdate); err != nil {
				return nil, err
			}
		}
		f.Set(e, v)
	}
	for _, hook := range hooks {
		if err := hook(ctx, e, rules.Update); err != nil {
			return nil, err
		}
	}
	if err := p.validator.ValidateCross(ctx, e); err != nil {
		return nil, err
	}
	P(e).StampUpdated(actor, p.now())
	if err := p.store.Update(ctx, e); err != nil {
		return nil, p.persistError(err, e, domain.OperationUpdate)
	}
	return e, nil
}

// Delete elimina físicamente la entidad. No hay cascada más allá de las FK de la base de datos.
func (p *Pipeline[T, P]) Delete(ctx context.Context, id int64) error {
	err := p.delete(ctx, id)
	p.observer.Observe(p.entity, "delete", err)
	return err
}

func (p *Pipeline[T, P]) delete(ctx context.Context, id int64) error {
	if _, err := p.Get(ctx, id); err != nil {
		return err
	}
	if err := p.store.Delete(ctx, id); err != nil {
		var ce *repository.ConstraintError
		if errors.As(err, &ce) && ce.Kind == repository.ConstraintForeignKey {
			return domain.NewValidation("id", "está en uso por otros registros")
		}
		if errors.Is(err, repository.ErrRowMissing) {
			return domain.NewNotFound(p.entity, id)
		}
		return fmt.Errorf("eliminar %s %d: %w", p.entity, id, err)
	}
	return nil
}

// Get obtiene la entidad por ID o NotFoundError.
func (p *Pipeline[T, P]) Get(ctx context.Context, id int64) (*T, error) {
	e, err := p.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener %s %d: %w", p.entity, id, err)
	}
	if e == nil {
		return nil, domain.NewNotFound(p.entity, id)
	}
	return e, nil
}

// List lista todas las entidades en su orden natural.
func (p *Pipeline[T, P]) List(ctx context.Context) ([]*T, error) {
	list, err := p.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar %s: %w", p.entity, err)
	}
	return list, nil
}

func (p *Pipeline[T, P]) rejectUnknown(in Input) error {
	for name := range in.Fields {
		if _, ok := p.validator.Field(name); !ok {
			return domain.NewValidation(name, "campo desconocido")
		}
	}
	return nil
}

// persistError traduce la violación tardía de un constraint (carrera entre escritores
// concurrentes) a la misma taxonomía que el pre-chequeo. Un registro eliminado entre la
// lectura y la escritura es NotFound.
func (p *Pipeline[T, P]) persistError(err error, e *T, op domain.Operation) error {
	if errors.Is(err, repository.ErrRowMissing) {
		return domain.NewNotFound(p.entity, P(e).Identity())
	}
	var ce *repository.ConstraintError
	if errors.As(err, &ce) {
		switch ce.Kind {
		case repository.ConstraintUnique:
			value := ""
			if f, ok := p.validator.Field(ce.Field); ok {
				if v := f.Get(e); v != nil {
					value = *v
				}
			}
			return domain.NewDuplicate(p.entity, ce.Field, value, op)
		case repository.ConstraintForeignKey:
			return domain.NewValidation(ce.Field, "hace referencia a un registro inexistente")
		}
	}
	return fmt.Errorf("%s %s: %w", op, p.entity, err)
}
