package rules

import (
	"context"
	"fmt"

	"github.com/jhoicas/masterdata-api/internal/domain"
)

// Lookup puerto de consulta "¿existe otro registro con field=value?".
// excludeID = 0 no excluye nada (modo creación).
type Lookup interface {
	ExistsByField(ctx context.Context, field, value string, excludeID int64) (bool, error)
}

// Oracle pre-chequeo de unicidad. Es una cortesía para devolver un DuplicateError amigable;
// la fuente de verdad es el constraint UNIQUE de la base de datos.
type Oracle struct {
	entity string
	lookup Lookup
}

// NewOracle construye el oráculo para una entidad.
func NewOracle(entity string, lookup Lookup) *Oracle {
	return &Oracle{entity: entity, lookup: lookup}
}

// ExistsOtherThan informa si otro registro (id distinto de excludeID) ya tiene value en field.
// value debe estar normalizado.
func (o *Oracle) ExistsOtherThan(ctx context.Context, field, value string, excludeID int64) (bool, error) {
	exists, err := o.lookup.ExistsByField(ctx, field, value, excludeID)
	if err != nil {
		return false, fmt.Errorf("verificar unicidad de %s.%s: %w", o.entity, field, err)
	}
	return exists, nil
}

// Ensure devuelve DuplicateError si value ya está en uso por otro registro.
func (o *Oracle) Ensure(ctx context.Context, field, value string, excludeID int64, op domain.Operation) error {
	exists, err := o.ExistsOtherThan(ctx, field, value, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.NewDuplicate(o.entity, field, value, op)
	}
	return nil
}
