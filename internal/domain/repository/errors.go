package repository

import (
	"errors"
	"fmt"
)

// ErrRowMissing la sentencia no afectó ninguna fila: el registro fue eliminado
// entre la lectura y la escritura.
var ErrRowMissing = errors.New("ninguna fila afectada")

// ConstraintKind tipo de constraint violado en la base de datos.
type ConstraintKind int

const (
	ConstraintUnique ConstraintKind = iota + 1
	ConstraintForeignKey
)

// ConstraintError violación de un constraint detectada al persistir.
// Field es la columna (nombre de campo de dominio) involucrada, si se pudo determinar.
type ConstraintError struct {
	Kind       ConstraintKind
	Constraint string
	Field      string
	Err        error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("constraint %s (%s): %v", e.Constraint, e.Field, e.Err)
}

func (e *ConstraintError) Unwrap() error { return e.Err }
