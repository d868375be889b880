package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los errores tipados de más abajo coinciden con estos centinelas vía errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Kind identifica la variante de un Error de dominio.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindDuplicate
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicate:
		return "duplicate"
	case KindNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Operation operación que originó un DuplicateError.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
)

// Error es la taxonomía cerrada de errores esperados del núcleo.
// Solo ValidationError, DuplicateError y NotFoundError la implementan (método sellado).
type Error interface {
	error
	Kind() Kind
	sealed()
}

// ValidationError los datos del llamador violan una regla estructural o de negocio.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidation construye un ValidationError.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
func (e *ValidationError) Kind() Kind           { return KindValidation }
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }
func (e *ValidationError) sealed()              {}

// DuplicateError se viola una regla de unicidad (pre-chequeo o constraint de la BD).
type DuplicateError struct {
	Entity    string
	Field     string
	Value     string
	Operation Operation
}

// NewDuplicate construye un DuplicateError.
func NewDuplicate(entity, field, value string, op Operation) *DuplicateError {
	return &DuplicateError{Entity: entity, Field: field, Value: value, Operation: op}
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: ya existe un registro con %s=%q (%s)", e.Entity, e.Field, e.Value, e.Operation)
}
func (e *DuplicateError) Kind() Kind           { return KindDuplicate }
func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }
func (e *DuplicateError) sealed()              {}

// NotFoundError el destino de una actualización, borrado o referencia no existe.
type NotFoundError struct {
	Entity string
	ID     int64
}

// NewNotFound construye un NotFoundError.
func NewNotFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d no encontrado", e.Entity, e.ID)
}
func (e *NotFoundError) Kind() Kind           { return KindNotFound }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
func (e *NotFoundError) sealed()              {}

// AsError extrae el Error de dominio de la cadena de err, si existe.
func AsError(err error) (Error, bool) {
	var de Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
