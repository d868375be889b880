package rules

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/jhoicas/masterdata-api/internal/domain"
)

// Mode modo de validación.
type Mode int

const (
	Create Mode = iota
	Update
)

func (m Mode) Operation() domain.Operation {
	if m == Update {
		return domain.OperationUpdate
	}
	return domain.OperationCreate
}

// Field regla de un campo de texto de la entidad T: normalización, obligatoriedad,
// longitud, patrón, formato y unicidad. Exactamente uno de Str u Opt debe estar definido.
type Field[T any] struct {
	Name     string
	Kind     Kind
	Required bool
	Min      int // longitud mínima en caracteres; 0 = sin mínimo
	Max      int // longitud máxima en caracteres; 0 = sin máximo
	Pattern  *regexp.Regexp
	// PatternMessage mensaje cuando no se cumple Pattern.
	PatternMessage string
	// Format validación adicional (p. ej. email) tras longitud y patrón.
	Format        func(string) bool
	FormatMessage string
	Unique        bool

	Str func(*T) *string  // campo string (obligatorio)
	Opt func(*T) **string // campo *string (opcional)
}

// Get devuelve el valor actual del campo en e; nil si está vacío.
func (f Field[T]) Get(e *T) *string {
	if f.Opt != nil {
		return *f.Opt(e)
	}
	v := *f.Str(e)
	if v == "" {
		return nil
	}
	return &v
}

// Set asigna v (ya normalizado) al campo de e. nil limpia el campo.
func (f Field[T]) Set(e *T, v *string) {
	if f.Opt != nil {
		*f.Opt(e) = v
		return
	}
	if v == nil {
		*f.Str(e) = ""
		return
	}
	*f.Str(e) = *v
}

// Check valida un valor ya normalizado. supplied indica que el llamador envió el campo;
// en Update un obligatorio solo se exige si fue enviado (y entonces no puede quedar vacío).
func (f Field[T]) Check(v *string, mode Mode, supplied bool) error {
	if v == nil {
		if f.Required && (mode == Create || supplied) {
			return domain.NewValidation(f.Name, "es obligatorio")
		}
		return nil
	}
	n := utf8.RuneCountInString(*v)
	switch {
	case f.Min > 0 && f.Max > 0 && (n < f.Min || n > f.Max):
		if f.Min == f.Max {
			return domain.NewValidation(f.Name, fmt.Sprintf("debe tener exactamente %d caracteres", f.Min))
		}
		return domain.NewValidation(f.Name, fmt.Sprintf("debe tener entre %d y %d caracteres", f.Min, f.Max))
	case f.Min > 0 && n < f.Min:
		return domain.NewValidation(f.Name, fmt.Sprintf("debe tener al menos %d caracteres", f.Min))
	case f.Max > 0 && n > f.Max:
		return domain.NewValidation(f.Name, fmt.Sprintf("no puede superar %d caracteres", f.Max))
	}
	if f.Pattern != nil && !f.Pattern.MatchString(*v) {
		msg := f.PatternMessage
		if msg == "" {
			msg = "formato inválido"
		}
		return domain.NewValidation(f.Name, msg)
	}
	if f.Format != nil && !f.Format(*v) {
		msg := f.FormatMessage
		if msg == "" {
			msg = "formato inválido"
		}
		return domain.NewValidation(f.Name, msg)
	}
	return nil
}
