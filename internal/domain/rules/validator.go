package rules

import "context"

// CrossCheck regla que involucra varios campos (o datos relacionados) de la entidad.
type CrossCheck[T any] func(ctx context.Context, e *T) error

// Validator tabla de reglas de una entidad. Las reglas de campo se aplican con Field.Check
// al normalizar cada valor; las cruzadas con ValidateCross sobre la entidad ya armada.
// Política: se detiene en la primera regla incumplida (no acumula errores).
type Validator[T any] struct {
	Fields []Field[T]
	Cross  []CrossCheck[T]
}

// Field busca la regla por nombre.
func (v *Validator[T]) Field(name string) (Field[T], bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field[T]{}, false
}

// ValidateCross aplica las reglas cruzadas en orden (Update las ejecuta sobre la entidad fusionada).
func (v *Validator[T]) ValidateCross(ctx context.Context, e *T) error {
	for _, check := range v.Cross {
		if err := check(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
