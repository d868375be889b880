// Package rules contiene las reglas genéricas de datos maestros: normalización de campos,
// validación por tabla de reglas y el oráculo de unicidad. No conoce HTTP ni SQL.
package rules

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind regla de normalización de un campo de texto.
type Kind int

const (
	Text  Kind = iota // recorta espacios y aplica NFC
	Code              // recorta y pasa a mayúsculas
	Email             // recorta y pasa a minúsculas
)

// Normalize devuelve la forma canónica de raw según la regla, o nil si queda vacío.
// Nunca falla: un obligatorio vacío es asunto del validador.
func Normalize(kind Kind, raw *string) *string {
	if raw == nil {
		return nil
	}
	v := strings.TrimSpace(*raw)
	if v == "" {
		return nil
	}
	switch kind {
	case Code:
		v = strings.ToUpper(v)
	case Email:
		v = strings.ToLower(v)
	}
	v = norm.NFC.String(v)
	return &v
}

// NormalizeString atajo para valores no opcionales; "" si queda vacío.
func NormalizeString(kind Kind, raw string) string {
	if v := Normalize(kind, &raw); v != nil {
		return *v
	}
	return ""
}
