// Package validation expone una instancia única de go-playground/validator para validar
// DTOs por tags y formatos sueltos (email) desde las reglas de dominio.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Get devuelve el validador compartido (thread-safe, cachea la información de structs).
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Usar el nombre JSON del campo en los errores.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// IsEmail informa si s tiene formato de email.
func IsEmail(s string) bool {
	return Get().Var(s, "required,email") == nil
}

// FieldError primer error de validación de un struct: campo (nombre JSON) y tag incumplido.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// Struct valida s por sus tags `validate` y devuelve el primer campo inválido, o nil.
func Struct(s any) (*FieldError, error) {
	err := Get().Struct(s)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()}, nil
	}
	return nil, err
}
