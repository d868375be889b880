// Package httperr traduce los errores del núcleo a un resultado HTTP uniforme. Lo usan
// tanto la API JSON como los fragmentos HTML.
package httperr

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jhoicas/masterdata-api/internal/domain"
)

// Códigos de error expuestos a los clientes.
const (
	CodeValidation = "VALIDATION"
	CodeDuplicate  = "DUPLICATE"
	CodeNotFound   = "NOT_FOUND"
	CodeInternal   = "INTERNAL"
)

const internalMessage = "error interno, intente más tarde"

// Outcome resultado de traducir un error.
type Outcome struct {
	Status  int
	Code    string
	Message string
	Field   string
}

// Translator convierte errores en Outcome y registra los inesperados.
type Translator struct {
	log zerolog.Logger
}

// NewTranslator construye el traductor. log se usa cuando el contexto no trae su propio logger.
func NewTranslator(log zerolog.Logger) *Translator {
	return &Translator{log: log}
}

// Translate mapea las variantes de domain.Error a 400/409/404. Cualquier otro error se
// registra completo y se devuelve como 500 con un mensaje genérico.
func (t *Translator) Translate(ctx context.Context, err error) Outcome {
	de, ok := domain.AsError(err)
	if !ok {
		return t.internal(ctx, err)
	}
	switch e := de.(type) {
	case *domain.ValidationError:
		return Outcome{
			Status:  http.StatusBadRequest,
			Code:    CodeValidation,
			Message: e.Error(),
			Field:   e.Field,
		}
	case *domain.DuplicateError:
		return Outcome{
			Status:  http.StatusConflict,
			Code:    CodeDuplicate,
			Message: fmt.Sprintf("ya existe un registro de %s con %s %q", e.Entity, e.Field, e.Value),
			Field:   e.Field,
		}
	case *domain.NotFoundError:
		return Outcome{
			Status:  http.StatusNotFound,
			Code:    CodeNotFound,
			Message: e.Error(),
		}
	default:
		return t.internal(ctx, err)
	}
}

func (t *Translator) internal(ctx context.Context, err error) Outcome {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		l = &t.log
	}
	l.Error().Err(err).Msg("error inesperado")
	return Outcome{Status: http.StatusInternalServerError, Code: CodeInternal, Message: internalMessage}
}
