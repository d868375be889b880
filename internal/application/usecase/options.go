package usecase

import (
	"time"

	"github.com/jhoicas/masterdata-api/internal/application/dto"
	"github.com/jhoicas/masterdata-api/internal/application/masterdata"
	"github.com/jhoicas/masterdata-api/internal/domain/entity"
	"github.com/jhoicas/masterdata-api/internal/domain/repository"
	"github.com/jhoicas/masterdata-api/internal/domain/rules"
)

// Options dependencias transversales de los casos de uso de datos maestros.
type Options struct {
	Observer masterdata.Observer
	// Now reloj para los campos de auditoría; nil = time.Now.
	Now func() time.Time
}

func pipelineConfig[T any](name string, store repository.Store[T], v *rules.Validator[T], opts Options) masterdata.Config[T] {
	return masterdata.Config[T]{
		Entity:    name,
		Store:     store,
		Validator: v,
		Observer:  opts.Observer,
		Now:       opts.Now,
	}
}

func toAuditResponse(a entity.Audit) dto.AuditResponse {
	return dto.AuditResponse{
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
		UpdatedBy: a.UpdatedBy,
		UpdatedAt: a.UpdatedAt,
	}
}

func mapResponses[T any, R any](list []*T, fn func(*T) R) []R {
	out := make([]R, 0, len(list))
	for _, e := range list {
		out = append(out, fn(e))
	}
	return out
}
