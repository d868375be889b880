package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/masterdata-api/internal/domain"
	"github.com/jhoicas/masterdata-api/internal/domain/repository"
)

// resolveRef asigna a target la referencia enviada por el llamador.
// nil = no enviada (sin cambios); 0 = limpiar; otro valor debe existir en store.
func resolveRef[T any](ctx context.Context, store repository.Store[T], entity string, id *int64, target **int64) error {
	if id == nil {
		return nil
	}
	if *id == 0 {
		*target = nil
		return nil
	}
	e, err := store.GetByID(ctx, *id)
	if err != nil {
		return fmt.Errorf("resolver %s %d: %w", entity, *id, err)
	}
	if e == nil {
		return domain.NewNotFound(entity, *id)
	}
	ref := *id
	*target = &ref
	return nil
}
