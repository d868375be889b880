package repository

import "context"

// Store puerto de persistencia genérico para una entidad de datos maestros (DIP).
// GetByID devuelve (nil, nil) si el registro no existe.
// Create asigna el ID generado por la base de datos.
type Store[T any] interface {
	GetByID(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context) ([]*T, error)
	ExistsByField(ctx context.Context, field, value string, excludeID int64) (bool, error)
	Create(ctx context.Context, e *T) error
	Update(ctx context.Context, e *T) error
	Delete(ctx context.Context, id int64) error
}
