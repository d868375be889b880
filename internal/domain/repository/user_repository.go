package repository

import (
	"context"

	"github.com/jhoicas/masterdata-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para User (incluye sus roles).
type UserRepository interface {
	Store[entity.User]
	// GetByUsername devuelve (nil, nil) si no existe.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

// RoleRepository puerto de lectura para Role.
type RoleRepository interface {
	List(ctx context.Context) ([]*entity.Role, error)
	// GetByName devuelve (nil, nil) si no existe.
	GetByName(ctx context.Context, name string) (*entity.Role, error)
}
