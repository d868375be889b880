// Package cache envuelve los repositorios de datos maestros de baja rotación con una caché
// en memoria (go-cache) para las lecturas por ID, que es como se resuelven las referencias.
package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/masterdata-api/internal/domain/repository"
)

// Store decora un repository.Store[T] cacheando GetByID. Update y Delete invalidan la
// entrada; Create no la toca (el ID es nuevo). List y ExistsByField van siempre a la BD.
// Se guardan copias por valor: mutar lo devuelto no altera la caché.
type Store[T any] struct {
	next   repository.Store[T]
	entity string
	cache  *gocache.Cache
}

var _ repository.Store[struct{}] = (*Store[struct{}])(nil)

// NewStore construye el decorador. ttl <= 0 usa 10 minutos.
func NewStore[T any](entity string, next repository.Store[T], ttl time.Duration) *Store[T] {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Store[T]{next: next, entity: entity, cache: gocache.New(ttl, 2*ttl)}
}

func (s *Store[T]) key(id int64) string {
	return fmt.Sprintf("%s:%d", s.entity, id)
}

func (s *Store[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	if x, found := s.cache.Get(s.key(id)); found {
		e := x.(T)
		return &e, nil
	}
	e, err := s.next.GetByID(ctx, id)
	if err != nil || e == nil {
		return e, err
	}
	s.cache.Set(s.key(id), *e, gocache.DefaultExpiration)
	return e, nil
}

func (s *Store[T]) List(ctx context.Context) ([]*T, error) {
	return s.next.List(ctx)
}

func (s *Store[T]) ExistsByField(ctx context.Context, field, value string, excludeID int64) (bool, error) {
	return s.next.ExistsByField(ctx, field, value, excludeID)
}

func (s *Store[T]) Create(ctx context.Context, e *T) error {
	return s.next.Create(ctx, e)
}

func (s *Store[T]) Update(ctx context.Context, e *T) error {
	err := s.next.Update(ctx, e)
	if id, ok := any(e).(interface{ Identity() int64 }); ok {
		s.cache.Delete(s.key(id.Identity()))
	}
	return err
}

func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	err := s.next.Delete(ctx, id)
	s.cache.Delete(s.key(id))
	return err
}
