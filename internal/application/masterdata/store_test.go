package masterdata_test

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/masterdata-api/internal/domain/repository"
)

type identifiable interface{ Identity() int64 }

// memStore Store[T] en memoria. Guarda copias para que mutar lo devuelto no altere lo guardado.
type memStore[T any] struct {
	mu     sync.Mutex
	rows   map[int64]T
	nextID int64
	field  func(e *T, name string) string
	setID  func(e *T, id int64)

	// errores inyectados
	createErr error
	updateErr error
	deleteErr error
}

func newMemStore[T any](field func(*T, string) string, setID func(*T, int64)) *memStore[T] {
	return &memStore[T]{rows: map[int64]T{}, nextID: 1, field: field, setID: setID}
}

var _ repository.Store[struct{}] = (*memStore[struct{}])(nil)

func (s *memStore[T]) GetByID(_ context.Context, id int64) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *memStore[T]) List(_ context.Context) ([]*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.rows))
	for id := range s.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		e := s.rows[id]
		out = append(out, &e)
	}
	return out, nil
}

func (s *memStore[T]) ExistsByField(_ context.Context, field, value string, excludeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.rows {
		e := e
		if id != excludeID && s.field(&e, field) == value {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore[T]) Create(_ context.Context, e *T) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setID(e, s.nextID)
	s.rows[s.nextID] = *e
	s.nextID++
	return nil
}

func (s *memStore[T]) Update(_ context.Context, e *T) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[any(e).(identifiable).Identity()] = *e
	return nil
}

func (s *memStore[T]) Delete(_ context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}
