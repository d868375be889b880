package usecase_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/masterdata-api/internal/application/usecase"
	"github.com/jhoicas/masterdata-api/internal/domain/entity"
	"github.com/jhoicas/masterdata-api/internal/domain/repository"
)

var testNow = time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)

var testOptions = usecase.Options{Now: func() time.Time { return testNow }}

type identifiable interface{ Identity() int64 }

// memStore repository.Store[T] en memoria; devuelve copias.
type memStore[T any] struct {
	mu     sync.Mutex
	rows   map[int64]T
	nextID int64
	field  func(*T, string) string
	setID  func(*T, int64)
}

func newMemStore[T any](field func(*T, string) string, setID func(*T, int64)) *memStore[T] {
	return &memStore[T]{rows: map[int64]T{}, nextID: 1, field: field, setID: setID}
}

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
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setID(e, s.nextID)
	s.rows[s.nextID] = *e
	s.nextID++
	return nil
}

func (s *memStore[T]) Update(_ context.Context, e *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[any(e).(identifiable).Identity()] = *e
	return nil
}

func (s *memStore[T]) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

func newCountryStore() *memStore[entity.Country] {
	return newMemStore(func(c *entity.Country, f string) string {
		switch f {
		case "code":
			return c.Code
		case "name":
			return c.Name
		}
		return ""
	}, func(c *entity.Country, id int64) { c.ID = id })
}

func newGenderStore() *memStore[entity.Gender] {
	return newMemStore(func(g *entity.Gender, f string) string {
		switch f {
		case "code":
			return g.Code
		case "description":
			return g.Description
		}
		return ""
	}, func(g *entity.Gender, id int64) { g.ID = id })
}

func newTitleStore() *memStore[entity.Title] {
	return newMemStore(func(t *entity.Title, f string) string {
		switch f {
		case "code":
			return t.Code
		case "description":
			return t.Description
		}
		return ""
	}, func(t *entity.Title, id int64) { t.ID = id })
}

func newIdTypeStore() *memStore[entity.IdType] {
	return newMemStore(func(t *entity.IdType, f string) string {
		switch f {
		case "code":
			return t.Code
		case "description":
			return t.Description
		}
		return ""
	}, func(t *entity.IdType, id int64) { t.ID = id })
}

func newPersonStore() *memStore[entity.Person] {
	return newMemStore(func(p *entity.Person, f string) string {
		if f == "email" {
			return p.Email
		}
		return ""
	}, func(p *entity.Person, id int64) { p.ID = id })
}

type memUserRepo struct {
	*memStore[entity.User]
}

func newUserRepo() *memUserRepo {
	return &memUserRepo{newMemStore(func(u *entity.User, f string) string {
		if f == "username" {
			return u.Username
		}
		return ""
	}, func(u *entity.User, id int64) { u.ID = id })}
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	list, _ := r.List(ctx)
	for _, u := range list {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

type fixedRoles []string

func (r fixedRoles) List(context.Context) ([]*entity.Role, error) {
	out := make([]*entity.Role, 0, len(r))
	for i, name := range r {
		out = append(out, &entity.Role{ID: int64(i + 1), Name: name})
	}
	return out, nil
}

func (r fixedRoles) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	list, _ := r.List(ctx)
	for _, role := range list {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, nil
}

// plainHasher "hash" reversible para tests.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (plainHasher) Verify(plain, hash string) bool {
	return strings.TrimPrefix(hash, "hashed:") == plain && strings.HasPrefix(hash, "hashed:")
}

var (
	_ repository.CountryRepository = (*memStore[entity.Country])(nil)
	_ repository.UserRepository    = (*memUserRepo)(nil)
	_ repository.RoleRepository    = fixedRoles(nil)
)

func str(s string) *string { return &s }

func ref(n int64) *int64 { return &n }
