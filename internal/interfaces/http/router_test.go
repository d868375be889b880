package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/masterdata-api/internal/application/dto"
	"github.com/jhoicas/masterdata-api/internal/domain"
	"github.com/jhoicas/masterdata-api/internal/domain/entity"
	apphttp "github.com/jhoicas/masterdata-api/internal/interfaces/http"
	"github.com/jhoicas/masterdata-api/internal/interfaces/httperr"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// countryFake implementa Resource para países con el comportamiento mínimo del caso de uso.
type countryFake struct {
	mu        sync.Mutex
	items     map[int64]dto.CountryResponse
	nextID    int64
	fail      error
	lastActor string
}

func newCountryFake() *countryFake {
	return &countryFake{items: map[int64]dto.CountryResponse{}}
}

func (f *countryFake) Create(_ context.Context, actor string, in dto.CountryRequest) (*dto.CountryResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	if in.Code == nil || *in.Code == "" {
		return nil, domain.NewValidation("code", "es obligatorio")
	}
	for _, c := range f.items {
		if c.Code == *in.Code {
			return nil, domain.NewDuplicate(entity.CountryEntity, "code", *in.Code, domain.OperationCreate)
		}
	}
	f.nextID++
	f.lastActor = actor
	out := dto.CountryResponse{ID: f.nextID, Code: *in.Code, AuditResponse: dto.AuditResponse{CreatedBy: actor}}
	if in.Name != nil {
		out.Name = *in.Name
	}
	f.items[out.ID] = out
	return &out, nil
}

func (f *countryFake) Update(_ context.Context, actor string, id int64, in dto.CountryRequest) (*dto.CountryResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out, ok := f.items[id]
	if !ok {
		return nil, domain.NewNotFound(entity.CountryEntity, id)
	}
	if in.Name != nil {
		out.Name = *in.Name
	}
	f.lastActor = actor
	out.UpdatedBy = &actor
	f.items[id] = out
	return &out, nil
}

func (f *countryFake) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return domain.NewNotFound(entity.CountryEntity, id)
	}
	delete(f.items, id)
	return nil
}

func (f *countryFake) GetByID(_ context.Context, id int64) (*dto.CountryResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out, ok := f.items[id]
	if !ok {
		return nil, domain.NewNotFound(entity.CountryEntity, id)
	}
	return &out, nil
}

func (f *countryFake) List(context.Context) (*dto.ListResponse[dto.CountryResponse], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	list := make([]dto.CountryResponse, 0, len(f.items))
	for _, c := range f.items {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return dto.NewListResponse(list), nil
}

type authFake struct{}

func (authFake) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	switch {
	case in.Username == "admin" && in.Password == "secreto123":
		return &dto.LoginResponse{Token: "tok", User: dto.UserResponse{ID: 1, Username: "admin"}}, nil
	case in.Username == "bloqueado":
		return nil, domain.ErrForbidden
	default:
		return nil, domain.ErrUnauthorized
	}
}

type rolesFake struct{}

func (rolesFake) List(context.Context) (*dto.ListResponse[dto.RoleResponse], error) {
	return dto.NewListResponse([]dto.RoleResponse{{ID: 1, Name: "ADMIN"}, {ID: 2, Name: "USER"}}), nil
}

type observed struct {
	method, route string
	status        int
}

type requestRecorder struct {
	mu   sync.Mutex
	seen []observed
}

func (r *requestRecorder) ObserveRequest(method, route string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, observed{method: method, route: route, status: status})
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type testServer struct {
	app       *fiber.App
	countries *countryFake
	requests  *requestRecorder
	logs      *bytes.Buffer
}

func newTestServer() *testServer {
	s := &testServer{countries: newCountryFake(), requests: &requestRecorder{}, logs: &bytes.Buffer{}}
	log := zerolog.New(s.logs)
	s.app = fiber.New()
	s.app.Use(apphttp.RequestLogger(log, s.requests))
	apphttp.Router(s.app, apphttp.RouterDeps{
		Countries:  s.countries,
		Roles:      rolesFake{},
		AuthUC:     authFake{},
		Translator: httperr.NewTranslator(log),
		JWTSecret:  testJWTSecret,
	})
	return s
}

func (s *testServer) do(t *testing.T, method, path, auth string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeError(t *testing.T, raw []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e), string(raw))
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	s := newTestServer()
	resp, raw := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "tok", out.Token)
}

func TestLogin_CredencialesInvalidasYCuentaDeshabilitada(t *testing.T) {
	s := newTestServer()

	resp, raw := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "otra"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, raw).Code)

	resp, raw = s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "bloqueado", Password: "secreto123"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeError(t, raw).Code)
}

func TestLogin_CuerpoInvalido(t *testing.T) {
	s := newTestServer()
	resp, raw := s.do(t, http.MethodPost, "/api/auth/login", "", "{")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeError(t, raw).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD de países vía API
// ──────────────────────────────────────────────────────────────────────────────

func TestCountries_RequiereToken(t *testing.T) {
	s := newTestServer()
	resp, _ := s.do(t, http.MethodGet, "/api/countries", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCountries_EscrituraSoloAdmin(t *testing.T) {
	s := newTestServer()
	resp, _ := s.do(t, http.MethodPost, "/api/countries", tokenForRoles(t, entity.RoleUser),
		map[string]string{"code": "US", "name": "United States"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/countries", tokenForRoles(t, entity.RoleUser), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "la lectura solo exige sesión")
}

func TestCountries_FlujoCompleto(t *testing.T) {
	s := newTestServer()
	admin := tokenForRoles(t, entity.RoleAdmin)

	resp, raw := s.do(t, http.MethodPost, "/api/countries", admin, map[string]string{"code": "US", "name": "United States"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var created dto.CountryResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "US", created.Code)
	assert.Equal(t, testUsername, s.countries.lastActor, "el actor es el username del token")

	resp, raw = s.do(t, http.MethodPost, "/api/countries", admin, map[string]string{"code": "US", "name": "Otro"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	e := decodeError(t, raw)
	assert.Equal(t, httperr.CodeDuplicate, e.Code)
	assert.Equal(t, "code", e.Field)

	resp, raw = s.do(t, http.MethodPatch, "/api/countries/1", admin, map[string]string{"name": "USA"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	resp, raw = s.do(t, http.MethodPut, "/api/countries/1", admin, map[string]string{"name": "Estados Unidos"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var updated dto.CountryResponse
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "Estados Unidos", updated.Name)
	assert.Equal(t, "US", updated.Code, "PUT no limpia los campos ausentes")

	resp, raw = s.do(t, http.MethodGet, "/api/countries", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ListResponse[dto.CountryResponse]
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Equal(t, 1, list.Total)

	resp, _ = s.do(t, http.MethodDelete, "/api/countries/1", admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw = s.do(t, http.MethodGet, "/api/countries/1", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, httperr.CodeNotFound, decodeError(t, raw).Code)
}

func TestCountries_ErrorDeValidacionIndicaCampo(t *testing.T) {
	s := newTestServer()
	resp, raw := s.do(t, http.MethodPost, "/api/countries", tokenForRoles(t, entity.RoleAdmin), map[string]string{"name": "Sin código"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, raw)
	assert.Equal(t, httperr.CodeValidation, e.Code)
	assert.Equal(t, "code", e.Field)
}

func TestCountries_IDNoNumerico(t *testing.T) {
	s := newTestServer()
	resp, raw := s.do(t, http.MethodGet, "/api/countries/abc", tokenForRoles(t, entity.RoleUser), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "id", decodeError(t, raw).Field)
}

func TestCountries_ErrorInesperadoNoSeExpone(t *testing.T) {
	s := newTestServer()
	s.countries.fail = errors.New("dial tcp 10.1.2.3:5432: connection refused")

	resp, raw := s.do(t, http.MethodGet, "/api/countries", tokenForRoles(t, entity.RoleUser), nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	e := decodeError(t, raw)
	assert.Equal(t, httperr.CodeInternal, e.Code)
	assert.NotContains(t, e.Message, "10.1.2.3")
	assert.Contains(t, s.logs.String(), "10.1.2.3", "el error completo queda en el log")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestIdNumbers_Decodifica(t *testing.T) {
	s := newTestServer()
	resp, raw := s.do(t, http.MethodGet, "/api/id-numbers/8001015009087", tokenForRoles(t, entity.RoleUser), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.IdNumberResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, out.Valid)
	require.NotNil(t, out.DateOfBirth)
	assert.Equal(t, "1980-01-01", *out.DateOfBirth)
	assert.True(t, out.Male)
	assert.True(t, out.Citizen)
}

func TestRoles_Lista(t *testing.T) {
	s := newTestServer()
	resp, raw := s.do(t, http.MethodGet, "/api/roles", tokenForRoles(t, entity.RoleUser), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.ListResponse[dto.RoleResponse]
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, 2, out.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequestLogger
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestLogger_PropagaRequestID(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/countries/42", nil)
	req.Header.Set("Authorization", tokenForRoles(t, entity.RoleUser))
	req.Header.Set(fiber.HeaderXRequestID, "req-abc")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "req-abc", resp.Header.Get(fiber.HeaderXRequestID))
	assert.Contains(t, s.logs.String(), `"request_id":"req-abc"`)

	require.Len(t, s.requests.seen, 1)
	assert.Equal(t, http.MethodGet, s.requests.seen[0].method)
	assert.Equal(t, http.StatusNotFound, s.requests.seen[0].status)
	assert.NotEmpty(t, s.requests.seen[0].route)
}

func TestRequestLogger_GeneraRequestID(t *testing.T) {
	s := newTestServer()
	resp, _ := s.do(t, http.MethodGet, "/api/roles", tokenForRoles(t, entity.RoleUser), nil)
	assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 36)
}
