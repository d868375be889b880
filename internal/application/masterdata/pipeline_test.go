package masterdata_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/masterdata-api/internal/application/masterdata"
	"github.com/jhoicas/masterdata-api/internal/domain"
	"github.com/jhoicas/masterdata-api/internal/domain/entity"
	"github.com/jhoicas/masterdata-api/internal/domain/repository"
	"github.com/jhoicas/masterdata-api/internal/domain/rules"
)

func str(s string) *string { return &s }

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func countryRules() *rules.Validator[entity.Country] {
	return &rules.Validator[entity.Country]{Fields: []rules.Field[entity.Country]{
		{Name: "code", Kind: rules.Code, Required: true, Min: 2, Max: 2, Unique: true,
			Pattern: regexp.MustCompile(`^[A-Z]{2}$`),
			Str:     func(c *entity.Country) *string { return &c.Code }},
		{Name: "name", Kind: rules.Text, Required: true, Max: 100, Unique: true,
			Str: func(c *entity.Country) *string { return &c.Name }},
		{Name: "year", Kind: rules.Text, Max: 10,
			Opt: func(c *entity.Country) **string { return &c.Year }},
	}}
}

type observation struct {
	entity, operation string
	err               error
}

type recordingObserver struct{ seen []observation }

func (o *recordingObserver) Observe(entity, operation string, err error) {
	o.seen = append(o.seen, observation{entity, operation, err})
}

func newCountryPipeline(t *testing.T) (*masterdata.Pipeline[entity.Country, *entity.Country], *memStore[entity.Country], *recordingObserver) {
	t.Helper()
	store := newMemStore(
		func(c *entity.Country, field string) string {
			switch field {
			case "code":
				return c.Code
			case "name":
				return c.Name
			}
			return ""
		},
		func(c *entity.Country, id int64) { c.ID = id },
	)
	obs := &recordingObserver{}
	p := masterdata.New[entity.Country, *entity.Country](masterdata.Config[entity.Country]{
		Entity:    entity.CountryEntity,
		Store:     store,
		Validator: countryRules(),
		Observer:  obs,
		Now:       func() time.Time { return fixedNow },
	})
	return p, store, obs
}

func fields(kv ...string) masterdata.Input {
	in := masterdata.Input{Fields: map[string]*string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		in.Fields[kv[i]] = str(kv[i+1])
	}
	return in
}

func asDuplicate(t *testing.T, err error) *domain.DuplicateError {
	t.Helper()
	var de *domain.DuplicateError
	require.True(t, errors.As(err, &de), "se esperaba DuplicateError, fue %v", err)
	return de
}

func asValidation(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "se esperaba ValidationError, fue %v", err)
	return ve
}

// ──────────────────────────────────────────────────────────────
// Escenario completo Country
// ──────────────────────────────────────────────────────────────

func TestPipeline_EscenarioCountry(t *testing.T) {
	p, _, obs := newCountryPipeline(t)
	ctx := context.Background()

	us, err := p.Create(ctx, "admin", fields("code", " us ", "name", "United States"))
	require.NoError(t, err)
	assert.Equal(t, "US", us.Code)
	assert.NotZero(t, us.ID)
	assert.Equal(t, "admin", us.CreatedBy)
	assert.Equal(t, fixedNow, us.CreatedAt)
	assert.Nil(t, us.UpdatedBy)

	_, err = p.Create(ctx, "admin", fields("code", "US", "name", "Another"))
	de := asDuplicate(t, err)
	assert.Equal(t, "country", de.Entity)
	assert.Equal(t, "code", de.Field)
	assert.Equal(t, "US", de.Value)
	assert.Equal(t, domain.OperationCreate, de.Operation)

	gb, err := p.Create(ctx, "admin", fields("code", "GB", "name", "United Kingdom"))
	require.NoError(t, err)

	_, err = p.Update(ctx, "editor", gb.ID, fields("code", "US"))
	de = asDuplicate(t, err)
	assert.Equal(t, domain.OperationUpdate, de.Operation)

	err = p.Delete(ctx, 99999)
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, int64(99999), nf.ID)

	require.Len(t, obs.seen, 5)
	assert.Equal(t, "delete", obs.seen[4].operation)
	assert.Error(t, obs.seen[4].err)
	assert.NoError(t, obs.seen[0].err)
}

// ──────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────

func TestCreate_RechazaID(t *testing.T) {
	p, _, _ := newCountryPipeline(t)
	in := fields("code", "ZA", "name", "South Africa")
	id := int64(7)
	in.ID = &id

	_, err := p.Create(context.Background(), "admin", in)
	assert.Equal(t, "id", asValidation(t, err).Field)
}

func TestCreate_SinActor(t *testing.T) {
	p, _, _ := newCountryPipeline(t)
	_, err := p.Create(context.Background(), "", fields("code", "ZA", "name", "South Africa"))
	assert.ErrorIs(t, err, masterdata.ErrMissingActor)
}

func TestCreate_CampoDesconocido(t *testing.T) {
	p, _, _ := newCountryPipeline(t)
	_, err := p.Create(context.Background(), "admin", fields("code", "ZA", "name", "South Africa", "flag", "x"))
	assert.Equal(t, "flag", asValidation(t, err).Field)
}

func TestCreate_PrimeraRegla(t *testing.T) {
	p, _, _ := newCountryPipeline(t)
	// code y name son inválidos; se informa solo el primero de la tabla.
	_, err := p.Create(context.Background(), "admin", fields("code", "ZAF"))
	assert.Equal(t, "code", asValidation(t, err).Field)

	_, err = p.Create(context.Background(), "admin", fields("code", "ZA", "name", "  "))
	assert.Equal(t, "name", asValidation(t, err).Field)
}

func TestCreate_ConstraintTardioEsDuplicado(t *testing.T) {
	p, store, _ := newCountryPipeline(t)
	store.createErr = &repository.ConstraintError{
		Kind: repository.ConstraintUnique, Constraint: "countries_code_key", Field: "code",
		Err: errors.New("duplicate key value"),
	}

	_, err := p.Create(context.Background(), "admin", fields("code", "za", "name", "South Africa"))
	de := asDuplicate(t, err)
	assert.Equal(t, "code", de.Field)
	assert.Equal(t, "ZA", de.Value)
	assert.Equal(t, domain.OperationCreate, de.Operation)
}

func TestCreate_ErrorInesperado(t *testing.T) {
	p, store, _ := newCountryPipeline(t)
	boom := errors.New("conexión perdida")
	store.createErr = boom

	_, err := p.Create(context.Background(), "admin", fields("code", "ZA", "name", "South Africa"))
	assert.ErrorIs(t, err, boom)
	_, isDomain := domain.AsError(err)
	assert.False(t, isDomain)
}

func TestCreate_HookPuedeFallar(t *testing.T) {
	p, _, _ := newCountryPipeline(t)
	hook := func(_ context.Context, c *entity.Country, mode rules.Mode) error {
		assert.Equal(t, "ZA", c.Code, "el hook ve los valores normalizados")
		assert.Equal(t, rules.Create, mode)
		return domain.NewNotFound("region", 3)
	}
	_, err := p.Create(context.Background(), "admin", fields("code", "za", "name", "South Africa"), hook)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────

func TestUpdate_ConservarPropioValorNoEsDuplicado(t *testing.T) {
	p, _, _ := newCountryPipeline(t)
	ctx := context.Background()
	za, err := p.Create(ctx, "admin", fields("code", "ZA", "name", "South Africa"))
	require.NoError(t, err)

	updated, err := p.Update(ctx, "editor", za.ID, fields("code", "za", "name", "South Africa"))
	require.NoError(t, err)
	assert.Equal(t, "ZA", updated.Code)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, "editor", *updated.UpdatedBy)
	assert.Equal(t, "admin", updated.CreatedBy)
}

func TestUpdate_ParcialNoPisaCamposNoEnviados(t *testing.T) {
	p, _, _ := newCountryPipeline(t)
	ctx := context.Background()
	za, err := p.Create(ctx, "admin", fields("code", "ZA", "name", "South Africa", "year", "1974"))
	require.NoError(t, err)

	in := fields("name", "Republic of South Africa")
	in.Fields["code"] = nil
	_, err = p.Update(ctx, "editor", za.ID, in)
	require.NoError(t, err)

	got, err := p.Get(ctx, za.ID)
	require.NoError(t, err)
	assert.Equal(t, "ZA", got.Code)
	assert.Equal(t, "Republic of South Africa", got.Name)
	require.NotNil(t, got.Year)
	assert.Equal(t, "1974", *got.Year)
}

func TestUpdate_VacioLimpiaOpcionalYFallaEnObligatorio(t *testing.T) {
	p, _, _ := newCountryPipeline(t)
	ctx := context.Background()
	za, err := p.Create(ctx, "admin", fields("code", "ZA", "name", "South Africa", "year", "1974"))
	require.NoError(t, err)

	updated, err := p.Update(ctx, "editor", za.ID, fields("year", " "))
	require.NoError(t, err)
	assert.Nil(t, updated.Year)

	_, err = p.Update(ctx, "editor", za.ID, fields("name", ""))
	assert.Equal(t, "name", asValidation(t, err).Field)
}

func TestUpdate_Inexistente(t *testing.T) {
	p, _, _ := newCountryPipeline(t)
	_, err := p.Update(context.Background(), "editor", 42, fields("name", "X"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_IDDistinto(t *testing.T) {
	p, _, _ := newCountryPipeline(t)
	ctx := context.Background()
	za, err := p.Create(ctx, "admin", fields("code", "ZA", "name", "South Africa"))
	require.NoError(t, err)

	in := fields("name", "X")
	other := za.ID + 1
	in.ID = &other
	_, err = p.Update(ctx, "editor", za.ID, in)
	assert.Equal(t, "id", asValidation(t, err).Field)
}

func TestUpdate_FalloNoAlteraLoGuardado(t *testing.T) {
	p, _, _ := newCountryPipeline(t)
	ctx := context.Background()
	za, err := p.Create(ctx, "admin", fields("code", "ZA", "name", "South Africa"))
	require.NoError(t, err)

	_, err = p.Update(ctx, "editor", za.ID, fields("name", "Azania", "code", "1"))
	require.Error(t, err)

	got, err := p.Get(ctx, za.ID)
	require.NoError(t, err)
	assert.Equal(t, "South Africa", got.Name)
}

// ──────────────────────────────────────────────────────────────
// Delete / List
// ──────────────────────────────────────────────────────────────

func TestDelete_EnUso(t *testing.T) {
	p, store, _ := newCountryPipeline(t)
	ctx := context.Background()
	za, err := p.Create(ctx, "admin", fields("code", "ZA", "name", "South Africa"))
	require.NoError(t, err)

	store.deleteErr = &repository.ConstraintError{Kind: repository.ConstraintForeignKey, Constraint: "persons_country_id_fkey"}
	err = p.Delete(ctx, za.ID)
	assert.Equal(t, "id", asValidation(t, err).Field)
}

func TestEscritura_RegistroEliminadoEntretantoEsNotFound(t *testing.T) {
	p, store, _ := newCountryPipeline(t)
	ctx := context.Background()
	za, err := p.Create(ctx, "admin", fields("code", "ZA", "name", "South Africa"))
	require.NoError(t, err)

	store.updateErr = fmt.Errorf("countries: %w", repository.ErrRowMissing)
	_, err = p.Update(ctx, "editor", za.ID, fields("name", "Suid-Afrika"))
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf), "se esperaba NotFoundError, fue %v", err)
	assert.Equal(t, entity.CountryEntity, nf.Entity)
	assert.Equal(t, za.ID, nf.ID)

	store.deleteErr = fmt.Errorf("countries: %w", repository.ErrRowMissing)
	err = p.Delete(ctx, za.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteYList(t *testing.T) {
	p, _, _ := newCountryPipeline(t)
	ctx := context.Background()
	za, err := p.Create(ctx, "admin", fields("code", "ZA", "name", "South Africa"))
	require.NoError(t, err)
	_, err = p.Create(ctx, "admin", fields("code", "GB", "name", "United Kingdom"))
	require.NoError(t, err)

	require.NoError(t, p.Delete(ctx, za.ID))
	list, err := p.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "GB", list[0].Code)

	_, err = p.Get(ctx, za.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
