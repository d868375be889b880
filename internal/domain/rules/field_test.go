package rules_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/masterdata-api/internal/domain"
	"github.com/jhoicas/masterdata-api/internal/domain/rules"
)

type item struct {
	Code string
	Note *string
}

func codeField() rules.Field[item] {
	return rules.Field[item]{
		Name: "code", Kind: rules.Code, Required: true, Min: 2, Max: 2,
		Pattern: regexp.MustCompile(`^[A-Z]{2}$`), PatternMessage: "solo letras",
		Str: func(i *item) *string { return &i.Code },
	}
}

func noteField() rules.Field[item] {
	return rules.Field[item]{
		Name: "note", Kind: rules.Text, Max: 5,
		Opt: func(i *item) **string { return &i.Note },
	}
}

func requireValidation(t *testing.T, err error, field string) *domain.ValidationError {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "se esperaba ValidationError, fue %v", err)
	assert.Equal(t, field, ve.Field)
	return ve
}

// ──────────────────────────────────────────────────────────────
// Field.Check
// ──────────────────────────────────────────────────────────────

func TestFieldCheck_Obligatorio(t *testing.T) {
	f := codeField()
	requireValidation(t, f.Check(nil, rules.Create, true), "code")
	requireValidation(t, f.Check(nil, rules.Update, true), "code")
	assert.NoError(t, f.Check(nil, rules.Update, false))
}

func TestFieldCheck_Longitud(t *testing.T) {
	f := codeField()
	ve := requireValidation(t, f.Check(ptr("USA"), rules.Create, true), "code")
	assert.Contains(t, ve.Message, "exactamente 2")

	n := noteField()
	assert.NoError(t, n.Check(ptr("ñandú"), rules.Create, true), "cuenta runas, no bytes")
	requireValidation(t, n.Check(ptr("abcdef"), rules.Create, true), "note")
}

func TestFieldCheck_Patron(t *testing.T) {
	f := codeField()
	ve := requireValidation(t, f.Check(ptr("Z1"), rules.Create, true), "code")
	assert.Equal(t, "solo letras", ve.Message)
	assert.NoError(t, f.Check(ptr("ZA"), rules.Create, true))
}

func TestFieldCheck_Formato(t *testing.T) {
	f := noteField()
	f.Format = func(s string) bool { return s != "bad" }
	requireValidation(t, f.Check(ptr("bad"), rules.Create, true), "note")
}

func TestFieldGetSet(t *testing.T) {
	var it item
	code, note := codeField(), noteField()

	assert.Nil(t, code.Get(&it))
	code.Set(&it, ptr("ZA"))
	assert.Equal(t, "ZA", it.Code)
	assert.Equal(t, "ZA", *code.Get(&it))

	note.Set(&it, ptr("hola"))
	require.NotNil(t, it.Note)
	note.Set(&it, nil)
	assert.Nil(t, it.Note)
}

// ──────────────────────────────────────────────────────────────
// Validator
// ──────────────────────────────────────────────────────────────

func TestValidator_CruzadasSeDetienenEnLaPrimera(t *testing.T) {
	secondCalled := false
	v := &rules.Validator[item]{
		Fields: []rules.Field[item]{codeField(), noteField()},
		Cross: []rules.CrossCheck[item]{
			func(_ context.Context, i *item) error {
				if i.Note == nil {
					return domain.NewValidation("note", "es obligatorio con este código")
				}
				return nil
			},
			func(context.Context, *item) error {
				secondCalled = true
				return nil
			},
		},
	}

	err := v.ValidateCross(context.Background(), &item{Code: "ZA"})
	requireValidation(t, err, "note")
	assert.False(t, secondCalled, "se detiene en la primera regla")

	require.NoError(t, v.ValidateCross(context.Background(), &item{Code: "ZA", Note: ptr("ok")}))
	assert.True(t, secondCalled)

	_, ok := v.Field("note")
	assert.True(t, ok)
	_, ok = v.Field("nope")
	assert.False(t, ok)
}

func TestMode_Operation(t *testing.T) {
	assert.Equal(t, domain.OperationCreate, rules.Create.Operation())
	assert.Equal(t, domain.OperationUpdate, rules.Update.Operation())
}
