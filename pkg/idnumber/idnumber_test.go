package idnumber_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/masterdata-api/pkg/idnumber"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vectores de prueba (dígito de control calculado con el algoritmo Luhn)
// ──────────────────────────────────────────────────────────────────────────────

const (
	validMale        = "8001015009087" // 1980-01-01, dígito de sexo 5, ciudadano
	validFemale      = "8001010009082" // 1980-01-01, dígito de sexo 0
	validNonCitizen  = "8001015009186" // dígito de ciudadanía 1
	prefix15         = "1501015009083"
	prefix16         = "1601015009081"
	leapDay2000      = "0002295009084"
	invalidLeapDay01 = "0102295009082" // control correcto, 29/02/2001 no existe
)

func TestIsValid_NumeroConocido(t *testing.T) {
	assert.True(t, idnumber.IsValid(validMale))
	assert.True(t, idnumber.IsMale(validMale))
	assert.False(t, idnumber.IsFemale(validMale))
	assert.True(t, idnumber.IsCitizen(validMale))

	dob, ok := idnumber.DateOfBirth(validMale)
	require.True(t, ok)
	assert.Equal(t, time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC), dob)
}

func TestSexo_DigitoCeroEsFemenino(t *testing.T) {
	require.True(t, idnumber.IsValid(validFemale))
	assert.True(t, idnumber.IsFemale(validFemale))
	assert.False(t, idnumber.IsMale(validFemale))
	assert.Equal(t, idnumber.SexFemale, idnumber.SexOf(validFemale))
}

func TestIsCitizen_DigitoDistintoDeCero(t *testing.T) {
	require.True(t, idnumber.IsValid(validNonCitizen))
	assert.False(t, idnumber.IsCitizen(validNonCitizen))
}

func TestIsValid_RechazaEntradaMalformada(t *testing.T) {
	cases := map[string]string{
		"vacío":              "",
		"corto":              "800101500908",
		"largo":              "80010150090870",
		"no numérico":        "80010150090A7",
		"con espacios":       " 8001015009087",
		"control incorrecto": "8001015009088",
		"mes 13":             "8013015009083",
		"fecha inexistente":  invalidLeapDay01,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			assert.False(t, idnumber.IsValid(in))
			_, ok := idnumber.DateOfBirth(in)
			assert.False(t, ok, "la fecha debe estar ausente, no producir panic")
		})
	}
}

// Un número inválido no es ni femenino ni masculino: ambas funciones devuelven false.
func TestSexo_NumeroInvalidoNoEsNinguno(t *testing.T) {
	bad := "8001015009088"
	assert.False(t, idnumber.IsFemale(bad))
	assert.False(t, idnumber.IsMale(bad))
	assert.False(t, idnumber.IsCitizen(bad))
	assert.Equal(t, idnumber.SexUnknown, idnumber.SexOf(bad))
	assert.Equal(t, "unknown", idnumber.SexOf(bad).String())
}

func TestDateOfBirth_UmbralDeSiglo(t *testing.T) {
	dob, ok := idnumber.DateOfBirth(prefix15)
	require.True(t, ok)
	assert.Equal(t, 2015, dob.Year())

	dob, ok = idnumber.DateOfBirth(prefix16)
	require.True(t, ok)
	assert.Equal(t, 1916, dob.Year())
}

func TestDateOfBirth_AnioBisiesto(t *testing.T) {
	dob, ok := idnumber.DateOfBirth(leapDay2000)
	require.True(t, ok)
	assert.Equal(t, time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC), dob)
}

func TestCheckDigit_CompletaNumerosValidos(t *testing.T) {
	for _, full := range []string{validMale, validFemale, validNonCitizen, prefix15, prefix16, leapDay2000} {
		d, ok := idnumber.CheckDigit(full[:12])
		require.True(t, ok)
		assert.Equal(t, full[12], d, full)
	}
	_, ok := idnumber.CheckDigit("12345")
	assert.False(t, ok)
	_, ok = idnumber.CheckDigit("80010150090X")
	assert.False(t, ok)
}
