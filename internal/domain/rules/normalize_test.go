package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/masterdata-api/internal/domain/rules"
)

func ptr(s string) *string { return &s }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		kind rules.Kind
		in   *string
		want *string
	}{
		{"nil", rules.Text, nil, nil},
		{"solo espacios", rules.Code, ptr("   "), nil},
		{"texto recortado", rules.Text, ptr("  South Africa "), ptr("South Africa")},
		{"código en mayúsculas", rules.Code, ptr(" za "), ptr("ZA")},
		{"email en minúsculas", rules.Email, ptr(" Ana@Example.COM"), ptr("ana@example.com")},
		// "e" + acento combinante → "é" precompuesta
		{"NFC", rules.Text, ptr("Jose\u0301"), ptr("Jos\u00e9")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.Normalize(tt.kind, tt.in))
		})
	}
}

func TestNormalize_Idempotente(t *testing.T) {
	inputs := []string{" za ", "Ana@Example.COM ", "Jose\u0301 ", "  ", "\u00c5LAND"}
	for _, kind := range []rules.Kind{rules.Text, rules.Code, rules.Email} {
		for _, in := range inputs {
			once := rules.Normalize(kind, ptr(in))
			twice := rules.Normalize(kind, once)
			assert.Equal(t, once, twice, "kind=%d in=%q", kind, in)
		}
	}
}

func TestNormalizeString(t *testing.T) {
	assert.Equal(t, "GB", rules.NormalizeString(rules.Code, " gb"))
	assert.Equal(t, "", rules.NormalizeString(rules.Text, " \t"))
}
