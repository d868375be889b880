package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/jhoicas/masterdata-api/docs"
)

func TestReadDoc_JSONValido(t *testing.T) {
	var openapi struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &openapi))

	assert.Equal(t, "Master Data API", openapi.Info.Title)
	for _, p := range []string{"/api/auth/login", "/api/countries/{id}", "/api/id-types", "/api/id-numbers/{number}"} {
		assert.Contains(t, openapi.Paths, p)
	}
}

func TestRegistro(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)
	assert.Contains(t, doc, "/api/persons")
}
