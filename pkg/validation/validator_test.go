package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/masterdata-api/pkg/validation"
)

func TestIsEmail(t *testing.T) {
	assert.True(t, validation.IsEmail("ana@example.com"))
	assert.False(t, validation.IsEmail("ana"))
	assert.False(t, validation.IsEmail(""))
}

type loginLike struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required"`
}

func TestStruct_DevuelveNombreJSON(t *testing.T) {
	fe, err := validation.Struct(loginLike{Username: "ab", Password: "x"})
	require.NoError(t, err)
	require.NotNil(t, fe)
	assert.Equal(t, "username", fe.Field)
	assert.Equal(t, "min", fe.Tag)

	fe, err = validation.Struct(loginLike{Username: "abc", Password: "x"})
	require.NoError(t, err)
	assert.Nil(t, fe)
}
