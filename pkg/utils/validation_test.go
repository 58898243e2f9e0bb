package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Usuario  string `json:"usuario" validate:"required,min=4"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Confirm  string `json:"confirmPassword" validate:"omitempty,eqfield=Password"`
	Internal string `json:"-" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	err := ValidateStruct(signup{Usuario: "abc", Email: "x", Password: "12345678", Confirm: "1234", Internal: "ok"})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"usuario":         "debe tener al menos 4 caracteres",
		"email":           "debe ser un email válido",
		"confirmPassword": "las contraseñas no coinciden",
	}, verr.Fields)
	assert.Equal(t, "datos inválidos: confirmPassword: las contraseñas no coinciden; email: debe ser un email válido; usuario: debe tener al menos 4 caracteres", verr.Error())
}

func TestValidateStructAccepts(t *testing.T) {
	assert.NoError(t, ValidateStruct(signup{Usuario: "admin", Email: "a@b.pe", Password: "12345678", Internal: "ok"}))
}

func TestValidationErrorKeepsFirstMessage(t *testing.T) {
	var verr ValidationError
	assert.NoError(t, verr.Err())

	verr.Add("nombre", "es obligatorio")
	verr.Add("nombre", "otro")
	assert.Equal(t, "es obligatorio", verr.Fields["nombre"])
	assert.Error(t, verr.Err())
}

func TestCheckStructRejectsNonStruct(t *testing.T) {
	var verr ValidationError
	assert.Error(t, CheckStruct(42, &verr))
	assert.True(t, verr.Empty())
}
