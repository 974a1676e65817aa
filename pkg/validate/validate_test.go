package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tallerpro/taller-api/pkg/validate"
)

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

func TestStruct_Valido(t *testing.T) {
	assert.NoError(t, validate.Struct(&loginForm{
		Email:    "taller@example.com",
		Password: "super-secreta",
	}))
}

func TestStruct_CamposInvalidos(t *testing.T) {
	err := validate.Struct(&loginForm{Email: "no-es-email", Password: "corta"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Email (email)")
	assert.Contains(t, err.Error(), "Password (min)")
}

func TestStruct_Oneof(t *testing.T) {
	type form struct {
		Role string `validate:"required,oneof=admin mecanico recepcion"`
	}
	assert.NoError(t, validate.Struct(&form{Role: "mecanico"}))
	assert.Error(t, validate.Struct(&form{Role: "gerente"}))
}
