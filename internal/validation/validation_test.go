package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(signupPayload{Name: "Ana", Email: "a@x.com", Password: "p1"}))
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(signupPayload{Email: "not-an-email"})

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("name", "required"))
	assert.True(t, verr.Has("email", "email"))
	assert.True(t, verr.Has("password", "required"))
	assert.Equal(t, "validation failed: email: email, name: required, password: required", verr.Error())
}
