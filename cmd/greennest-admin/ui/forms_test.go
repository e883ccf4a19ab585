package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   NewUser
		wantErr string
	}{
		{"valid", NewUser{Name: " Ana ", Email: " a@x.com ", Password: "pw"}, ""},
		{"missing name", NewUser{Email: "a@x.com", Password: "pw"}, "name, email and password are required"},
		{"blank name", NewUser{Name: "   ", Email: "a@x.com", Password: "pw"}, "name, email and password are required"},
		{"missing password", NewUser{Name: "Ana", Email: "a@x.com"}, "name, email and password are required"},
		{"bad email", NewUser{Name: "Ana", Email: "ana", Password: "pw"}, "invalid email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.input
			err := u.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Ana", u.Name)
				assert.Equal(t, "a@x.com", u.Email)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestRequired(t *testing.T) {
	check := required("email")
	assert.EqualError(t, check("  "), "email is required")
	assert.NoError(t, check("a@x.com"))
}
