package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/greennest-api/internal/database/migrations"
)

func TestMigrations_HaveUpAndDownSections(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		body, err := fs.ReadFile(migrations.FS, name)
		require.NoError(t, err)

		assert.Contains(t, string(body), "-- +goose Up", name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}
}

// Only the migration text is checked here; nothing is applied to a database.
func TestMigrations_UsersSQLDeclaresConstraints(t *testing.T) {
	body, err := fs.ReadFile(migrations.FS, "00001_create_users.sql")
	require.NoError(t, err)

	schema := strings.Join(strings.Fields(string(body)), " ")
	assert.Contains(t, schema, "UNIQUE (email)")
	assert.Contains(t, schema, "(otp_code IS NULL) = (otp_expires_at IS NULL)")
	assert.Contains(t, schema, "cart JSONB")
}
