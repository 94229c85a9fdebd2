package postgres

import (
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_Embebidas(t *testing.T) {
	m := NewMigrator(nil)
	migs, err := LoadMigrations(m.files)
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, 1, migs[0].Version)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS documents")
	assert.Contains(t, migs[0].SQL, "users_cpf_key")
}

func TestLoadMigrations_OrdenYFiltrado(t *testing.T) {
	files := fstest.MapFS{
		"010_indices.sql": {Data: []byte("SELECT 10")},
		"002_extra.sql":   {Data: []byte("SELECT 2")},
		"README.md":       {Data: []byte("no")},
		"sin_prefijo.sql": {Data: []byte("no")},
		"001_init.sql":    {Data: []byte("SELECT 1")},
		"sub/003_x.sql":   {Data: []byte("no")},
	}
	migs, err := LoadMigrations(files)
	require.NoError(t, err)
	require.Len(t, migs, 3)
	assert.Equal(t, []int{1, 2, 10}, []int{migs[0].Version, migs[1].Version, migs[2].Version})
	assert.Equal(t, "SELECT 10", migs[2].SQL)
}

func TestLoadMigrations_VersionDuplicada(t *testing.T) {
	files := fstest.MapFS{
		"001_a.sql": {Data: []byte("SELECT 1")},
		"01_b.sql":  {Data: []byte("SELECT 1")},
	}
	_, err := LoadMigrations(files)
	assert.Error(t, err)
}

func TestIsUniqueViolation(t *testing.T) {
	_, ok := isUniqueViolation(assert.AnError)
	assert.False(t, ok)

	wrapped := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_cpf_key"})
	constraint, ok := isUniqueViolation(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "users_cpf_key", constraint)

	_, ok = isUniqueViolation(&pgconn.PgError{Code: "23503"})
	assert.False(t, ok)
}
