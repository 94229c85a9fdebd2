package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errScanner struct{ err error }

func (s errScanner) Scan(...any) error { return s.err }

func TestScan_IDNoUUIDEsNoEncontrado(t *testing.T) {
	badUUID := fmt.Errorf("get: %w", &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`})

	doc, err := scanDocument(errScanner{badUUID})
	require.NoError(t, err)
	assert.Nil(t, doc)

	user, err := scanUser(errScanner{badUUID})
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestScan_SinFilas(t *testing.T) {
	doc, err := scanDocument(errScanner{pgx.ErrNoRows})
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestScan_OtrosErroresSePropagan(t *testing.T) {
	boom := errors.New("conexión cerrada")
	_, err := scanDocument(errScanner{boom})
	assert.ErrorIs(t, err, boom)

	_, err = scanUser(errScanner{&pgconn.PgError{Code: "42P01"}})
	assert.Error(t, err)
}

func TestIsInvalidText(t *testing.T) {
	assert.True(t, isInvalidText(fmt.Errorf("get: %w", &pgconn.PgError{Code: "22P02"})))
	assert.False(t, isInvalidText(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isInvalidText(assert.AnError))
}
