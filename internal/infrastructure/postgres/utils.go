package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode       = "23505"
	invalidTextRepresentation = "22P02"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
// Devuelve además el nombre del constraint (users_cpf_key, users_crm_key, ...).
func isUniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// isInvalidText detecta un literal que la columna no acepta (22P02), p. ej. un id que no es UUID.
// Para búsquedas por id equivale a "no existe".
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}

// rowScanner común a pgx.Row y pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
