package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"
)

// pgCode devuelve el SQLSTATE del error o "" si no viene de PostgreSQL.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isForeignKeyViolation: payments.client_id apunta a un cliente inexistente.
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// isCheckViolation: status fuera de la enumeración.
func isCheckViolation(err error) bool {
	return pgCode(err) == codeCheckViolation
}

// isNumericOutOfRange: amount no cabe en NUMERIC(14, 2).
func isNumericOutOfRange(err error) bool {
	return pgCode(err) == codeNumericOutOfRange
}
