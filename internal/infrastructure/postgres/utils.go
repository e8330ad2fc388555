package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolationCode código SQLSTATE de PostgreSQL para el choque contra un
// índice único.
const uniqueViolationCode = "23505"

// isUniqueViolation detecta la violación del índice único de email, la única
// salvaguarda contra registros duplicados concurrentes.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
