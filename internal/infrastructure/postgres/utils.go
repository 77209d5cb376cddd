package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que los repositorios traducen a errores de negocio.
const pgUniqueViolation = "23505"

// isUniqueViolation indica si el error es una violación de constraint único.
// Respalda, entre otros, el índice parcial de una-venta-por-orden y los
// nombres únicos del catálogo.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
