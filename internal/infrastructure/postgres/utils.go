package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation detecta el SQLSTATE 23505 (unique_violation) para que los
// repositorios lo traduzcan a domain.ErrDuplicate. El fallback por texto cubre
// errores ya envueltos que perdieron el *pgconn.PgError.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}
