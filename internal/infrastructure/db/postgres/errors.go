package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgClassDataException      = "22"
	pgClassIntegrityViolation = "23"
)

// IsPgConstraintViolation reports whether the server rejected the values of a
// statement: a data exception (value too long, bad date) or an integrity
// constraint violation (not null, check, foreign key, unique).
func IsPgConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || len(pgErr.Code) < 2 {
		return false
	}
	switch pgErr.Code[:2] {
	case pgClassDataException, pgClassIntegrityViolation:
		return true
	}
	return false
}
