package repository

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// isConstraintViolation reports whether err is a PostgreSQL error with the given
// SQLSTATE code raised by constraint. An empty constraint matches any.
func isConstraintViolation(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != code {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// Clock returns the current time for audit stamping.
type Clock func() time.Time

func utcNow() time.Time {
	// Postgres stores microseconds; truncating keeps stamped and reloaded values equal.
	return time.Now().UTC().Truncate(time.Microsecond)
}
