package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation on the named constraint. An empty name matches any constraint.
func IsUniqueViolation(err error, constraint string) bool {
	return isConstraintViolation(err, pgerrcode.UniqueViolation, constraint)
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key
// violation on the named constraint. An empty name matches any constraint.
func IsForeignKeyViolation(err error, constraint string) bool {
	return isConstraintViolation(err, pgerrcode.ForeignKeyViolation, constraint)
}

func isConstraintViolation(err error, code, constraint string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != code {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
