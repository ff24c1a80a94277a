// Package pgerr classifies errors returned by PostgreSQL.
package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// UniqueViolation reports whether err is a unique constraint violation and,
// when the driver error is still available, the name of the constraint.
// With gorm's TranslateError enabled only gorm.ErrDuplicatedKey survives and
// the constraint name is empty.
func UniqueViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return pgErr.ConstraintName, true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}
	return "", false
}
