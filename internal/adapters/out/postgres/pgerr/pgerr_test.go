package pgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"depot/internal/adapters/out/postgres/pgerr"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestUniqueViolation(t *testing.T) {
	tests := map[string]struct {
		err        error
		constraint string
		ok         bool
	}{
		"driver error": {
			err:        fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "orders_number_key"}),
			constraint: "orders_number_key",
			ok:         true,
		},
		"translated error": {
			err: gorm.ErrDuplicatedKey,
			ok:  true,
		},
		"foreign key violation": {
			err: &pgconn.PgError{Code: "23503", ConstraintName: "orders_school_id_fkey"},
		},
		"other error": {
			err: errors.New("connection reset"),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			constraint, ok := pgerr.UniqueViolation(tt.err)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.constraint, constraint)
		})
	}
}
