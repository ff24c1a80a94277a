package ports

import (
	"context"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/school"
)

type SchoolRepository interface {
	Add(ctx context.Context, aggregate *school.School) error
	Update(ctx context.Context, aggregate *school.School) error
	Get(ctx context.Context, id kernel.UUID) (*school.School, error)
}
