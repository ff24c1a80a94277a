package schoolrepo

import (
	"context"
	"errors"

	"depot/internal/adapters/out/postgres/pgerr"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/school"
	"depot/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSchoolRepository implements ports.SchoolRepository using GORM.
type GormSchoolRepository struct {
	db *gorm.DB
}

func NewGormSchoolRepository(db *gorm.DB) *GormSchoolRepository {
	return &GormSchoolRepository{db: db}
}

// Add inserts a school. A taken INEP code is reported as
// *errs.ObjectAlreadyExistsError.
func (r *GormSchoolRepository) Add(ctx context.Context, aggregate *school.School) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if _, ok := pgerr.UniqueViolation(err); ok {
			return errs.NewObjectAlreadyExistsErrorWithCause("inep code", aggregate.INEPCode(), err)
		}
		return err
	}
	return nil
}

func (r *GormSchoolRepository) Update(ctx context.Context, aggregate *school.School) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&SchoolDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":      dto.Name,
		"inep_code": dto.INEPCode,
		"kind":      dto.Kind,
		"level":     dto.Level,
		"street":    dto.Street,
		"district":  dto.District,
		"city":      dto.City,
		"state":     dto.State,
		"active":    dto.Active,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("school", aggregate.ID().String())
	}
	return nil
}

func (r *GormSchoolRepository) Get(ctx context.Context, id kernel.UUID) (*school.School, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SchoolDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Value()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("school", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
