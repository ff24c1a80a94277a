package productrepo

import (
	"context"
	"errors"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/product"
	"depot/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMovementRepository implements ports.MovementRepository using GORM.
type GormMovementRepository struct {
	db *gorm.DB
}

func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Add inserts the movements in a single statement.
func (r *GormMovementRepository) Add(ctx context.Context, movements ...product.Movement) error {
	if len(movements) == 0 {
		return nil
	}

	dtos := make([]MovementDTO, 0, len(movements))
	for _, m := range movements {
		dtos = append(dtos, movementFromDomain(m))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

func (r *GormMovementRepository) Get(ctx context.Context, id kernel.UUID) (product.Movement, error) {
	if err := id.Validate(); err != nil {
		return product.Movement{}, err
	}

	var dto MovementDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Value()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return product.Movement{}, errs.NewObjectNotFoundError("movement", id.String())
		}
		return product.Movement{}, err
	}
	return movementToDomain(dto)
}

func (r *GormMovementRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&MovementDTO{}, "id = ?", id.Value())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("movement", id.String())
	}
	return nil
}
