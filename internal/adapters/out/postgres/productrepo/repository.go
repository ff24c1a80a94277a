package productrepo

import (
	"context"
	"errors"
	"slices"

	"depot/internal/adapters/out/postgres/pgerr"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/product"
	"depot/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Add inserts a product. A taken SKU is reported as
// *errs.ObjectAlreadyExistsError.
func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := productFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if _, ok := pgerr.UniqueViolation(err); ok {
			return errs.NewObjectAlreadyExistsErrorWithCause("sku", dto.SKU, err)
		}
		return err
	}
	return nil
}

func (r *GormProductRepository) Update(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := productFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ProductDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":      dto.Name,
		"unit":      dto.Unit,
		"min_stock": dto.MinStock,
		"stock":     dto.Stock,
		"active":    dto.Active,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", aggregate.ID().String())
	}
	return nil
}

func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Value()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}
	return productToDomain(dto)
}

// GetForUpdate locks the rows of the given products in id order and returns
// them in that order. Repeated ids are loaded once.
func (r *GormProductRepository) GetForUpdate(ctx context.Context, ids ...kernel.UUID) ([]*product.Product, error) {
	if len(ids) == 0 {
		return []*product.Product{}, nil
	}

	keys := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		keys = append(keys, id.Value())
	}
	slices.SortFunc(keys, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })
	keys = slices.Compact(keys)

	var dtos []ProductDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", keys).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	if len(dtos) != len(keys) {
		found := make(map[uuid.UUID]struct{}, len(dtos))
		for _, dto := range dtos {
			found[dto.ID] = struct{}{}
		}
		for _, key := range keys {
			if _, ok := found[key]; !ok {
				return nil, errs.NewObjectNotFoundError("product", key.String())
			}
		}
	}

	products := make([]*product.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, toDomainErr := productToDomain(dto)
		if toDomainErr != nil {
			return nil, toDomainErr
		}
		products = append(products, p)
	}
	return products, nil
}
