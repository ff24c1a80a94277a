// Package productrepo persists products and their stock ledger.
package productrepo

import (
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO is a row of the products table.
type ProductDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU       string    `gorm:"column:sku;type:varchar(50);not null"`
	Name      string    `gorm:"not null"`
	Unit      string    `gorm:"type:varchar(5);not null"`
	MinStock  int       `gorm:"not null"`
	Stock     int       `gorm:"not null"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProductDTO) TableName() string {
	return "products"
}

// MovementDTO is a row of the stock_movements table.
type MovementDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null"`
	Kind       string    `gorm:"type:varchar(3);not null"`
	Quantity   int       `gorm:"not null"`
	Reason     string    `gorm:"type:varchar(20);not null"`
	Note       string    `gorm:"not null"`
	Actor      string    `gorm:"not null"`
	OccurredAt time.Time `gorm:"not null"`
}

func (MovementDTO) TableName() string {
	return "stock_movements"
}

func productFromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:       aggregate.ID().Value(),
		SKU:      aggregate.SKU(),
		Name:     aggregate.Name(),
		Unit:     aggregate.Unit().String(),
		MinStock: aggregate.MinStock(),
		Stock:    aggregate.Stock(),
		Active:   aggregate.IsActive(),
	}
}

func productToDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	unit, err := product.ParseUnit(dto.Unit)
	if err != nil {
		return nil, err
	}
	return product.RestoreProduct(id, dto.SKU, dto.Name, unit, dto.MinStock, dto.Stock, dto.Active)
}

func movementFromDomain(m product.Movement) MovementDTO {
	return MovementDTO{
		ID:         m.ID().Value(),
		ProductID:  m.ProductID().Value(),
		Kind:       string(m.Kind()),
		Quantity:   m.Quantity(),
		Reason:     string(m.Reason()),
		Note:       m.Note(),
		Actor:      m.Actor(),
		OccurredAt: m.OccurredAt(),
	}
}

func movementToDomain(dto MovementDTO) (product.Movement, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return product.Movement{}, err
	}
	productID, err := kernel.UUIDFromGoogle(dto.ProductID)
	if err != nil {
		return product.Movement{}, err
	}
	return product.RestoreMovement(
		id,
		productID,
		product.MovementKind(dto.Kind),
		dto.Quantity,
		product.Reason(dto.Reason),
		dto.Note,
		dto.Actor,
		dto.OccurredAt,
	)
}
