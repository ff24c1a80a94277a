package queries

import (
	"context"
	"errors"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/product"
	"depot/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrListLowStockProductsQueryIsNotConstructed = errors.New(
	"ListLowStockProductsQuery must be created via NewListLowStockProductsQuery constructor",
)

// ListLowStockProductsQuery lists active products whose stock is at or
// below their minimum, emptiest first.
type ListLowStockProductsQuery struct {
	guard guard.ConstructorGuard
}

func NewListLowStockProductsQuery() ListLowStockProductsQuery {
	return ListLowStockProductsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListLowStockProductsQuery) Validate() error {
	return q.guard.Validate(ErrListLowStockProductsQueryIsNotConstructed)
}

type ProductStockView struct {
	ID       kernel.UUID
	SKU      string
	Name     string
	Unit     product.Unit
	MinStock int
	Stock    int
	Status   product.StockStatus
}

type ListLowStockProductsQueryHandler struct {
	db *gorm.DB
}

func NewListLowStockProductsQueryHandler(db *gorm.DB) ListLowStockProductsQueryHandler {
	return ListLowStockProductsQueryHandler{db: db}
}

func (h ListLowStockProductsQueryHandler) Handle(
	ctx context.Context,
	query ListLowStockProductsQuery,
) ([]ProductStockView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, sku, name, unit, min_stock, stock
		FROM products
		WHERE active AND stock <= min_stock
		ORDER BY stock, sku
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]ProductStockView, 0)
	for rows.Next() {
		var (
			view ProductStockView
			id   uuid.UUID
			unit string
		)
		if err = rows.Scan(&id, &view.SKU, &view.Name, &unit, &view.MinStock, &view.Stock); err != nil {
			return nil, err
		}

		if view.ID, err = storedUUID(id); err != nil {
			return nil, err
		}
		view.Unit = product.Unit(unit)
		view.Status = product.StockStatusOf(view.Stock, view.MinStock)
		products = append(products, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}
