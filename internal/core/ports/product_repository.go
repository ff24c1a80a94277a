package ports

import (
	"context"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/product"
)

type ProductRepository interface {
	// Add inserts a product. A taken SKU yields *errs.ObjectAlreadyExistsError.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists the balance and descriptive fields.
	Update(ctx context.Context, aggregate *product.Product) error

	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetForUpdate loads the products with their rows locked until the
	// transaction ends. Rows are locked in id order so that two transactions
	// touching the same products cannot deadlock. Every id must exist.
	GetForUpdate(ctx context.Context, ids ...kernel.UUID) ([]*product.Product, error)
}

type MovementRepository interface {
	// Add appends entries to the stock ledger.
	Add(ctx context.Context, movements ...product.Movement) error

	Get(ctx context.Context, id kernel.UUID) (product.Movement, error)

	Delete(ctx context.Context, id kernel.UUID) error
}
