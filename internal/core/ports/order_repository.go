package ports

import (
	"context"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"
)

type OrderRepository interface {
	// Add inserts a new order with its items and history. A collision on the
	// order number is reported as an error wrapping ErrDuplicateOrderNumber,
	// and the surrounding transaction is unusable until rolled back to a
	// savepoint taken before the call.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists scalar fields and items of an existing order and appends
	// history entries it has not stored yet. Stored history is never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order with items and history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with the order row locked until the transaction
	// ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order; items and history go with it.
	Delete(ctx context.Context, id kernel.UUID) error

	// LockLatestNumberOn serializes allocation for day and returns the
	// highest stored order number carrying day as its YYYYMMDD prefix. found
	// is false when there is none. The number is returned raw because stored data may
	// not parse.
	LockLatestNumberOn(ctx context.Context, day kernel.Date) (number string, found bool, err error)

	// CountNumberedOn counts the orders whose number carries day.
	CountNumberedOn(ctx context.Context, day kernel.Date) (int, error)
}
