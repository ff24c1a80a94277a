// Package commands contains business operations that modify system state.
// Every handler validates its command, opens a unit of work, changes the
// aggregates and commits, so a failed command leaves no partial state behind.
package commands

import (
	"context"

	"depot/internal/core/ports"
)

// Unit of Work interfaces give each handler the narrowest set of
// repositories it needs inside one transaction.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SavePointer returns to a point inside the running transaction. The
	// order number allocator uses it to survive a uniqueness violation
	// without losing the day lock.
	SavePointer interface {
		SavePoint(ctx context.Context, name string) error
		RollbackTo(ctx context.Context, name string) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	MovementRepoFactory interface {
		MovementRepository() ports.MovementRepository
	}

	SchoolRepoFactory interface {
		SchoolRepository() ports.SchoolRepository
	}

	// OrderUoW covers creation and editing of orders, which read schools and
	// products but never change them.
	OrderUoW interface {
		TxManager
		SavePointer
		OrderRepoFactory
		SchoolRepoFactory
		ProductRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// InventoryUoW covers products and their stock ledger.
	InventoryUoW interface {
		TxManager
		ProductRepoFactory
		MovementRepoFactory
	}

	InventoryUoWFactory interface {
		Create() InventoryUoW
	}

	SchoolUoW interface {
		TxManager
		SchoolRepoFactory
	}

	SchoolUoWFactory interface {
		Create() SchoolUoW
	}

	// UoW spans orders and inventory. Status transitions use it because a
	// transition to Delivered withdraws stock in the same transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   products, err := uow.ProductRepository().GetForUpdate(ctx, ids...)
	//   // ... finalize, then save order, products and movements
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		MovementRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
