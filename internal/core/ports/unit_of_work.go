package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and then publishes the domain
	// events of the aggregates saved through its repositories.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction and discards pending events.
	Rollback(ctx context.Context) error

	// SavePoint marks a point inside the transaction that RollbackTo can
	// return to without abandoning the whole transaction.
	SavePoint(ctx context.Context, name string) error

	// RollbackTo undoes everything done after the named savepoint.
	RollbackTo(ctx context.Context, name string) error

	OrderRepository() OrderRepository
	ProductRepository() ProductRepository
	MovementRepository() MovementRepository
	SchoolRepository() SchoolRepository
}
