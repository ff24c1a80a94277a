// Package postgres provides the GORM-based unit of work over the depot's
// repositories.
//
// A unit of work wraps one database transaction. Repositories obtained from
// it after Begin run inside that transaction. Aggregates saved through the
// order repository are tracked, and once Commit succeeds their pending
// domain events are handed to the configured ports.EventPublisher.
//
// Example:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"depot/internal/adapters/out/postgres/orderrepo"
	"depot/internal/adapters/out/postgres/productrepo"
	"depot/internal/adapters/out/postgres/schoolrepo"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// trackedAggregate is an aggregate saved during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is implemented by aggregates that record domain events.
type eventSource interface {
	DomainEvents() []kernel.Event
	ClearDomainEvents()
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool. Each instance holds its own transaction.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewGormUnitOfWorkFactory creates a factory. A nil publisher drops events.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *zap.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With(zap.String("component", "unit_of_work")),
	}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the events of the
// aggregates saved in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	logger            *zap.Logger
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling it again while a transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit commits the transaction and then publishes the domain events of
// the tracked aggregates. A publishing failure is logged: the committed
// state is never undone because of it. Publishing is detached from ctx's
// cancellation so a caller going away after commit does not drop events.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publishEvents(context.WithoutCancel(ctx))
	return nil
}

// Rollback rolls the transaction back and forgets the tracked aggregates.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) SavePoint(_ context.Context, name string) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return uow.tx.SavePoint(name).Error
}

func (uow *GormUnitOfWork) RollbackTo(_ context.Context, name string) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return uow.tx.RollbackTo(name).Error
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.conn())
}

func (uow *GormUnitOfWork) MovementRepository() ports.MovementRepository {
	return productrepo.NewGormMovementRepository(uow.conn())
}

func (uow *GormUnitOfWork) SchoolRepository() ports.SchoolRepository {
	return schoolrepo.NewGormSchoolRepository(uow.conn())
}

// TrackAggregate registers an aggregate saved in this unit of work. Tracking
// the same aggregate twice keeps a single entry.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	for _, tracked := range uow.trackedAggregates {
		if tracked.ID.IsEqual(id) {
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// conn returns the open transaction, or the pool when there is none.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publishEvents(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	var events []kernel.Event
	for _, t := range tracked {
		source, ok := t.Aggregate.(eventSource)
		if !ok {
			continue
		}
		events = append(events, source.DomainEvents()...)
		source.ClearDomainEvents()
	}
	if len(events) == 0 || uow.publisher == nil {
		return
	}

	if err := uow.publisher.Publish(ctx, events...); err != nil {
		uow.logger.Error("failed to publish domain events",
			zap.Int("events", len(events)),
			zap.Error(err),
		)
	}
}
