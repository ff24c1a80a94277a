package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"
	"depot/internal/core/domain/model/product"
	"depot/internal/core/ports"
	"depot/internal/pkg/errs"
)

// CreateOrderCommandHandler stores a new Planned order with its items.
//
// The school must exist and be active, and every product must exist and be
// active. The number is taken from the command or allocated for the day
// the clock reports.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	allocator  OrderNumberAllocator
	clock      kernel.Clock
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	allocator OrderNumberAllocator,
	clock kernel.Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		allocator:  allocator,
		clock:      clock,
	}
}

// Handle returns the number the order was stored with.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (order.Number, error) {
	if err := cmd.Validate(); err != nil {
		return order.Number{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Number{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := h.checkReferences(ctx, uow, cmd); err != nil {
		return order.Number{}, err
	}

	now := h.clock.Now()
	orderRepo := uow.OrderRepository()
	store := func(number order.Number) error {
		o, err := buildOrder(cmd, number, now)
		if err != nil {
			return err
		}
		return orderRepo.Add(ctx, o)
	}

	var (
		number order.Number
		err    error
	)
	if supplied, ok := cmd.Number(); ok {
		number = supplied
		if err = store(number); errors.Is(err, ports.ErrDuplicateOrderNumber) {
			err = errs.NewObjectAlreadyExistsErrorWithCause("order number", number, err)
		}
	} else {
		number, err = h.allocator.Allocate(ctx, uow, kernel.DateOf(now), store)
	}
	if err != nil {
		return order.Number{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Number{}, err
	}

	return number, nil
}

func (h *CreateOrderCommandHandler) checkReferences(ctx context.Context, uow OrderUoW, cmd CreateOrderCommand) error {
	s, err := uow.SchoolRepository().Get(ctx, cmd.SchoolID())
	if err != nil {
		return err
	}
	if err = s.EnsureCanReceive(); err != nil {
		return err
	}

	productRepo := uow.ProductRepository()
	for _, line := range cmd.Items() {
		if err = ensureProductAvailable(ctx, productRepo, line.ProductID); err != nil {
			return err
		}
	}
	return nil
}

func buildOrder(cmd CreateOrderCommand, number order.Number, now time.Time) (*order.Order, error) {
	o, err := order.NewOrder(
		cmd.OrderID(),
		number,
		cmd.SchoolID(),
		cmd.ExpectedDate(),
		cmd.Details(),
		cmd.Actor(),
		now,
	)
	if err != nil {
		return nil, err
	}

	for _, line := range cmd.Items() {
		if err = o.AddItem(kernel.NewUUID(), line.ProductID, line.Quantity, line.Note); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func ensureProductAvailable(ctx context.Context, repo ports.ProductRepository, id kernel.UUID) error {
	p, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsActive() {
		return fmt.Errorf("%w: %s", product.ErrProductIsInactive, p.SKU())
	}
	return nil
}
