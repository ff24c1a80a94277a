package commands

import (
	"context"
	"errors"
	"strings"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/product"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var ErrAdjustStockCommandIsNotConstructed = errors.New(
	"AdjustStockCommand must be created via NewAdjustStockCommand constructor",
)

// AdjustStockCommand sets the balance of a product to a physical count.
type AdjustStockCommand struct { //nolint:recvcheck //using for validation
	movementID kernel.UUID
	productID  kernel.UUID
	counted    int
	note       string
	actor      string

	guard guard.ConstructorGuard
}

func NewAdjustStockCommand(movementID, productID kernel.UUID, counted int, note, actor string) (AdjustStockCommand, error) {
	var problems []error
	if err := movementID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := productID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("product", err))
	}
	if counted < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("counted stock", counted, 0, "unbounded"))
	}
	if strings.TrimSpace(actor) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("actor"))
	}
	if err := errors.Join(problems...); err != nil {
		return AdjustStockCommand{}, err
	}

	return AdjustStockCommand{
		movementID: movementID,
		productID:  productID,
		counted:    counted,
		note:       note,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AdjustStockCommand) Validate() error {
	return c.guard.Validate(ErrAdjustStockCommandIsNotConstructed)
}

func (c AdjustStockCommand) MovementID() kernel.UUID {
	return c.movementID
}

func (c AdjustStockCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c AdjustStockCommand) Counted() int {
	return c.counted
}

// AdjustStockCommandHandler reconciles a product with a stock count under a
// row lock. A count that matches the balance stores nothing.
type AdjustStockCommandHandler struct {
	uowFactory InventoryUoWFactory
	clock      kernel.Clock
}

func NewAdjustStockCommandHandler(uowFactory InventoryUoWFactory, clock kernel.Clock) AdjustStockCommandHandler {
	return AdjustStockCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *AdjustStockCommandHandler) Handle(ctx context.Context, cmd AdjustStockCommand) (product.CountAdjustment, error) {
	if err := cmd.Validate(); err != nil {
		return product.CountAdjustment{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return product.CountAdjustment{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	locked, err := productRepo.GetForUpdate(ctx, cmd.productID)
	if err != nil {
		return product.CountAdjustment{}, err
	}
	p := locked[0]

	adjustment, err := p.AdjustTo(cmd.movementID, cmd.counted, cmd.note, cmd.actor, h.clock.Now())
	if err != nil {
		return product.CountAdjustment{}, err
	}
	if adjustment.Movement == nil {
		return adjustment, nil
	}

	if err = productRepo.Update(ctx, p); err != nil {
		return product.CountAdjustment{}, err
	}
	if err = uow.MovementRepository().Add(ctx, *adjustment.Movement); err != nil {
		return product.CountAdjustment{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return product.CountAdjustment{}, err
	}
	return adjustment, nil
}
