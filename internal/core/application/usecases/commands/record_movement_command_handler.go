package commands

import (
	"context"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/product"
)

// RecordMovementCommandHandler locks the product row, applies the movement
// and stores both in one transaction. An outbound movement larger than the
// balance fails with product.ErrNotEnoughStock.
type RecordMovementCommandHandler struct {
	uowFactory InventoryUoWFactory
	clock      kernel.Clock
}

func NewRecordMovementCommandHandler(uowFactory InventoryUoWFactory, clock kernel.Clock) RecordMovementCommandHandler {
	return RecordMovementCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *RecordMovementCommandHandler) Handle(ctx context.Context, cmd RecordMovementCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	locked, err := productRepo.GetForUpdate(ctx, cmd.productID)
	if err != nil {
		return err
	}
	p := locked[0]

	m, err := product.NewMovement(cmd.movementID, cmd.productID, cmd.kind, cmd.quantity,
		cmd.reason, cmd.note, cmd.actor, h.clock.Now())
	if err != nil {
		return err
	}

	if err = p.Apply(m); err != nil {
		return err
	}

	if err = productRepo.Update(ctx, p); err != nil {
		return err
	}

	if err = uow.MovementRepository().Add(ctx, m); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
