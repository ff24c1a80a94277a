package commands

import (
	"context"
	"errors"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/guard"
)

var ErrRevertMovementCommandIsNotConstructed = errors.New(
	"RevertMovementCommand must be created via NewRevertMovementCommand constructor",
)

// RevertMovementCommand deletes a ledger entry and undoes its effect on
// stock.
type RevertMovementCommand struct {
	movementID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRevertMovementCommand(movementID kernel.UUID) (RevertMovementCommand, error) {
	if err := movementID.Validate(); err != nil {
		return RevertMovementCommand{}, err
	}
	return RevertMovementCommand{movementID: movementID, guard: guard.NewConstructorGuard()}, nil
}

func (c RevertMovementCommand) Validate() error {
	return c.guard.Validate(ErrRevertMovementCommandIsNotConstructed)
}

type RevertMovementCommandHandler struct {
	uowFactory InventoryUoWFactory
}

func NewRevertMovementCommandHandler(uowFactory InventoryUoWFactory) RevertMovementCommandHandler {
	return RevertMovementCommandHandler{uowFactory: uowFactory}
}

func (h *RevertMovementCommandHandler) Handle(ctx context.Context, cmd RevertMovementCommand) error {
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

	movementRepo := uow.MovementRepository()
	m, err := movementRepo.Get(ctx, cmd.movementID)
	if err != nil {
		return err
	}

	productRepo := uow.ProductRepository()
	locked, err := productRepo.GetForUpdate(ctx, m.ProductID())
	if err != nil {
		return err
	}
	p := locked[0]

	if err = p.Revert(m); err != nil {
		return err
	}

	if err = productRepo.Update(ctx, p); err != nil {
		return err
	}

	if err = movementRepo.Delete(ctx, m.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
