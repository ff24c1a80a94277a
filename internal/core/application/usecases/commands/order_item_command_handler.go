package commands

import (
	"context"
	"fmt"

	"depot/internal/core/domain/model/kernel"
)

// ChangeOrderItemCommandHandler adds, resizes or removes a line of an open
// order. Added products must exist and be active.
type ChangeOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewChangeOrderItemCommandHandler(uowFactory OrderUoWFactory) ChangeOrderItemCommandHandler {
	return ChangeOrderItemCommandHandler{uowFactory: uowFactory}
}

func (h *ChangeOrderItemCommandHandler) Handle(ctx context.Context, cmd ChangeOrderItemCommand) error {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	switch cmd.Change() {
	case AddItem:
		if err = ensureProductAvailable(ctx, uow.ProductRepository(), cmd.ProductID()); err != nil {
			return err
		}
		err = o.AddItem(kernel.NewUUID(), cmd.ProductID(), cmd.Quantity(), cmd.Note())
	case SetItemQuantity:
		err = o.ChangeItemQuantity(cmd.ProductID(), cmd.Quantity())
	case RemoveItem:
		err = o.RemoveItem(cmd.ProductID())
	default:
		err = fmt.Errorf("unknown item change %d", cmd.Change())
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
