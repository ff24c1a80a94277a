package commands

import (
	"context"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"
)

// TransitionOrderCommandHandler applies a status change under the configured
// transition policy and appends it to the order history in the same
// transaction.
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     order.TransitionPolicy
	clock      kernel.Clock
	finalize   FinalizeDeliveryCommandHandler
}

func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	policy order.TransitionPolicy,
	clock kernel.Clock,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
		finalize:   NewFinalizeDeliveryCommandHandler(uowFactory, policy, clock),
	}
}

func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.Status() == order.Delivered {
		finalizeCmd, err := NewFinalizeDeliveryCommand(cmd.OrderID(), cmd.Actor(), cmd.Note())
		if err != nil {
			return err
		}
		return h.finalize.Handle(ctx, finalizeCmd)
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

	if err = o.Transition(h.policy, cmd.Status(), cmd.Actor(), cmd.Note(), h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
