package commands

import (
	"context"
	"fmt"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"
	"depot/internal/core/domain/services"
)

// FinalizeDeliveryCommandHandler delivers an order in one transaction:
//  1. lock the order row
//  2. lock the rows of every product on the order, in id order
//  3. let services.DeliveryFinalizer check and apply everything
//  4. save products, stock movements and the order
//
// Any error before commit rolls the whole transaction back, so stock and
// status change together or not at all.
type FinalizeDeliveryCommandHandler struct {
	uowFactory UoWFactory
	finalizer  services.DeliveryFinalizer
	clock      kernel.Clock
}

func NewFinalizeDeliveryCommandHandler(
	uowFactory UoWFactory,
	policy order.TransitionPolicy,
	clock kernel.Clock,
) FinalizeDeliveryCommandHandler {
	return FinalizeDeliveryCommandHandler{
		uowFactory: uowFactory,
		finalizer:  services.NewDeliveryFinalizer(policy),
		clock:      clock,
	}
}

func (h *FinalizeDeliveryCommandHandler) Handle(ctx context.Context, cmd FinalizeDeliveryCommand) error {
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

	productRepo := uow.ProductRepository()
	items := o.Items()
	productIDs := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID())
	}

	products, err := productRepo.GetForUpdate(ctx, productIDs...)
	if err != nil {
		return err
	}

	now := h.clock.Now()
	note := cmd.Note()
	if note == "" {
		note = fmt.Sprintf("delivery finalized at %s", now.Format("2006-01-02 15:04"))
	}

	movements, err := h.finalizer.Finalize(o, products, cmd.Actor(), note, now)
	if err != nil {
		return err
	}

	for _, p := range products {
		if err = productRepo.Update(ctx, p); err != nil {
			return err
		}
	}

	if err = uow.MovementRepository().Add(ctx, movements...); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
