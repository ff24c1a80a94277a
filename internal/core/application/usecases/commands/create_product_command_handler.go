package commands

import (
	"context"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/product"
)

type CreateProductCommandHandler struct {
	uowFactory InventoryUoWFactory
	clock      kernel.Clock
}

func NewCreateProductCommandHandler(uowFactory InventoryUoWFactory, clock kernel.Clock) CreateProductCommandHandler {
	return CreateProductCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p, err := product.NewProduct(cmd.productID, cmd.sku, cmd.name, cmd.unit, cmd.minStock)
	if err != nil {
		return err
	}

	var movements []product.Movement
	if cmd.initialStock > 0 {
		m, err := product.NewMovement(kernel.NewUUID(), p.ID(), product.Inbound, cmd.initialStock,
			product.ReasonAdjustment, "initial stock", cmd.actor, h.clock.Now())
		if err != nil {
			return err
		}
		if err = p.Apply(m); err != nil {
			return err
		}
		movements = append(movements, m)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().Add(ctx, p); err != nil {
		return err
	}

	if len(movements) > 0 {
		if err = uow.MovementRepository().Add(ctx, movements...); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
