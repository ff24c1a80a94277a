package commands

import (
	"context"
	"errors"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var ErrRescheduleOrderCommandIsNotConstructed = errors.New(
	"RescheduleOrderCommand must be created via NewRescheduleOrderCommand constructor",
)

// RescheduleOrderCommand replaces the expected date and descriptive fields
// of an open order.
type RescheduleOrderCommand struct {
	orderID      kernel.UUID
	expectedDate kernel.Date
	details      order.Details

	guard guard.ConstructorGuard
}

func NewRescheduleOrderCommand(orderID kernel.UUID, expectedDate kernel.Date, details order.Details) (RescheduleOrderCommand, error) {
	var dateErr error
	if err := expectedDate.Validate(); err != nil {
		dateErr = errs.NewValueIsRequiredErrorWithCause("expected date", err)
	}
	if err := errors.Join(orderID.Validate(), dateErr); err != nil {
		return RescheduleOrderCommand{}, err
	}

	return RescheduleOrderCommand{
		orderID:      orderID,
		expectedDate: expectedDate,
		details:      details,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RescheduleOrderCommand) Validate() error {
	return c.guard.Validate(ErrRescheduleOrderCommandIsNotConstructed)
}

type RescheduleOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRescheduleOrderCommandHandler(uowFactory OrderUoWFactory) RescheduleOrderCommandHandler {
	return RescheduleOrderCommandHandler{uowFactory: uowFactory}
}

func (h *RescheduleOrderCommandHandler) Handle(ctx context.Context, cmd RescheduleOrderCommand) error {
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
	o, err := orderRepo.GetForUpdate(ctx, cmd.orderID)
	if err != nil {
		return err
	}

	if err = o.Reschedule(cmd.expectedDate, cmd.details); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
