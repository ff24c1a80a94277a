package commands

import (
	"errors"
	"strings"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var ErrFinalizeDeliveryCommandIsNotConstructed = errors.New(
	"FinalizeDeliveryCommand must be created via NewFinalizeDeliveryCommand constructor",
)

// FinalizeDeliveryCommand marks an order as delivered and withdraws its
// items from stock.
type FinalizeDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string
	note    string

	guard guard.ConstructorGuard
}

func NewFinalizeDeliveryCommand(orderID kernel.UUID, actor, note string) (FinalizeDeliveryCommand, error) {
	cmd := FinalizeDeliveryCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return FinalizeDeliveryCommand{}, err
	}
	if strings.TrimSpace(actor) == "" {
		return FinalizeDeliveryCommand{}, errs.NewValueIsRequiredError("actor")
	}
	cmd.orderID = orderID
	cmd.actor = actor

	return cmd, nil
}

func (c FinalizeDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeDeliveryCommandIsNotConstructed)
}

func (c FinalizeDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c FinalizeDeliveryCommand) Actor() string {
	return c.actor
}

// Note is stored on the history entry. An empty note is replaced by a
// timestamped default.
func (c FinalizeDeliveryCommand) Note() string {
	return c.note
}
