package commands

import (
	"errors"
	"fmt"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var ErrChangeOrderItemCommandIsNotConstructed = errors.New(
	"ChangeOrderItemCommand must be created via one of its constructors",
)

// ItemChange tells ChangeOrderItemCommandHandler what to do with a line.
type ItemChange int

const (
	AddItem ItemChange = iota + 1
	SetItemQuantity
	RemoveItem
)

// ChangeOrderItemCommand edits one line of an open order.
type ChangeOrderItemCommand struct { //nolint:recvcheck //using for validation
	change    ItemChange
	orderID   kernel.UUID
	productID kernel.UUID
	quantity  int
	note      string

	guard guard.ConstructorGuard
}

// NewAddOrderItemCommand adds a product that the order does not contain.
func NewAddOrderItemCommand(orderID, productID kernel.UUID, quantity int, note string) (ChangeOrderItemCommand, error) {
	return newChangeOrderItemCommand(AddItem, orderID, productID, quantity, note)
}

// NewSetOrderItemQuantityCommand replaces the requested quantity of a line.
func NewSetOrderItemQuantityCommand(orderID, productID kernel.UUID, quantity int) (ChangeOrderItemCommand, error) {
	return newChangeOrderItemCommand(SetItemQuantity, orderID, productID, quantity, "")
}

// NewRemoveOrderItemCommand drops a line.
func NewRemoveOrderItemCommand(orderID, productID kernel.UUID) (ChangeOrderItemCommand, error) {
	return newChangeOrderItemCommand(RemoveItem, orderID, productID, 0, "")
}

func newChangeOrderItemCommand(
	change ItemChange,
	orderID, productID kernel.UUID,
	quantity int,
	note string,
) (ChangeOrderItemCommand, error) {
	var quantityErr error
	if change != RemoveItem && quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}

	var productErr error
	if err := productID.Validate(); err != nil {
		productErr = errs.NewValueIsRequiredErrorWithCause("product", err)
	}

	if err := errors.Join(orderID.Validate(), productErr, quantityErr); err != nil {
		return ChangeOrderItemCommand{}, err
	}

	return ChangeOrderItemCommand{
		change:    change,
		orderID:   orderID,
		productID: productID,
		quantity:  quantity,
		note:      note,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderItemCommandIsNotConstructed)
}

func (c ChangeOrderItemCommand) Change() ItemChange {
	return c.change
}

func (c ChangeOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderItemCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c ChangeOrderItemCommand) Quantity() int {
	return c.quantity
}

func (c ChangeOrderItemCommand) Note() string {
	return c.note
}
