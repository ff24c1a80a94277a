package commands

import (
	"errors"
	"fmt"
	"strings"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// ItemLine is a requested product and quantity.
type ItemLine struct {
	ProductID kernel.UUID
	Quantity  int
	Note      string
}

// CreateOrderCommand requests a new delivery order for a school.
//
// Number is optional. When it is empty the next number of the day is
// allocated; when it is set (administrative backfill) it is used as is and
// only the unique constraint protects it.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), schoolID, expected,
//	    order.Details{Responsible: "Maria"}, "", lines, "maria")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	number, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	schoolID     kernel.UUID
	expectedDate kernel.Date
	details      order.Details
	number       order.Number
	items        []ItemLine
	actor        string

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID, schoolID kernel.UUID,
	expectedDate kernel.Date,
	details order.Details,
	number string,
	items []ItemLine,
	actor string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSchoolID(schoolID),
		cmd.setExpectedDate(expectedDate),
		cmd.setNumber(number),
		cmd.setItems(items),
		cmd.setActor(actor),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CreateOrderCommand) SchoolID() kernel.UUID { return c.schoolID }
func (c CreateOrderCommand) ExpectedDate() kernel.Date { return c.expectedDate }
func (c CreateOrderCommand) Details() order.Details { return c.details }
func (c CreateOrderCommand) Actor() string { return c.actor }

// Number returns the caller supplied number and whether there is one.
func (c CreateOrderCommand) Number() (order.Number, bool) {
	return c.number, !c.number.IsZero()
}

func (c CreateOrderCommand) Items() []ItemLine {
	return append([]ItemLine(nil), c.items...)
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setSchoolID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("school", err)
	}
	c.schoolID = id
	return nil
}

func (c *CreateOrderCommand) setExpectedDate(d kernel.Date) error {
	if err := d.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("expected date", err)
	}
	c.expectedDate = d
	return nil
}

func (c *CreateOrderCommand) setNumber(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := order.ParseNumber(raw)
	if err != nil {
		return err
	}
	c.number = n
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemLine) error {
	seen := make(map[kernel.UUID]struct{}, len(items))
	for i, line := range items {
		if err := line.ProductID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("items[%d].product", i), err)
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity is invalid", i),
				fmt.Errorf("%d is not greater than 0", line.Quantity),
			)
		}
		if _, dup := seen[line.ProductID]; dup {
			return errs.NewObjectAlreadyExistsError(fmt.Sprintf("items[%d].product", i), line.ProductID)
		}
		seen[line.ProductID] = struct{}{}
	}
	c.items = append([]ItemLine(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setActor(actor string) error {
	if strings.TrimSpace(actor) == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	c.actor = actor
	return nil
}
