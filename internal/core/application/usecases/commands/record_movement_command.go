package commands

import (
	"errors"
	"fmt"
	"strings"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/product"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var ErrRecordMovementCommandIsNotConstructed = errors.New(
	"RecordMovementCommand must be created via NewRecordMovementCommand constructor",
)

// RecordMovementCommand adjusts the stock of a product and logs the change
// in its ledger.
type RecordMovementCommand struct { //nolint:recvcheck //using for validation
	movementID kernel.UUID
	productID  kernel.UUID
	kind       product.MovementKind
	quantity   int
	reason     product.Reason
	note       string
	actor      string

	guard guard.ConstructorGuard
}

func NewRecordMovementCommand(
	movementID, productID kernel.UUID,
	kind product.MovementKind,
	quantity int,
	reason product.Reason,
	note, actor string,
) (RecordMovementCommand, error) {
	var problems []error
	if err := movementID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := productID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("product", err))
	}
	if quantity <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if strings.TrimSpace(actor) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("actor"))
	}
	problems = append(problems, kind.Validate(), reason.Validate())
	if err := errors.Join(problems...); err != nil {
		return RecordMovementCommand{}, err
	}

	return RecordMovementCommand{
		movementID: movementID,
		productID:  productID,
		kind:       kind,
		quantity:   quantity,
		reason:     reason,
		note:       note,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RecordMovementCommand) Validate() error {
	return c.guard.Validate(ErrRecordMovementCommandIsNotConstructed)
}

func (c RecordMovementCommand) MovementID() kernel.UUID {
	return c.movementID
}

func (c RecordMovementCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c RecordMovementCommand) Kind() product.MovementKind {
	return c.kind
}

func (c RecordMovementCommand) Quantity() int {
	return c.quantity
}
