package product

import (
	"errors"
	"fmt"
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"
)

// MovementKind tells whether a movement adds to or removes from stock.
type MovementKind string

const (
	Inbound  MovementKind = "in"
	Outbound MovementKind = "out"
)

func (k MovementKind) Validate() error {
	if k != Inbound && k != Outbound {
		return errs.NewValueIsInvalidErrorWithCause("movement kind is invalid", fmt.Errorf("%q is neither in nor out", string(k)))
	}
	return nil
}

// Reason explains a movement.
type Reason string

const (
	ReasonPurchase   Reason = "purchase"
	ReasonSale       Reason = "sale"
	ReasonAdjustment Reason = "adjustment"
	ReasonReturn     Reason = "return"
	ReasonLoss       Reason = "loss"
	ReasonProduction Reason = "production"
	ReasonDelivery   Reason = "delivery"
	ReasonOther      Reason = "other"
)

func (r Reason) Validate() error {
	switch r {
	case ReasonPurchase, ReasonSale, ReasonAdjustment, ReasonReturn,
		ReasonLoss, ReasonProduction, ReasonDelivery, ReasonOther:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("reason is invalid", fmt.Errorf("%q is not a known reason", string(r)))
	}
}

// Movement is an entry of the stock ledger of one product.
type Movement struct {
	id         kernel.UUID
	productID  kernel.UUID
	kind       MovementKind
	quantity   int
	reason     Reason
	note       string
	actor      string
	occurredAt time.Time
}

// NewMovement builds a ledger entry. It does not change any balance: pass it
// to Product.Apply for that.
func NewMovement(
	id, productID kernel.UUID,
	kind MovementKind,
	quantity int,
	reason Reason,
	note, actor string,
	occurredAt time.Time,
) (Movement, error) {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := productID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("product", err))
	}
	if quantity <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if occurredAt.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("occurred at"))
	}
	problems = append(problems, kind.Validate(), reason.Validate())

	if err := errors.Join(problems...); err != nil {
		return Movement{}, err
	}

	return Movement{
		id:         id,
		productID:  productID,
		kind:       kind,
		quantity:   quantity,
		reason:     reason,
		note:       note,
		actor:      actor,
		occurredAt: occurredAt,
	}, nil
}

// RestoreMovement rebuilds a stored ledger entry.
func RestoreMovement(
	id, productID kernel.UUID,
	kind MovementKind,
	quantity int,
	reason Reason,
	note, actor string,
	occurredAt time.Time,
) (Movement, error) {
	return NewMovement(id, productID, kind, quantity, reason, note, actor, occurredAt)
}

func (m Movement) ID() kernel.UUID { return m.id }
func (m Movement) ProductID() kernel.UUID { return m.productID }
func (m Movement) Kind() MovementKind { return m.kind }
func (m Movement) Quantity() int { return m.quantity }
func (m Movement) Reason() Reason { return m.reason }
func (m Movement) Note() string { return m.note }
func (m Movement) Actor() string { return m.actor }
func (m Movement) OccurredAt() time.Time { return m.occurredAt }

// Delta is the signed change the movement applies to stock.
func (m Movement) Delta() int {
	if m.kind == Outbound {
		return -m.quantity
	}
	return m.quantity
}
