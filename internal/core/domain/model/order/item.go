package order

import (
	"errors"
	"fmt"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"
)

// Item is a line of an order: how many units of one product were requested
// and how many were handed over. An order holds at most one item per product.
type Item struct {
	id        kernel.UUID
	productID kernel.UUID
	requested int
	delivered int
	note      string
}

func newItem(id, productID kernel.UUID, requested int, note string) (*Item, error) {
	item := &Item{note: note}
	if err := errors.Join(
		setItemID(item, id),
		setItemProduct(item, productID),
		item.setRequested(requested),
	); err != nil {
		return nil, err
	}
	return item, nil
}

// RestoreItem rebuilds an item read from storage.
func RestoreItem(id, productID kernel.UUID, requested, delivered int, note string) (*Item, error) {
	item, err := newItem(id, productID, requested, note)
	if err != nil {
		return nil, err
	}
	if delivered < 0 || delivered > requested {
		return nil, errs.NewValueIsOutOfRangeError("delivered quantity", delivered, 0, requested)
	}
	item.delivered = delivered
	return item, nil
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// Requested is the quantity asked for, always positive.
func (i *Item) Requested() int {
	return i.requested
}

// Delivered is the quantity handed over. It is zero until the order is
// delivered.
func (i *Item) Delivered() int {
	return i.delivered
}

func (i *Item) Note() string {
	return i.note
}

// IsFullyDelivered reports whether every requested unit was handed over.
func (i *Item) IsFullyDelivered() bool {
	return i.delivered >= i.requested
}

func (i *Item) setRequested(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", qty))
	}
	i.requested = qty
	return nil
}

func setItemID(i *Item, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func setItemProduct(i *Item, productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product", err)
	}
	i.productID = productID
	return nil
}
