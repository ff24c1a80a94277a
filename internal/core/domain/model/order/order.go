package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"
)

// CreationNote is the note of the history entry appended by NewOrder.
const CreationNote = "order created"

// Details are the descriptive fields of an order that may be edited while
// the order is open.
type Details struct {
	DeliveryType DeliveryType
	Responsible  string
	Driver       string
	Vehicle      string
	Notes        string
}

// Order is a delivery of goods from the depot to a school. It is the
// aggregate root of its line items and of its status history.
//
// Order follows these invariants:
//   - the number is assigned once, at construction, and never changes
//   - at most one item per product, each with a positive requested quantity
//   - history only grows, one entry per accepted status change
//   - the actual delivery date is set if and only if the status is Delivered
//   - items cannot be changed once the order is Delivered or Cancelled
type Order struct {
	id                 kernel.UUID
	number             Number
	schoolID           kernel.UUID
	details            Details
	status             Status
	expectedDate       kernel.Date
	actualDeliveryDate kernel.Date
	createdBy          string
	createdAt          time.Time

	items   []*Item
	history []HistoryEntry
	events  []kernel.Event

	isConstructed bool
}

// NewOrder creates a Planned order and records the creation in its history.
//
// Example:
//
//	number, _ := order.NewNumber(kernel.Today(clock), 1)
//	o, err := order.NewOrder(kernel.NewUUID(), number, schoolID, expected,
//	    order.Details{DeliveryType: order.Normal, Responsible: "Maria"},
//	    "maria", clock.Now())
func NewOrder(
	id kernel.UUID,
	number Number,
	schoolID kernel.UUID,
	expectedDate kernel.Date,
	details Details,
	createdBy string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Planned,
		items:         make([]*Item, 0),
		history:       make([]HistoryEntry, 0, 1),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setSchool(schoolID),
		o.setExpectedDate(expectedDate),
		o.setDetails(details),
		validateActor(createdBy),
		validateInstant(createdAt),
	); err != nil {
		return nil, err
	}

	o.createdBy = createdBy
	o.createdAt = createdAt
	o.appendHistory(Unknown, Planned, createdBy, CreationNote, createdAt)

	return o, nil
}

// State carries the scalar fields of a stored order.
type State struct {
	ID                 kernel.UUID
	Number             Number
	SchoolID           kernel.UUID
	Details            Details
	Status             Status
	ExpectedDate       kernel.Date
	ActualDeliveryDate kernel.Date
	CreatedBy          string
	CreatedAt          time.Time
}

// RestoreOrder rebuilds an order read from storage. History must be in the
// order the entries were appended.
func RestoreOrder(state State, items []*Item, history []HistoryEntry) (*Order, error) {
	o := &Order{
		createdBy:     state.CreatedBy,
		createdAt:     state.CreatedAt,
		items:         make([]*Item, 0, len(items)),
		history:       slices.Clone(history),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(state.ID),
		o.setNumber(state.Number),
		o.setSchool(state.SchoolID),
		o.setExpectedDate(state.ExpectedDate),
		o.setDetails(state.Details),
		state.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = state.Status

	if (state.Status == Delivered) == state.ActualDeliveryDate.IsZero() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"actual delivery date is invalid",
			fmt.Errorf("status %s with actual delivery date %q", state.Status, state.ActualDeliveryDate),
		)
	}
	o.actualDeliveryDate = state.ActualDeliveryDate

	for _, item := range items {
		if item == nil {
			return nil, errs.NewValueIsRequiredError("item")
		}
		if _, found := o.findItem(item.ProductID()); found {
			return nil, errs.NewObjectAlreadyExistsError("product", item.ProductID())
		}
		o.items = append(o.items, item)
	}

	if o.history == nil {
		o.history = make([]HistoryEntry, 0)
	}
	return o, nil
}

// Validate reports whether the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() Number {
	return o.number
}

func (o *Order) SchoolID() kernel.UUID {
	return o.schoolID
}

func (o *Order) Details() Details {
	return o.details
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) ExpectedDate() kernel.Date {
	return o.expectedDate
}

// ActualDeliveryDate is the zero Date unless the order is Delivered.
func (o *Order) ActualDeliveryDate() kernel.Date {
	return o.actualDeliveryDate
}

func (o *Order) CreatedBy() string {
	return o.createdBy
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Items returns copies of the line items in insertion order.
func (o *Order) Items() []Item {
	out := make([]Item, 0, len(o.items))
	for _, item := range o.items {
		out = append(out, *item)
	}
	return out
}

// Item returns the line item of a product.
func (o *Order) Item(productID kernel.UUID) (Item, bool) {
	idx, found := o.findItem(productID)
	if !found {
		return Item{}, false
	}
	return *o.items[idx], true
}

// TotalQuantity sums the requested quantities.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.items {
		total += item.requested
	}
	return total
}

// History returns the audit trail, oldest entry first.
func (o *Order) History() []HistoryEntry {
	return slices.Clone(o.history)
}

// IsOverdue reports whether an open order has passed its expected date.
func (o *Order) IsOverdue(today kernel.Date) bool {
	return !o.status.IsTerminal() && o.expectedDate.Before(today)
}

// AddItem adds a line for a product that the order does not contain yet.
func (o *Order) AddItem(id, productID kernel.UUID, quantity int, note string) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	if _, found := o.findItem(productID); found {
		return errs.NewObjectAlreadyExistsError("product", productID)
	}

	item, err := newItem(id, productID, quantity, note)
	if err != nil {
		return err
	}
	o.items = append(o.items, item)
	return nil
}

// ChangeItemQuantity replaces the requested quantity of a line.
func (o *Order) ChangeItemQuantity(productID kernel.UUID, quantity int) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	idx, found := o.findItem(productID)
	if !found {
		return errs.NewObjectNotFoundError("product", productID)
	}
	return o.items[idx].setRequested(quantity)
}

// RemoveItem drops the line of a product.
func (o *Order) RemoveItem(productID kernel.UUID) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	idx, found := o.findItem(productID)
	if !found {
		return errs.NewObjectNotFoundError("product", productID)
	}
	o.items = slices.Delete(o.items, idx, idx+1)
	return nil
}

// Reschedule edits the descriptive fields and the expected date of an open
// order.
func (o *Order) Reschedule(expectedDate kernel.Date, details Details) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}

	draft := *o
	if err := errors.Join(
		draft.setExpectedDate(expectedDate),
		draft.setDetails(details),
	); err != nil {
		return err
	}

	o.expectedDate = draft.expectedDate
	o.details = draft.details
	return nil
}

// Transition moves the order to another status and appends the change to
// its history. On failure the order is left unchanged.
//
// Moving to Delivered also stamps the actual delivery date with the day of
// at and marks every item as fully delivered. Stock is not touched here:
// callers finalize deliveries through services.DeliveryFinalizer.
func (o *Order) Transition(policy TransitionPolicy, to Status, actor, note string, at time.Time) error {
	if err := errors.Join(validateActor(actor), validateInstant(at)); err != nil {
		return err
	}
	if err := policy.Check(o.status, to); err != nil {
		return err
	}
	if to == Delivered && len(o.items) == 0 {
		return NewEmptyOrderError(o.number)
	}

	from := o.status
	o.status = to
	if to == Delivered {
		o.actualDeliveryDate = kernel.DateOf(at)
		for _, item := range o.items {
			item.delivered = item.requested
		}
	}
	o.appendHistory(from, to, actor, note, at)
	return nil
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []kernel.Event {
	return slices.Clone(o.events)
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) appendHistory(from, to Status, actor, note string, at time.Time) {
	entry := HistoryEntry{
		id:         kernel.NewUUID(),
		previous:   from,
		next:       to,
		actor:      actor,
		note:       note,
		occurredAt: at,
	}
	o.history = append(o.history, entry)
	o.events = append(o.events, StatusChanged{
		OrderID:    o.id,
		Number:     o.number,
		From:       from,
		To:         to,
		Actor:      actor,
		Note:       note,
		OccurredAt: at,
	})
}

func (o *Order) ensureOpen() error {
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: %s is %s", ErrOrderIsClosed, o.number, o.status)
	}
	return nil
}

func (o *Order) findItem(productID kernel.UUID) (int, bool) {
	idx := slices.IndexFunc(o.items, func(item *Item) bool {
		return item.productID.IsEqual(productID)
	})
	return idx, idx >= 0
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number Number) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setSchool(schoolID kernel.UUID) error {
	if err := schoolID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("school", err)
	}
	o.schoolID = schoolID
	return nil
}

func (o *Order) setExpectedDate(d kernel.Date) error {
	if err := d.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("expected date", err)
	}
	o.expectedDate = d
	return nil
}

func (o *Order) setDetails(d Details) error {
	if d.DeliveryType == UnknownDeliveryType {
		d.DeliveryType = Normal
	}
	if err := d.DeliveryType.Validate(); err != nil {
		return err
	}
	d.Responsible = strings.TrimSpace(d.Responsible)
	if d.Responsible == "" {
		return errs.NewValueIsRequiredError("responsible")
	}
	o.details = d
	return nil
}

func validateInstant(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("timestamp")
	}
	return nil
}
