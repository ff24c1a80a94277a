package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"
	"depot/internal/core/domain/model/product"
	"depot/internal/pkg/errs"
)

// ErrInsufficientStock is the sentinel behind InsufficientStockError.
var ErrInsufficientStock = errors.New("insufficient stock")

// Shortfall describes one product that cannot cover its line item.
type Shortfall struct {
	ProductID kernel.UUID
	SKU       string
	Name      string
	Requested int
	Available int
}

// Missing is how many units the depot lacks.
func (s Shortfall) Missing() int {
	return s.Requested - s.Available
}

// InsufficientStockError lists every under-stocked product of an order, not
// only the first one found.
type InsufficientStockError struct {
	OrderNumber string
	Shortfalls  []Shortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("%s (stock %d, requested %d, missing %d)", s.SKU, s.Available, s.Requested, s.Missing()))
	}
	return fmt.Sprintf("%s for order %s: %s", ErrInsufficientStock, e.OrderNumber, strings.Join(parts, "; "))
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// DeliveryFinalizer moves an order to Delivered and withdraws every line item
// from stock.
//
// Finalize checks everything before it mutates anything, so on error neither
// the order nor any product has changed:
//  1. the order has at least one item
//  2. the order may move to Delivered under the configured policy
//  3. every product covers its requested quantity
//
// It then builds one outbound delivery movement per item, applies it to the
// product and transitions the order. Persisting the result atomically is the
// caller's job.
//
// Example:
//
//	finalizer := services.NewDeliveryFinalizer(order.Strict)
//	movements, err := finalizer.Finalize(o, lockedProducts, "maria", "", clock.Now())
//	var shortage *services.InsufficientStockError
//	if errors.As(err, &shortage) {
//	    // report shortage.Shortfalls
//	}
type DeliveryFinalizer struct {
	policy order.TransitionPolicy
}

func NewDeliveryFinalizer(policy order.TransitionPolicy) DeliveryFinalizer {
	return DeliveryFinalizer{policy: policy}
}

// Finalize delivers o. products must contain every product referenced by
// o's items; callers load them under a row lock.
func (f DeliveryFinalizer) Finalize(
	o *order.Order,
	products []*product.Product,
	actor, note string,
	at time.Time,
) ([]product.Movement, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(actor) == "" {
		return nil, errs.NewValueIsRequiredError("actor")
	}
	items := o.Items()
	if len(items) == 0 {
		return nil, order.NewEmptyOrderError(o.Number())
	}
	if err := f.policy.Check(o.Status(), order.Delivered); err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]*product.Product, len(products))
	for _, p := range products {
		byID[p.ID()] = p
	}

	var shortfalls []Shortfall
	for _, item := range items {
		p, ok := byID[item.ProductID()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("product", item.ProductID())
		}
		if p.Stock() < item.Requested() {
			shortfalls = append(shortfalls, Shortfall{
				ProductID: p.ID(),
				SKU:       p.SKU(),
				Name:      p.Name(),
				Requested: item.Requested(),
				Available: p.Stock(),
			})
		}
	}
	if len(shortfalls) > 0 {
		return nil, &InsufficientStockError{OrderNumber: o.Number().String(), Shortfalls: shortfalls}
	}

	movementNote := fmt.Sprintf("delivery of order %s", o.Number())
	movements := make([]product.Movement, 0, len(items))
	for _, item := range items {
		m, err := product.NewMovement(
			kernel.NewUUID(),
			item.ProductID(),
			product.Outbound,
			item.Requested(),
			product.ReasonDelivery,
			movementNote,
			actor,
			at,
		)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}

	for _, m := range movements {
		if err := byID[m.ProductID()].Apply(m); err != nil {
			return nil, err
		}
	}

	if err := o.Transition(f.policy, order.Delivered, actor, note, at); err != nil {
		return nil, err
	}
	return movements, nil
}
