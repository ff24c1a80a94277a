package product

import (
	"errors"
	"fmt"
	"strings"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product was not built by
	// NewProduct or RestoreProduct.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrNotEnoughStock is returned when an outbound movement exceeds the
	// current balance.
	ErrNotEnoughStock = errors.New("not enough stock")

	// ErrMovementIsNotRevertible is returned when a delivery movement is
	// reverted. Its order stays delivered, so the units are not back.
	ErrMovementIsNotRevertible = errors.New("movement cannot be reverted")

	// ErrProductIsInactive is returned when stock of a deactivated product is
	// requested for an order.
	ErrProductIsInactive = errors.New("product is inactive")
)

// Product is an item kept at the depot together with its running balance.
type Product struct {
	id       kernel.UUID
	sku      string
	name     string
	unit     Unit
	minStock int
	stock    int
	active   bool

	isConstructed bool
}

// NewProduct registers an active product with an empty balance.
func NewProduct(id kernel.UUID, sku, name string, unit Unit, minStock int) (*Product, error) {
	p := &Product{active: true, isConstructed: true}

	if err := errors.Join(
		p.setID(id),
		p.setSKU(sku),
		p.setName(name),
		p.setUnit(unit),
		p.setMinStock(minStock),
	); err != nil {
		return nil, err
	}
	return p, nil
}

// RestoreProduct rebuilds a stored product.
func RestoreProduct(id kernel.UUID, sku, name string, unit Unit, minStock, stock int, active bool) (*Product, error) {
	p, err := NewProduct(id, sku, name, unit, minStock)
	if err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, errs.NewValueIsOutOfRangeError("stock", stock, 0, "unbounded")
	}
	p.stock = stock
	p.active = active
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) SKU() string {
	return p.sku
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Unit() Unit {
	return p.unit
}

func (p *Product) MinStock() int {
	return p.minStock
}

// Stock is the current balance.
func (p *Product) Stock() int {
	return p.stock
}

func (p *Product) IsActive() bool {
	return p.active
}

func (p *Product) StockStatus() StockStatus {
	return StockStatusOf(p.stock, p.minStock)
}

// IsLow reports whether the balance reached the minimum.
func (p *Product) IsLow() bool {
	return p.stock <= p.minStock
}

// Deactivate hides the product from new orders. Its balance is kept.
func (p *Product) Deactivate() {
	p.active = false
}

func (p *Product) Activate() {
	p.active = true
}

// Apply changes the balance by the movement's delta.
func (p *Product) Apply(m Movement) error {
	if !m.ProductID().IsEqual(p.id) {
		return errs.NewValueIsInvalidErrorWithCause(
			"movement is invalid",
			fmt.Errorf("movement of product %s applied to %s", m.ProductID(), p.id),
		)
	}
	return p.adjust(m.Delta())
}

// Revert undoes a movement previously applied. Reverting an inbound movement
// whose units already left the depot fails with ErrNotEnoughStock, and
// delivery movements fail with ErrMovementIsNotRevertible.
func (p *Product) Revert(m Movement) error {
	if !m.ProductID().IsEqual(p.id) {
		return errs.NewValueIsInvalidErrorWithCause(
			"movement is invalid",
			fmt.Errorf("movement of product %s reverted on %s", m.ProductID(), p.id),
		)
	}
	if m.Reason() == ReasonDelivery {
		return fmt.Errorf("%w: %s belongs to a delivered order", ErrMovementIsNotRevertible, m.ID())
	}
	return p.adjust(-m.Delta())
}

func (p *Product) adjust(delta int) error {
	if p.stock+delta < 0 {
		return fmt.Errorf("%w: %s has %d, %d requested", ErrNotEnoughStock, p.sku, p.stock, -delta)
	}
	p.stock += delta
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	if len(sku) > 50 {
		return errs.NewValueIsOutOfRangeError("sku length", len(sku), 1, 50)
	}
	p.sku = sku
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setUnit(u Unit) error {
	if err := u.Validate(); err != nil {
		return err
	}
	p.unit = u
	return nil
}

func (p *Product) setMinStock(minStock int) error {
	if minStock < 0 {
		return errs.NewValueIsOutOfRangeError("minimum stock", minStock, 0, "unbounded")
	}
	p.minStock = minStock
	return nil
}
