package product

import (
	"fmt"
	"strings"
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"
)

// CountAdjustment is the outcome of reconciling a product with a physical
// stock count.
type CountAdjustment struct {
	Previous int
	Counted  int

	// Movement is nil when the count matched the balance.
	Movement *Movement
}

// Difference is the signed change the count applied to stock.
func (a CountAdjustment) Difference() int {
	return a.Counted - a.Previous
}

// AdjustTo sets the balance to counted and returns the adjustment movement
// that accounts for the difference. The note of the movement keeps both
// balances so the ledger explains the count.
func (p *Product) AdjustTo(movementID kernel.UUID, counted int, note, actor string, at time.Time) (CountAdjustment, error) {
	if counted < 0 {
		return CountAdjustment{}, errs.NewValueIsOutOfRangeError("counted stock", counted, 0, "unbounded")
	}

	adjustment := CountAdjustment{Previous: p.stock, Counted: counted}
	diff := adjustment.Difference()
	if diff == 0 {
		return adjustment, nil
	}

	kind, quantity := Inbound, diff
	if diff < 0 {
		kind, quantity = Outbound, -diff
	}

	movementNote := fmt.Sprintf("stock count %d -> %d", p.stock, counted)
	if note = strings.TrimSpace(note); note != "" {
		movementNote += ": " + note
	}

	m, err := NewMovement(movementID, p.id, kind, quantity, ReasonAdjustment, movementNote, actor, at)
	if err != nil {
		return CountAdjustment{}, err
	}
	if err = p.Apply(m); err != nil {
		return CountAdjustment{}, err
	}

	adjustment.Movement = &m
	return adjustment, nil
}
