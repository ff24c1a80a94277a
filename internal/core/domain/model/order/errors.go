package order

import (
	"errors"
	"fmt"

	"depot/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built by
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInvalidTransition is the sentinel behind InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrEmptyOrder is the sentinel behind EmptyOrderError.
	ErrEmptyOrder = errors.New("order has no items")

	// ErrAllocationExhausted is the sentinel behind AllocationExhaustedError.
	ErrAllocationExhausted = errors.New("order number allocation exhausted")

	// ErrOrderIsClosed is returned when items of a delivered or cancelled
	// order are modified.
	ErrOrderIsClosed = errors.New("order is closed")
)

// InvalidTransitionError reports a rejected status change. The order is left
// untouched when it is returned.
type InvalidTransitionError struct {
	From   Status
	To     Status
	Reason string
}

func NewInvalidTransitionError(from, to Status, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Reason: reason}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s: %s", ErrInvalidTransition, statusLabel(e.From), statusLabel(e.To), e.Reason)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// EmptyOrderError rejects finalization of an order without line items.
type EmptyOrderError struct {
	Number string
}

func NewEmptyOrderError(number Number) *EmptyOrderError {
	return &EmptyOrderError{Number: number.String()}
}

func (e *EmptyOrderError) Error() string {
	return fmt.Sprintf("%s: %s", ErrEmptyOrder, e.Number)
}

func (e *EmptyOrderError) Unwrap() error {
	return ErrEmptyOrder
}

// AllocationExhaustedError is raised when no free order number could be
// stored for a day. It needs operator attention: it means sustained write
// contention or a corrupt sequence for that day.
type AllocationExhaustedError struct {
	Day           kernel.Date
	Attempts      int
	LastCandidate string
	Cause         error
}

func NewAllocationExhaustedError(day kernel.Date, attempts int, lastCandidate string, cause error) *AllocationExhaustedError {
	return &AllocationExhaustedError{Day: day, Attempts: attempts, LastCandidate: lastCandidate, Cause: cause}
}

func (e *AllocationExhaustedError) Error() string {
	msg := fmt.Sprintf("%s: day %s, %d attempts, last candidate %s", ErrAllocationExhausted, e.Day, e.Attempts, e.LastCandidate)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *AllocationExhaustedError) Unwrap() error {
	return ErrAllocationExhausted
}

func statusLabel(s Status) string {
	if str := s.String(); str != "" {
		return str
	}
	return fmt.Sprintf("status(%d)", int(s))
}
