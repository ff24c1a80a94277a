package order

import (
	"fmt"

	"depot/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery order.
//
// State transitions under the strict policy:
//
//	Planned ──> Preparing ──> InTransit ──> Delivered
//	   │            │             │
//	   └────────────┴─────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown is the zero value and is never a valid order status. It is also
	// used as the "previous" status of the entry recorded at creation.
	Unknown Status = iota

	// Planned is the initial status of every order.
	Planned

	// Preparing means goods are being separated at the depot.
	Preparing

	// InTransit means the goods left the depot.
	InTransit

	// Delivered is terminal and is reached only through delivery finalization.
	Delivered

	// Cancelled is terminal and reachable from every non-terminal status.
	Cancelled
)

// Status codes as stored in the database and exchanged over HTTP.
const (
	codePlanned   = "planned"
	codePreparing = "preparing"
	codeInTransit = "in_transit"
	codeDelivered = "delivered"
	codeCancelled = "cancelled"
)

func getStatusCodes() map[Status]string {
	//nolint:exhaustive // Unknown has no code
	return map[Status]string{
		Planned:   codePlanned,
		Preparing: codePreparing,
		InTransit: codeInTransit,
		Delivered: codeDelivered,
		Cancelled: codeCancelled,
	}
}

// AllStatuses lists valid statuses in workflow order.
func AllStatuses() []Status {
	return []Status{Planned, Preparing, InTransit, Delivered, Cancelled}
}

// ParseStatus maps a status code back to a Status.
func ParseStatus(code string) (Status, error) {
	for s, c := range getStatusCodes() {
		if c == code {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a known status", code))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getStatusCodes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the status code, or an empty string for Unknown.
func (s Status) String() string {
	return getStatusCodes()[s]
}

// IsTerminal reports whether no transition may leave s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// next returns the successor of s on the main workflow path.
func (s Status) next() Status {
	//nolint:exhaustive // only non-terminal statuses have a successor
	switch s {
	case Planned:
		return Preparing
	case Preparing:
		return InTransit
	case InTransit:
		return Delivered
	default:
		return Unknown
	}
}
