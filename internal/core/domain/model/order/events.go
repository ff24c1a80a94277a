package order

import (
	"time"

	"depot/internal/core/domain/model/kernel"
)

// StatusChangedEventName is the name under which StatusChanged is published.
const StatusChangedEventName = "order.status_changed"

// StatusChanged is recorded every time an order moves to another status,
// including the initial Planned status.
type StatusChanged struct {
	OrderID    kernel.UUID
	Number     Number
	From       Status
	To         Status
	Actor      string
	Note       string
	OccurredAt time.Time
}

func (e StatusChanged) EventName() string {
	return StatusChangedEventName
}

// EventKey keeps the events of one order on the same partition.
func (e StatusChanged) EventKey() string {
	return e.Number.String()
}
