package order

import (
	"strings"
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"
)

// HistoryEntry is one record of the status audit trail. Entries are never
// changed or removed once appended.
type HistoryEntry struct {
	id         kernel.UUID
	previous   Status
	next       Status
	actor      string
	note       string
	occurredAt time.Time
}

// RestoreHistoryEntry rebuilds an entry read from storage. previous is
// Unknown for the entry recorded when the order was created.
func RestoreHistoryEntry(id kernel.UUID, previous, next Status, actor, note string, occurredAt time.Time) (HistoryEntry, error) {
	if err := id.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := next.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if previous != Unknown {
		if err := previous.Validate(); err != nil {
			return HistoryEntry{}, err
		}
	}
	if occurredAt.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("occurred at")
	}
	return HistoryEntry{
		id:         id,
		previous:   previous,
		next:       next,
		actor:      actor,
		note:       note,
		occurredAt: occurredAt,
	}, nil
}

func (h HistoryEntry) ID() kernel.UUID {
	return h.id
}

// Previous is Unknown for the creation entry.
func (h HistoryEntry) Previous() Status {
	return h.previous
}

func (h HistoryEntry) Next() Status {
	return h.next
}

func (h HistoryEntry) Actor() string {
	return h.actor
}

func (h HistoryEntry) Note() string {
	return h.note
}

func (h HistoryEntry) OccurredAt() time.Time {
	return h.occurredAt
}

func validateActor(actor string) error {
	if strings.TrimSpace(actor) == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	return nil
}
