package queries

import (
	"database/sql"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// nonTerminalStatuses are the status codes an overdue order can have.
func nonTerminalStatuses() []string {
	return []string{order.Planned.String(), order.Preparing.String(), order.InTransit.String()}
}

// storedStatus reads a status column. The empty code is the previous
// status of the creation entry and maps to order.Unknown.
func storedStatus(code string) (order.Status, error) {
	if code == "" {
		return order.Unknown, nil
	}
	return order.ParseStatus(code)
}

func storedDate(t sql.NullTime) kernel.Date {
	if !t.Valid {
		return kernel.Date{}
	}
	return kernel.DateOf(t.Time)
}

func storedUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromGoogle(id)
}
