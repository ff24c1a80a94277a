package ports

import (
	"context"

	"depot/internal/core/domain/model/kernel"
)

// EventPublisher delivers committed domain events to other systems.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.Event) error
}
