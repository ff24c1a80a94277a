package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"
	"depot/internal/core/ports"

	"go.uber.org/zap"
)

// DefaultMaxAllocationAttempts bounds how many candidates are tried for one
// order before giving up.
const DefaultMaxAllocationAttempts = 10

// AllocationTx is the part of a unit of work the allocator needs.
type AllocationTx interface {
	SavePointer
	OrderRepoFactory
}

// OrderNumberAllocator assigns the next YYYYMMDDSSSS number of a day.
//
// It locks the day's orders, reads the highest stored number and tries its
// sequence plus one. If storing the order hits the unique constraint, the
// transaction is rolled back to a savepoint and the next sequence is tried.
// The day is not scanned again: a collision already proves the candidate is
// taken. After maxAttempts collisions it fails with
// *order.AllocationExhaustedError.
type OrderNumberAllocator struct {
	maxAttempts int
	logger      *zap.Logger
}

func NewOrderNumberAllocator(maxAttempts int, logger *zap.Logger) OrderNumberAllocator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAllocationAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return OrderNumberAllocator{
		maxAttempts: maxAttempts,
		logger:      logger.With(zap.String("component", "order_number_allocator")),
	}
}

// Allocate finds a free number on day and calls store with it. store must
// persist the order inside tx and report a taken number with an error
// wrapping ports.ErrDuplicateOrderNumber; any other error aborts allocation.
// The number store accepted is returned.
func (a OrderNumberAllocator) Allocate(
	ctx context.Context,
	tx AllocationTx,
	day kernel.Date,
	store func(order.Number) error,
) (order.Number, error) {
	seq, err := a.firstCandidate(ctx, tx.OrderRepository(), day)
	if err != nil {
		return order.Number{}, err
	}

	var (
		lastCandidate string
		lastErr       error
	)
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		number, err := order.NewNumber(day, seq)
		if err != nil {
			return order.Number{}, order.NewAllocationExhaustedError(day, attempt-1, lastCandidate, err)
		}
		lastCandidate = number.String()

		savepoint := fmt.Sprintf("order_number_attempt_%d", attempt)
		if err = tx.SavePoint(ctx, savepoint); err != nil {
			return order.Number{}, err
		}

		err = store(number)
		if err == nil {
			return number, nil
		}
		if !errors.Is(err, ports.ErrDuplicateOrderNumber) {
			return order.Number{}, err
		}

		lastErr = err
		a.logger.Info("order number taken, trying next",
			zap.String("candidate", lastCandidate),
			zap.Int("attempt", attempt),
		)
		if err = tx.RollbackTo(ctx, savepoint); err != nil {
			return order.Number{}, err
		}
		seq++
	}

	exhausted := order.NewAllocationExhaustedError(day, a.maxAttempts, lastCandidate, lastErr)
	a.logger.Error("order number allocation exhausted",
		zap.String("day", day.String()),
		zap.Int("attempts", a.maxAttempts),
		zap.String("last_candidate", lastCandidate),
	)
	return order.Number{}, exhausted
}

func (a OrderNumberAllocator) firstCandidate(ctx context.Context, repo ports.OrderRepository, day kernel.Date) (int, error) {
	latest, found, err := repo.LockLatestNumberOn(ctx, day)
	if err != nil {
		return 0, err
	}
	if !found {
		return order.MinSequence, nil
	}

	if !strings.HasPrefix(latest, day.Compact()) {
		a.logger.Warn("latest order number belongs to another day, falling back to count",
			zap.String("day", day.String()),
			zap.String("number", latest),
		)
		return a.countCandidate(ctx, repo, day)
	}

	seq, err := order.SequenceSuffix(latest)
	if err == nil {
		return seq + 1, nil
	}

	a.logger.Warn("latest order number of the day is corrupt, falling back to count",
		zap.String("day", day.String()),
		zap.String("number", latest),
		zap.Error(err),
	)
	return a.countCandidate(ctx, repo, day)
}

func (a OrderNumberAllocator) countCandidate(ctx context.Context, repo ports.OrderRepository, day kernel.Date) (int, error) {
	count, err := repo.CountNumberedOn(ctx, day)
	if err != nil {
		return 0, err
	}
	return count + 1, nil
}
