package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"depot/internal/adapters/out/postgres/pgerr"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"
	"depot/internal/core/ports"
	"depot/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	numberConstraint = "orders_number_key"

	// numberLockClass namespaces the advisory locks taken per day by
	// LockLatestNumberOn.
	numberLockClass = 0x6f72
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order together with its items and history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if constraint, ok := pgerr.UniqueViolation(err); ok && (constraint == numberConstraint || constraint == "") {
			return fmt.Errorf("%w: %s: %w", ports.ErrDuplicateOrderNumber, dto.Number, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the scalar fields, replaces the items and appends the history
// entries that are not stored yet.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	tx := r.db.WithContext(ctx)

	result := tx.Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":               dto.Status,
		"delivery_type":        dto.DeliveryType,
		"responsible":          dto.Responsible,
		"driver":               dto.Driver,
		"vehicle":              dto.Vehicle,
		"notes":                dto.Notes,
		"expected_date":        dto.ExpectedDate,
		"actual_delivery_date": dto.ActualDeliveryDate,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if err := r.saveItems(tx, dto); err != nil {
		return err
	}

	if len(dto.History) > 0 {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.History).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// saveItems deletes dropped lines before upserting the others so that a
// product removed and added again does not hit the (order, product) key.
func (r *GormOrderRepository) saveItems(tx *gorm.DB, dto OrderDTO) error {
	keep := make([]uuid.UUID, 0, len(dto.Items))
	for _, item := range dto.Items {
		keep = append(keep, item.ID)
	}

	stale := tx.Where("order_id = ?", dto.ID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&ItemDTO{}).Error; err != nil {
		return err
	}

	if len(dto.Items) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"requested", "delivered", "note", "position"}),
	}).Create(&dto.Items).Error
}

// Get loads an order with its items and history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate loads an order and holds its row lock until the transaction
// ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) get(tx *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := tx.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Value()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes an order. Items and history are removed by the foreign
// keys' ON DELETE CASCADE.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Value())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

// LockLatestNumberOn serializes number allocation for day and returns the
// highest number whose YYYYMMDD prefix is day. Orders entered on day with a
// number of another day are not part of its sequence.
//
// A transaction-scoped advisory lock keyed by the day is taken first. Row
// locks alone are not enough: under READ COMMITTED a waiter on
// SELECT ... FOR UPDATE re-reads the row it was blocked on, not the new
// highest row inserted meanwhile. The advisory lock makes the second
// allocator see the first one's order once it commits. The highest row is
// still locked so that it cannot be deleted or renumbered underneath.
func (r *GormOrderRepository) LockLatestNumberOn(ctx context.Context, day kernel.Date) (string, bool, error) {
	if err := day.Validate(); err != nil {
		return "", false, err
	}

	tx := r.db.WithContext(ctx)
	if err := tx.Exec(
		"SELECT pg_advisory_xact_lock(CAST(? AS integer), CAST(? AS integer))",
		numberLockClass, dayLockKey(day),
	).Error; err != nil {
		return "", false, err
	}

	var latest []string
	err := tx.Model(&OrderDTO{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("number LIKE ?", numberPrefixPattern(day)).
		Order("number DESC").
		Limit(1).
		Pluck("number", &latest).Error
	if err != nil {
		return "", false, err
	}
	if len(latest) == 0 {
		return "", false, nil
	}
	return latest[0], true, nil
}

// CountNumberedOn counts the orders whose number carries day.
func (r *GormOrderRepository) CountNumberedOn(ctx context.Context, day kernel.Date) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("number LIKE ?", numberPrefixPattern(day)).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func numberPrefixPattern(day kernel.Date) string {
	return day.Compact() + "%"
}

// dayLockKey turns a day into YYYYMMDD as an integer.
func dayLockKey(day kernel.Date) int {
	key, _ := strconv.Atoi(day.Compact())
	return key
}
