package queries

import (
	"context"
	"database/sql"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db    *gorm.DB
	clock kernel.Clock
}

func NewListOrdersQueryHandler(db *gorm.DB, clock kernel.Clock) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, clock: clock}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	today := kernel.Today(h.clock)

	orders, err := h.summaries(db, query.Filter(), today)
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	counts, err := h.countByStatus(db)
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	var overdue int64
	if err = db.Table("orders").
		Where("status IN ? AND expected_date < CAST(? AS date)", nonTerminalStatuses(), today.String()).
		Count(&overdue).Error; err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return ListOrdersQueryResponse{
		Orders:        orders,
		CountByStatus: counts,
		Overdue:       int(overdue),
	}, nil
}

func (h ListOrdersQueryHandler) summaries(db *gorm.DB, filter OrderFilter, today kernel.Date) ([]OrderSummary, error) {
	stmt := db.Table("orders AS o").
		Select(`
			o.id,
			o.number,
			o.school_id,
			s.name,
			o.status,
			o.delivery_type,
			o.responsible,
			o.expected_date,
			o.actual_delivery_date,
			count(i.id),
			coalesce(sum(i.requested), 0)`).
		Joins("JOIN schools s ON s.id = o.school_id").
		Joins("LEFT JOIN order_items i ON i.order_id = o.id").
		Group("o.id, s.name").
		Order("o.expected_date, o.number")

	if filter.Status != order.Unknown {
		stmt = stmt.Where("o.status = ?", filter.Status.String())
	}
	if filter.DeliveryType != order.UnknownDeliveryType {
		stmt = stmt.Where("o.delivery_type = ?", filter.DeliveryType.String())
	}
	if filter.SchoolID.Validate() == nil {
		stmt = stmt.Where("o.school_id = ?", filter.SchoolID.Value())
	}
	if !filter.ExpectedFrom.IsZero() {
		stmt = stmt.Where("o.expected_date >= CAST(? AS date)", filter.ExpectedFrom.String())
	}
	if !filter.ExpectedTo.IsZero() {
		stmt = stmt.Where("o.expected_date <= CAST(? AS date)", filter.ExpectedTo.String())
	}
	if filter.OnlyOverdue {
		stmt = stmt.Where("o.status IN ? AND o.expected_date < CAST(? AS date)", nonTerminalStatuses(), today.String())
	}

	rows, err := stmt.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummary, 0)
	for rows.Next() {
		var (
			summary              OrderSummary
			id, schoolID         uuid.UUID
			status, deliveryType string
			expected, actual     sql.NullTime
		)
		if err = rows.Scan(
			&id,
			&summary.Number,
			&schoolID,
			&summary.SchoolName,
			&status,
			&deliveryType,
			&summary.Responsible,
			&expected,
			&actual,
			&summary.ItemCount,
			&summary.TotalQuantity,
		); err != nil {
			return nil, err
		}

		if summary.ID, err = storedUUID(id); err != nil {
			return nil, err
		}
		if summary.SchoolID, err = storedUUID(schoolID); err != nil {
			return nil, err
		}
		if summary.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		if summary.DeliveryType, err = order.ParseDeliveryType(deliveryType); err != nil {
			return nil, err
		}
		summary.ExpectedDate = storedDate(expected)
		summary.ActualDeliveryDate = storedDate(actual)
		summary.Overdue = !summary.Status.IsTerminal() && summary.ExpectedDate.Before(today)
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// countByStatus reports every status, with zero for those no order has.
func (h ListOrdersQueryHandler) countByStatus(db *gorm.DB) (map[order.Status]int, error) {
	counts := make(map[order.Status]int, len(order.AllStatuses()))
	for _, s := range order.AllStatuses() {
		counts[s] = 0
	}

	var rows []struct {
		Status string
		Total  int
	}
	if err := db.Table("orders").
		Select("status, count(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		s, err := order.ParseStatus(row.Status)
		if err != nil {
			return nil, err
		}
		counts[s] = row.Total
	}
	return counts, nil
}
