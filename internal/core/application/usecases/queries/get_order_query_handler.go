package queries

import (
	"context"
	"database/sql"
	"errors"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"
	"depot/internal/core/domain/model/product"
	"depot/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order straight from the tables, bypassing
// the aggregate.
type GetOrderQueryHandler struct {
	db    *gorm.DB
	clock kernel.Clock
}

// NewGetOrderQueryHandler creates the handler. The clock decides which day
// is today when the overdue flag is computed.
func NewGetOrderQueryHandler(db *gorm.DB, clock kernel.Clock) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, clock: clock}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	resp, err := h.readOrder(db, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.Items, err = h.readItems(db, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}
	for _, item := range resp.Items {
		resp.TotalQuantity += item.Requested
	}

	if resp.History, err = h.readHistory(db, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	today := kernel.Today(h.clock)
	resp.Overdue = !resp.Status.IsTerminal() && resp.ExpectedDate.Before(today)
	return resp, nil
}

func (h GetOrderQueryHandler) readOrder(db *gorm.DB, id kernel.UUID) (GetOrderQueryResponse, error) {
	var (
		resp                 GetOrderQueryResponse
		orderID, schoolID    uuid.UUID
		status, deliveryType string
		expected, actual     sql.NullTime
	)

	err := db.Raw(`
		SELECT
			o.id,
			o.number,
			o.school_id,
			s.name,
			o.status,
			o.delivery_type,
			o.responsible,
			o.driver,
			o.vehicle,
			o.notes,
			o.expected_date,
			o.actual_delivery_date,
			o.created_by,
			o.created_at
		FROM orders o
		JOIN schools s ON s.id = o.school_id
		WHERE o.id = ?
	`, id.Value()).Row().Scan(
		&orderID,
		&resp.Number,
		&schoolID,
		&resp.SchoolName,
		&status,
		&deliveryType,
		&resp.Responsible,
		&resp.Driver,
		&resp.Vehicle,
		&resp.Notes,
		&expected,
		&actual,
		&resp.CreatedBy,
		&resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", id.String())
		}
		return GetOrderQueryResponse{}, err
	}

	var convErr error
	resp.ID, convErr = storedUUID(orderID)
	if convErr != nil {
		return GetOrderQueryResponse{}, convErr
	}
	if resp.SchoolID, convErr = storedUUID(schoolID); convErr != nil {
		return GetOrderQueryResponse{}, convErr
	}
	if resp.Status, convErr = order.ParseStatus(status); convErr != nil {
		return GetOrderQueryResponse{}, convErr
	}
	if resp.DeliveryType, convErr = order.ParseDeliveryType(deliveryType); convErr != nil {
		return GetOrderQueryResponse{}, convErr
	}
	resp.ExpectedDate = storedDate(expected)
	resp.ActualDeliveryDate = storedDate(actual)
	return resp, nil
}

func (h GetOrderQueryHandler) readItems(db *gorm.DB, orderID kernel.UUID) ([]OrderItemView, error) {
	rows, err := db.Raw(`
		SELECT
			i.id,
			i.product_id,
			p.sku,
			p.name,
			p.unit,
			i.requested,
			i.delivered,
			i.note
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ?
		ORDER BY i.position
	`, orderID.Value()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var (
			item          OrderItemView
			id, productID uuid.UUID
			unit          string
		)
		if err = rows.Scan(&id, &productID, &item.SKU, &item.ProductName, &unit,
			&item.Requested, &item.Delivered, &item.Note); err != nil {
			return nil, err
		}

		if item.ID, err = storedUUID(id); err != nil {
			return nil, err
		}
		if item.ProductID, err = storedUUID(productID); err != nil {
			return nil, err
		}
		item.Unit = product.Unit(unit)
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (h GetOrderQueryHandler) readHistory(db *gorm.DB, orderID kernel.UUID) ([]HistoryEntryView, error) {
	rows, err := db.Raw(`
		SELECT previous_status, new_status, actor, note, occurred_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY position DESC
	`, orderID.Value()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]HistoryEntryView, 0)
	for rows.Next() {
		var (
			entry          HistoryEntryView
			previous, next string
		)
		if err = rows.Scan(&previous, &next, &entry.Actor, &entry.Note, &entry.OccurredAt); err != nil {
			return nil, err
		}

		if entry.Previous, err = storedStatus(previous); err != nil {
			return nil, err
		}
		if entry.Next, err = storedStatus(next); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}
