package queries

import (
	"errors"
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"
	"depot/internal/core/domain/model/product"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")

// GetOrderQuery reads one order with its items and status history.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the full view of an order. ActualDeliveryDate is
// the zero Date until the order is delivered. History is newest first.
type GetOrderQueryResponse struct {
	ID                 kernel.UUID
	Number             string
	SchoolID           kernel.UUID
	SchoolName         string
	Status             order.Status
	DeliveryType       order.DeliveryType
	Responsible        string
	Driver             string
	Vehicle            string
	Notes              string
	ExpectedDate       kernel.Date
	ActualDeliveryDate kernel.Date
	CreatedBy          string
	CreatedAt          time.Time
	Overdue            bool
	TotalQuantity      int
	Items              []OrderItemView
	History            []HistoryEntryView
}

type OrderItemView struct {
	ID          kernel.UUID
	ProductID   kernel.UUID
	SKU         string
	ProductName string
	Unit        product.Unit
	Requested   int
	Delivered   int
	Note        string
}

type HistoryEntryView struct {
	Previous   order.Status
	Next       order.Status
	Actor      string
	Note       string
	OccurredAt time.Time
}
