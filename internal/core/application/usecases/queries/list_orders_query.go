package queries

import (
	"errors"
	"fmt"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New("ListOrdersQuery must be created via NewListOrdersQuery constructor")

// OrderFilter narrows ListOrdersQuery. Zero fields do not filter.
type OrderFilter struct {
	Status       order.Status
	DeliveryType order.DeliveryType
	SchoolID     kernel.UUID
	ExpectedFrom kernel.Date
	ExpectedTo   kernel.Date
	OnlyOverdue  bool
}

// ListOrdersQuery lists order summaries for the dashboard.
//
// Example:
//
//	query, err := NewListOrdersQuery(OrderFilter{Status: order.InTransit})
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
//	fmt.Printf("%d in transit, %d overdue\n", len(resp.Orders), resp.Overdue)
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	filter OrderFilter

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(filter OrderFilter) (ListOrdersQuery, error) {
	var problems []error
	if filter.Status != order.Unknown {
		problems = append(problems, filter.Status.Validate())
	}
	if filter.DeliveryType != order.UnknownDeliveryType {
		problems = append(problems, filter.DeliveryType.Validate())
	}
	if !filter.ExpectedFrom.IsZero() && !filter.ExpectedTo.IsZero() && filter.ExpectedTo.Before(filter.ExpectedFrom) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"expected date range is invalid",
			fmt.Errorf("%s is before %s", filter.ExpectedTo, filter.ExpectedFrom),
		))
	}
	if err := errors.Join(problems...); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() OrderFilter {
	return q.filter
}

// ListOrdersQueryResponse holds the filtered summaries, ordered by expected
// date and number. CountByStatus and Overdue cover every stored order
// regardless of the filter.
type ListOrdersQueryResponse struct {
	Orders        []OrderSummary
	CountByStatus map[order.Status]int
	Overdue       int
}

type OrderSummary struct {
	ID                 kernel.UUID
	Number             string
	SchoolID           kernel.UUID
	SchoolName         string
	Status             order.Status
	DeliveryType       order.DeliveryType
	Responsible        string
	ExpectedDate       kernel.Date
	ActualDeliveryDate kernel.Date
	ItemCount          int
	TotalQuantity      int
	Overdue            bool
}
