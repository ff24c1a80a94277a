package http

import (
	"errors"
	"net/http"

	"depot/internal/core/domain/model/order"
	"depot/internal/core/domain/model/product"
	"depot/internal/core/domain/model/school"
	"depot/internal/core/domain/services"
	"depot/internal/core/ports"
	"depot/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps an application error to the HTTP status reported to the
// client. Anything not recognised is an internal error.
func statusOf(err error) int {
	switch {
	case errors.Is(err, order.ErrEmptyOrder):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrAllocationExhausted):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists),
		errors.Is(err, ports.ErrDuplicateOrderNumber),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderIsClosed),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, product.ErrNotEnoughStock),
		errors.Is(err, product.ErrMovementIsNotRevertible):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, school.ErrSchoolIsInactive),
		errors.Is(err, product.ErrProductIsInactive):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an Error body. Internal errors are logged by
// the request logger and not echoed to the client.
func respondError(ctx echo.Context, err error, fallback string) error {
	status := statusOf(err)
	body := Error{Code: status, Message: err.Error()}

	if status == http.StatusInternalServerError {
		body.Message = fallback
		ctx.Set(requestErrorKey, err)
	}

	var shortage *services.InsufficientStockError
	if errors.As(err, &shortage) {
		body.Shortfalls = make([]Shortfall, 0, len(shortage.Shortfalls))
		for _, s := range shortage.Shortfalls {
			body.Shortfalls = append(body.Shortfalls, Shortfall{
				ProductId: s.ProductID.Value(),
				Sku:       s.SKU,
				Name:      s.Name,
				Requested: s.Requested,
				Available: s.Available,
				Missing:   s.Missing(),
			})
		}
	}

	return ctx.JSON(status, body)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
