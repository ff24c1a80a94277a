package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/product"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultMovementsLimit caps ListProductMovementsQuery when no limit is given.
const DefaultMovementsLimit = 100

var ErrListProductMovementsQueryIsNotConstructed = errors.New(
	"ListProductMovementsQuery must be created via NewListProductMovementsQuery constructor",
)

// ListProductMovementsQuery reads the stock ledger of one product, newest
// entry first.
type ListProductMovementsQuery struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	limit     int

	guard guard.ConstructorGuard
}

// NewListProductMovementsQuery builds the query. A limit of 0 means
// DefaultMovementsLimit.
func NewListProductMovementsQuery(productID kernel.UUID, limit int) (ListProductMovementsQuery, error) {
	var problems []error
	if err := productID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("product id", err))
	}
	if limit < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("limit is invalid", fmt.Errorf("%d is negative", limit)))
	}
	if err := errors.Join(problems...); err != nil {
		return ListProductMovementsQuery{}, err
	}

	if limit == 0 {
		limit = DefaultMovementsLimit
	}
	return ListProductMovementsQuery{productID: productID, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListProductMovementsQuery) Validate() error {
	return q.guard.Validate(ErrListProductMovementsQueryIsNotConstructed)
}

type MovementView struct {
	ID         kernel.UUID
	Kind       product.MovementKind
	Quantity   int
	Reason     product.Reason
	Note       string
	Actor      string
	OccurredAt time.Time
}

type ListProductMovementsQueryHandler struct {
	db *gorm.DB
}

func NewListProductMovementsQueryHandler(db *gorm.DB) ListProductMovementsQueryHandler {
	return ListProductMovementsQueryHandler{db: db}
}

// Handle fails with *errs.ObjectNotFoundError when the product does not
// exist, so an empty ledger and a wrong id are told apart.
func (h ListProductMovementsQueryHandler) Handle(
	ctx context.Context,
	query ListProductMovementsQuery,
) ([]MovementView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var found int64
	if err := db.Table("products").Where("id = ?", query.productID.Value()).Count(&found).Error; err != nil {
		return nil, err
	}
	if found == 0 {
		return nil, errs.NewObjectNotFoundError("product", query.productID.String())
	}

	rows, err := db.Raw(`
		SELECT id, kind, quantity, reason, note, actor, occurred_at
		FROM stock_movements
		WHERE product_id = ?
		ORDER BY occurred_at DESC, id
		LIMIT ?
	`, query.productID.Value(), query.limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := make([]MovementView, 0)
	for rows.Next() {
		var (
			view         MovementView
			id           uuid.UUID
			kind, reason string
		)
		if err = rows.Scan(&id, &kind, &view.Quantity, &reason, &view.Note, &view.Actor, &view.OccurredAt); err != nil {
			return nil, err
		}

		if view.ID, err = storedUUID(id); err != nil {
			return nil, err
		}
		view.Kind = product.MovementKind(kind)
		view.Reason = product.Reason(reason)
		movements = append(movements, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return movements, nil
}
