package commands

import (
	"errors"
	"fmt"
	"strings"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/product"
	"depot/internal/pkg/errs"
	"depot/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand registers a product. A positive initial stock is
// recorded as an inbound adjustment so the ledger explains the balance.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID    kernel.UUID
	sku          string
	name         string
	unit         product.Unit
	minStock     int
	initialStock int
	actor        string

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(
	productID kernel.UUID,
	sku, name string,
	unit product.Unit,
	minStock, initialStock int,
	actor string,
) (CreateProductCommand, error) {
	var problems []error
	if err := productID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if strings.TrimSpace(sku) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("sku"))
	}
	if strings.TrimSpace(name) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("name"))
	}
	if err := unit.Validate(); err != nil {
		problems = append(problems, err)
	}
	if minStock < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("minimum stock", minStock, 0, "unbounded"))
	}
	if initialStock < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("initial stock is invalid", fmt.Errorf("%d is negative", initialStock)))
	}
	if strings.TrimSpace(actor) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("actor"))
	}
	if err := errors.Join(problems...); err != nil {
		return CreateProductCommand{}, err
	}

	return CreateProductCommand{
		productID:    productID,
		sku:          sku,
		name:         name,
		unit:         unit,
		minStock:     minStock,
		initialStock: initialStock,
		actor:        actor,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}
