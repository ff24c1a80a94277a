package product_test

import (
	"testing"
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/product"
	"depot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC)

func newNotebook(t *testing.T, stock int) *product.Product {
	t.Helper()

	p, err := product.RestoreProduct(kernel.NewUUID(), "CAD-001", "Caderno 96 folhas", product.UnitPiece, 10, stock, true)
	require.NoError(t, err)
	return p
}

func movement(t *testing.T, p *product.Product, kind product.MovementKind, qty int) product.Movement {
	t.Helper()

	m, err := product.NewMovement(kernel.NewUUID(), p.ID(), kind, qty, product.ReasonAdjustment, "", "maria", at)
	require.NoError(t, err)
	return m
}

func TestNewProduct(t *testing.T) {
	t.Run("should create active product with empty stock", func(t *testing.T) {
		p, err := product.NewProduct(kernel.NewUUID(), " LAP-002 ", "Lápis preto", product.UnitBox, 5)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, "LAP-002", p.SKU())
		assert.Equal(t, 0, p.Stock())
		assert.True(t, p.IsActive())
		assert.Equal(t, product.OutOfStock, p.StockStatus())
	})

	t.Run("should report every invalid field", func(t *testing.T) {
		_, err := product.NewProduct(kernel.UUID{}, "", "", product.Unit("XX"), -1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject negative restored stock", func(t *testing.T) {
		_, err := product.RestoreProduct(kernel.NewUUID(), "A", "A", product.UnitPiece, 0, -1, true)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestProduct_StockStatus(t *testing.T) {
	assert.Equal(t, product.OutOfStock, newNotebook(t, 0).StockStatus())
	assert.Equal(t, product.LowStock, newNotebook(t, 10).StockStatus())
	assert.Equal(t, product.NormalStock, newNotebook(t, 11).StockStatus())
	assert.True(t, newNotebook(t, 10).IsLow())
	assert.False(t, newNotebook(t, 11).IsLow())
}

func TestProduct_Apply(t *testing.T) {
	t.Run("should add inbound and subtract outbound", func(t *testing.T) {
		p := newNotebook(t, 3)

		require.NoError(t, p.Apply(movement(t, p, product.Inbound, 7)))
		assert.Equal(t, 10, p.Stock())

		require.NoError(t, p.Apply(movement(t, p, product.Outbound, 10)))
		assert.Equal(t, 0, p.Stock())
	})

	t.Run("should never go negative", func(t *testing.T) {
		p := newNotebook(t, 3)

		err := p.Apply(movement(t, p, product.Outbound, 5))

		assert.ErrorIs(t, err, product.ErrNotEnoughStock)
		assert.Equal(t, 3, p.Stock())
	})

	t.Run("should refuse movement of another product", func(t *testing.T) {
		p := newNotebook(t, 3)
		other := newNotebook(t, 3)

		assert.ErrorIs(t, p.Apply(movement(t, other, product.Inbound, 1)), errs.ErrValueIsInvalid)
	})
}

func TestProduct_Revert(t *testing.T) {
	t.Run("should restore balance", func(t *testing.T) {
		p := newNotebook(t, 3)
		out := movement(t, p, product.Outbound, 2)
		require.NoError(t, p.Apply(out))

		require.NoError(t, p.Revert(out))

		assert.Equal(t, 3, p.Stock())
	})

	t.Run("should refuse to revert consumed inbound units", func(t *testing.T) {
		p := newNotebook(t, 0)
		in := movement(t, p, product.Inbound, 5)
		require.NoError(t, p.Apply(in))
		require.NoError(t, p.Apply(movement(t, p, product.Outbound, 4)))

		assert.ErrorIs(t, p.Revert(in), product.ErrNotEnoughStock)
		assert.Equal(t, 1, p.Stock())
	})

	t.Run("should refuse to revert a delivery", func(t *testing.T) {
		p := newNotebook(t, 5)
		out, err := product.NewMovement(kernel.NewUUID(), p.ID(), product.Outbound, 3, product.ReasonDelivery, "", "joao", at)
		require.NoError(t, err)
		require.NoError(t, p.Apply(out))

		assert.ErrorIs(t, p.Revert(out), product.ErrMovementIsNotRevertible)
		assert.Equal(t, 2, p.Stock())
	})
}

func TestNewMovement(t *testing.T) {
	t.Run("should compute signed delta", func(t *testing.T) {
		p := newNotebook(t, 0)

		assert.Equal(t, 4, movement(t, p, product.Inbound, 4).Delta())
		assert.Equal(t, -4, movement(t, p, product.Outbound, 4).Delta())
	})

	t.Run("should validate fields", func(t *testing.T) {
		_, err := product.NewMovement(kernel.NewUUID(), kernel.NewUUID(), "sideways", 0, "gift", "", "", time.Time{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "movement kind is invalid")
		assert.Contains(t, err.Error(), "quantity is invalid")
		assert.Contains(t, err.Error(), "reason is invalid")
		assert.Contains(t, err.Error(), "occurred at")
	})
}

func TestParseUnit(t *testing.T) {
	u, err := product.ParseUnit("pct")
	require.NoError(t, err)
	assert.Equal(t, product.UnitPackage, u)

	u, err = product.ParseUnit("")
	require.NoError(t, err)
	assert.Equal(t, product.UnitPiece, u)

	_, err = product.ParseUnit("TON")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
