package product_test

import (
	"testing"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/product"
	"depot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_AdjustTo(t *testing.T) {
	t.Run("should record a shortage found by the count", func(t *testing.T) {
		p := newNotebook(t, 12)
		id := kernel.NewUUID()

		adjustment, err := p.AdjustTo(id, 9, "water damage", "maria", at)

		require.NoError(t, err)
		assert.Equal(t, 12, adjustment.Previous)
		assert.Equal(t, 9, adjustment.Counted)
		assert.Equal(t, -3, adjustment.Difference())
		assert.Equal(t, 9, p.Stock())

		require.NotNil(t, adjustment.Movement)
		m := adjustment.Movement
		assert.Equal(t, id, m.ID())
		assert.Equal(t, product.Outbound, m.Kind())
		assert.Equal(t, 3, m.Quantity())
		assert.Equal(t, product.ReasonAdjustment, m.Reason())
		assert.Equal(t, "stock count 12 -> 9: water damage", m.Note())
		assert.Equal(t, "maria", m.Actor())
	})

	t.Run("should record a surplus found by the count", func(t *testing.T) {
		p := newNotebook(t, 4)

		adjustment, err := p.AdjustTo(kernel.NewUUID(), 10, "", "maria", at)

		require.NoError(t, err)
		assert.Equal(t, 6, adjustment.Difference())
		require.NotNil(t, adjustment.Movement)
		assert.Equal(t, product.Inbound, adjustment.Movement.Kind())
		assert.Equal(t, 6, adjustment.Movement.Quantity())
		assert.Equal(t, "stock count 4 -> 10", adjustment.Movement.Note())
		assert.Equal(t, 10, p.Stock())
	})

	t.Run("should not move stock when the count matches", func(t *testing.T) {
		p := newNotebook(t, 7)

		adjustment, err := p.AdjustTo(kernel.NewUUID(), 7, "", "maria", at)

		require.NoError(t, err)
		assert.Zero(t, adjustment.Difference())
		assert.Nil(t, adjustment.Movement)
		assert.Equal(t, 7, p.Stock())
	})

	t.Run("should reject a negative count", func(t *testing.T) {
		p := newNotebook(t, 7)

		_, err := p.AdjustTo(kernel.NewUUID(), -1, "", "maria", at)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 7, p.Stock())
	})
}
