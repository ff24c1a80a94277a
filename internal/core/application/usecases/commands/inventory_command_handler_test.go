package commands_test

import (
	"testing"

	"depot/internal/core/application/usecases/commands"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/product"
	"depot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateProductCommand(t *testing.T) {
	_, err := commands.NewCreateProductCommand(kernel.NewUUID(), "", " ", product.Unit("XX"), -1, -2, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestCreateProductCommandHandler_Handle(t *testing.T) {
	t.Run("should record initial stock as adjustment", func(t *testing.T) {
		ctx := t.Context()
		uow, _, products, movements, _ := newMockUoW(ctx)

		cmd, err := commands.NewCreateProductCommand(kernel.NewUUID(), "LAP-HB", "Lápis HB", product.UnitBox, 10, 40, "ana")
		require.NoError(t, err)

		products.On("Add", ctx, mock.MatchedBy(func(p *product.Product) bool {
			return p.SKU() == "LAP-HB" && p.Stock() == 40 && p.IsActive()
		})).Return(nil).Once()
		movements.On("Add", ctx, mock.MatchedBy(func(ms []product.Movement) bool {
			return len(ms) == 1 &&
				ms[0].Kind() == product.Inbound &&
				ms[0].Reason() == product.ReasonAdjustment &&
				ms[0].Quantity() == 40 &&
				ms[0].OccurredAt().Equal(clock.At)
		})).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		h := commands.NewCreateProductCommandHandler(mockFactory{uow: uow}.inventory(), clock)
		require.NoError(t, h.Handle(ctx, cmd))

		products.AssertExpectations(t)
		movements.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should not record a movement without initial stock", func(t *testing.T) {
		ctx := t.Context()
		uow, _, products, movements, _ := newMockUoW(ctx)

		cmd, err := commands.NewCreateProductCommand(kernel.NewUUID(), "BOR-01", "Borracha", product.UnitPiece, 0, 0, "ana")
		require.NoError(t, err)

		products.On("Add", ctx, mock.Anything).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		h := commands.NewCreateProductCommandHandler(mockFactory{uow: uow}.inventory(), clock)
		require.NoError(t, h.Handle(ctx, cmd))

		movements.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("should report a taken sku", func(t *testing.T) {
		ctx := t.Context()
		uow, _, products, _, _ := newMockUoW(ctx)

		cmd, err := commands.NewCreateProductCommand(kernel.NewUUID(), "BOR-01", "Borracha", product.UnitPiece, 0, 0, "ana")
		require.NoError(t, err)

		products.On("Add", ctx, mock.Anything).Return(errs.NewObjectAlreadyExistsError("sku", "BOR-01")).Once()

		h := commands.NewCreateProductCommandHandler(mockFactory{uow: uow}.inventory(), clock)
		err = h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestRecordMovementCommandHandler_Handle(t *testing.T) {
	t.Run("inbound", func(t *testing.T) {
		ctx := t.Context()
		p := newProduct(t, 5, true)
		uow, _, products, movements, _ := newMockUoW(ctx)
		products.On("GetForUpdate", ctx, []kernel.UUID{p.ID()}).Return([]*product.Product{p}, nil).Once()
		products.On("Update", ctx, p).Return(nil).Once()
		movements.On("Add", ctx, mock.MatchedBy(func(ms []product.Movement) bool {
			return len(ms) == 1 && ms[0].Delta() == 20 && ms[0].Reason() == product.ReasonPurchase
		})).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewRecordMovementCommand(kernel.NewUUID(), p.ID(), product.Inbound, 20, product.ReasonPurchase, "NF 1234", "ana")
		require.NoError(t, err)

		h := commands.NewRecordMovementCommandHandler(mockFactory{uow: uow}.inventory(), clock)
		require.NoError(t, h.Handle(ctx, cmd))

		assert.Equal(t, 25, p.Stock())
		movements.AssertExpectations(t)
	})

	t.Run("outbound beyond stock", func(t *testing.T) {
		ctx := t.Context()
		p := newProduct(t, 5, true)
		uow, _, products, movements, _ := newMockUoW(ctx)
		products.On("GetForUpdate", ctx, []kernel.UUID{p.ID()}).Return([]*product.Product{p}, nil).Once()

		cmd, err := commands.NewRecordMovementCommand(kernel.NewUUID(), p.ID(), product.Outbound, 6, product.ReasonLoss, "", "ana")
		require.NoError(t, err)

		h := commands.NewRecordMovementCommandHandler(mockFactory{uow: uow}.inventory(), clock)
		err = h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, product.ErrNotEnoughStock)
		assert.Equal(t, 5, p.Stock())
		products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		movements.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("invalid command", func(t *testing.T) {
		_, err := commands.NewRecordMovementCommand(kernel.NewUUID(), kernel.NewUUID(), product.MovementKind("sideways"), 0, product.Reason("gift"), "", "")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRevertMovementCommandHandler_Handle(t *testing.T) {
	t.Run("reverting an inbound movement", func(t *testing.T) {
		ctx := t.Context()
		p := newProduct(t, 30, true)
		m, err := product.NewMovement(kernel.NewUUID(), p.ID(), product.Inbound, 20, product.ReasonPurchase, "", "ana", clock.At)
		require.NoError(t, err)

		uow, _, products, movements, _ := newMockUoW(ctx)
		movements.On("Get", ctx, m.ID()).Return(m, nil).Once()
		products.On("GetForUpdate", ctx, []kernel.UUID{p.ID()}).Return([]*product.Product{p}, nil).Once()
		products.On("Update", ctx, p).Return(nil).Once()
		movements.On("Delete", ctx, m.ID()).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewRevertMovementCommand(m.ID())
		require.NoError(t, err)

		h := commands.NewRevertMovementCommandHandler(mockFactory{uow: uow}.inventory())
		require.NoError(t, h.Handle(ctx, cmd))

		assert.Equal(t, 10, p.Stock())
		movements.AssertExpectations(t)
	})

	t.Run("reverting an inbound movement already consumed", func(t *testing.T) {
		ctx := t.Context()
		p := newProduct(t, 5, true)
		m, err := product.NewMovement(kernel.NewUUID(), p.ID(), product.Inbound, 20, product.ReasonPurchase, "", "ana", clock.At)
		require.NoError(t, err)

		uow, _, products, movements, _ := newMockUoW(ctx)
		movements.On("Get", ctx, m.ID()).Return(m, nil).Once()
		products.On("GetForUpdate", ctx, []kernel.UUID{p.ID()}).Return([]*product.Product{p}, nil).Once()

		cmd, err := commands.NewRevertMovementCommand(m.ID())
		require.NoError(t, err)

		h := commands.NewRevertMovementCommandHandler(mockFactory{uow: uow}.inventory())
		err = h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, product.ErrNotEnoughStock)
		movements.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("reverting a delivery movement", func(t *testing.T) {
		ctx := t.Context()
		p := newProduct(t, 5, true)
		m, err := product.NewMovement(kernel.NewUUID(), p.ID(), product.Outbound, 4, product.ReasonDelivery, "", "joao", clock.At)
		require.NoError(t, err)

		uow, _, products, movements, _ := newMockUoW(ctx)
		movements.On("Get", ctx, m.ID()).Return(m, nil).Once()
		products.On("GetForUpdate", ctx, []kernel.UUID{p.ID()}).Return([]*product.Product{p}, nil).Once()

		cmd, err := commands.NewRevertMovementCommand(m.ID())
		require.NoError(t, err)

		h := commands.NewRevertMovementCommandHandler(mockFactory{uow: uow}.inventory())
		err = h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, product.ErrMovementIsNotRevertible)
		assert.Equal(t, 5, p.Stock())
		products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		movements.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestNewAdjustStockCommand(t *testing.T) {
	_, err := commands.NewAdjustStockCommand(kernel.NewUUID(), kernel.UUID{}, -1, "", " ")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestAdjustStockCommandHandler_Handle(t *testing.T) {
	t.Run("should store the count as an adjustment movement", func(t *testing.T) {
		ctx := t.Context()
		p := newProduct(t, 12, true)
		movementID := kernel.NewUUID()

		uow, _, products, movements, _ := newMockUoW(ctx)
		products.On("GetForUpdate", ctx, []kernel.UUID{p.ID()}).Return([]*product.Product{p}, nil).Once()
		products.On("Update", ctx, p).Return(nil).Once()
		movements.On("Add", ctx, mock.MatchedBy(func(ms []product.Movement) bool {
			return len(ms) == 1 &&
				ms[0].ID().IsEqual(movementID) &&
				ms[0].Kind() == product.Outbound &&
				ms[0].Reason() == product.ReasonAdjustment &&
				ms[0].Quantity() == 4 &&
				ms[0].Note() == "stock count 12 -> 8: yearly count" &&
				ms[0].OccurredAt().Equal(clock.At)
		})).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewAdjustStockCommand(movementID, p.ID(), 8, "yearly count", "ana")
		require.NoError(t, err)

		h := commands.NewAdjustStockCommandHandler(mockFactory{uow: uow}.inventory(), clock)
		adjustment, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 12, adjustment.Previous)
		assert.Equal(t, 8, adjustment.Counted)
		assert.Equal(t, -4, adjustment.Difference())
		assert.Equal(t, 8, p.Stock())
		products.AssertExpectations(t)
		movements.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should store nothing when the count matches", func(t *testing.T) {
		ctx := t.Context()
		p := newProduct(t, 12, true)

		uow, _, products, movements, _ := newMockUoW(ctx)
		products.On("GetForUpdate", ctx, []kernel.UUID{p.ID()}).Return([]*product.Product{p}, nil).Once()

		cmd, err := commands.NewAdjustStockCommand(kernel.NewUUID(), p.ID(), 12, "", "ana")
		require.NoError(t, err)

		h := commands.NewAdjustStockCommandHandler(mockFactory{uow: uow}.inventory(), clock)
		adjustment, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Zero(t, adjustment.Difference())
		assert.Nil(t, adjustment.Movement)
		products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		movements.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should not commit when the product is missing", func(t *testing.T) {
		ctx := t.Context()
		productID := kernel.NewUUID()

		uow, _, products, _, _ := newMockUoW(ctx)
		products.On("GetForUpdate", ctx, []kernel.UUID{productID}).
			Return(nil, errs.NewObjectNotFoundError("product", productID)).Once()

		cmd, err := commands.NewAdjustStockCommand(kernel.NewUUID(), productID, 3, "", "ana")
		require.NoError(t, err)

		h := commands.NewAdjustStockCommandHandler(mockFactory{uow: uow}.inventory(), clock)
		_, err = h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
