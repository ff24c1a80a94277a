package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"depot/internal/adapters/out/postgres"
	"depot/internal/adapters/out/postgres/pgtest"
	"depot/internal/core/application/usecases/commands"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"
	"depot/internal/core/domain/model/product"
	"depot/internal/core/domain/model/school"
	"depot/internal/core/domain/services"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu        sync.Mutex
	events    []kernel.Event
	err       error
	onPublish func(ctx context.Context)
}

func (p *recordingPublisher) Publish(ctx context.Context, events ...kernel.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.onPublish != nil {
		p.onPublish(ctx)
	}
	p.events = append(p.events, events...)
	return p.err
}

func (p *recordingPublisher) Events() []kernel.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]kernel.Event(nil), p.events...)
}

type orderUoWFactory struct{ factory *postgres.GormUnitOfWorkFactory }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.factory.Create() }

type uowFactory struct{ factory *postgres.GormUnitOfWorkFactory }

func (f uowFactory) Create() commands.UoW { return f.factory.Create() }

// UnitOfWorkIntegrationTestSuite drives the unit of work and the command
// handlers against a migrated PostgreSQL container.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database  *pgtest.Database
	publisher *recordingPublisher
	factory   *postgres.GormUnitOfWorkFactory
	school    *school.School
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Stop(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.database.Truncate())

	suite.publisher = &recordingPublisher{}
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.database.DB, suite.publisher, zap.NewNop())

	s, err := school.NewSchool(kernel.NewUUID(), "EM Santa Luzia", "21000011", school.Municipal, school.Infant,
		school.Address{Street: "Rua do Porto, 10", District: "Centro"})
	suite.Require().NoError(err)
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.SchoolRepository().Add(ctx, s))
	suite.Require().NoError(uow.Commit(ctx))
	suite.school = s
}

func (suite *UnitOfWorkIntegrationTestSuite) addProduct(sku string, stock int) *product.Product {
	ctx := context.Background()
	p, err := product.RestoreProduct(kernel.NewUUID(), sku, "Produto "+sku, product.UnitPiece, 1, stock, true)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ProductRepository().Add(ctx, p))
	suite.Require().NoError(uow.Commit(ctx))
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) createHandler(at time.Time) commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		orderUoWFactory{suite.factory},
		commands.NewOrderNumberAllocator(commands.DefaultMaxAllocationAttempts, zap.NewNop()),
		kernel.FixedClock{At: at},
	)
}

func (suite *UnitOfWorkIntegrationTestSuite) createCommand(number string, lines ...commands.ItemLine) commands.CreateOrderCommand {
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), suite.school.ID(), kernel.MustNewDate(2024, time.March, 8),
		order.Details{DeliveryType: order.Normal, Responsible: "Maria"}, number, lines, "maria")
	suite.Require().NoError(err)
	return cmd
}

func (suite *UnitOfWorkIntegrationTestSuite) storedStock(id kernel.UUID) int {
	p, err := suite.factory.Create().ProductRepository().Get(context.Background(), id)
	suite.Require().NoError(err)
	return p.Stock()
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLifecycleErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.SavePoint(ctx, "sp"), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.RollbackTo(ctx, "sp"), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	p, err := product.NewProduct(kernel.NewUUID(), "CAD-01", "Caderno", product.UnitPiece, 5)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ProductRepository().Add(ctx, p))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().ProductRepository().Get(ctx, p.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackTo_KeepsWorkBeforeSavePoint() {
	ctx := context.Background()
	kept, err := product.NewProduct(kernel.NewUUID(), "CAD-01", "Caderno", product.UnitPiece, 5)
	suite.Require().NoError(err)
	dropped, err := product.NewProduct(kernel.NewUUID(), "CAD-02", "Caderno grande", product.UnitPiece, 5)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ProductRepository().Add(ctx, kept))
	suite.Require().NoError(uow.SavePoint(ctx, "before_dropped"))
	suite.Require().NoError(uow.ProductRepository().Add(ctx, dropped))
	suite.Require().NoError(uow.RollbackTo(ctx, "before_dropped"))
	suite.Require().NoError(uow.Commit(ctx))

	repo := suite.factory.Create().ProductRepository()
	_, err = repo.Get(ctx, kept.ID())
	suite.Require().NoError(err)
	_, err = repo.Get(ctx, dropped.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreateOrder_AllocatesSequentialNumbers() {
	ctx := context.Background()
	p := suite.addProduct("LAP-01", 10)
	handler := suite.createHandler(time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC))

	expected := []string{"202403050001", "202403050002", "202403050003"}
	for _, want := range expected {
		number, err := handler.Handle(ctx, suite.createCommand("", commands.ItemLine{ProductID: p.ID(), Quantity: 1}))
		suite.Require().NoError(err)
		suite.Equal(want, number.String())
	}

	next := suite.createHandler(time.Date(2024, time.March, 6, 9, 0, 0, 0, time.UTC))
	number, err := next.Handle(ctx, suite.createCommand("", commands.ItemLine{ProductID: p.ID(), Quantity: 1}))
	suite.Require().NoError(err)
	suite.Equal("202403060001", number.String())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreateOrder_ConcurrentCallersGetDistinctNumbers() {
	ctx := context.Background()
	p := suite.addProduct("LAP-01", 10)
	handler := suite.createHandler(time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC))

	const callers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = make(map[string]struct{}, callers)
		errList []error
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, err := handler.Handle(ctx, suite.createCommand("", commands.ItemLine{ProductID: p.ID(), Quantity: 1}))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errList = append(errList, err)
				return
			}
			numbers[number.String()] = struct{}{}
		}()
	}
	wg.Wait()

	suite.Require().Empty(errList)
	suite.Len(numbers, callers)
	for seq := 1; seq <= callers; seq++ {
		number, err := order.NewNumber(kernel.MustNewDate(2024, time.March, 5), seq)
		suite.Require().NoError(err)
		suite.Contains(numbers, number.String())
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreateOrder_ContinuesAfterNumberEnteredEarlier() {
	ctx := context.Background()
	p := suite.addProduct("LAP-01", 10)
	line := commands.ItemLine{ProductID: p.ID(), Quantity: 1}

	backfill := suite.createHandler(time.Date(2024, time.March, 4, 17, 0, 0, 0, time.UTC))
	_, err := backfill.Handle(ctx, suite.createCommand("202403050002", line))
	suite.Require().NoError(err)

	handler := suite.createHandler(time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC))
	number, err := handler.Handle(ctx, suite.createCommand("", line))
	suite.Require().NoError(err)
	suite.Equal("202403050003", number.String())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreateOrder_IgnoresBackfilledNumbersOfOtherDays() {
	ctx := context.Background()
	p := suite.addProduct("LAP-01", 10)
	line := commands.ItemLine{ProductID: p.ID(), Quantity: 1}
	handler := suite.createHandler(time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC))

	for _, backfilled := range []string{"202412319999", "202403040050"} {
		_, err := handler.Handle(ctx, suite.createCommand(backfilled, line))
		suite.Require().NoError(err)
	}

	first, err := handler.Handle(ctx, suite.createCommand("", line))
	suite.Require().NoError(err)
	second, err := handler.Handle(ctx, suite.createCommand("", line))
	suite.Require().NoError(err)

	suite.Equal("202403050001", first.String())
	suite.Equal("202403050002", second.String())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreateOrder_SuppliedNumberTaken() {
	ctx := context.Background()
	p := suite.addProduct("LAP-01", 10)
	line := commands.ItemLine{ProductID: p.ID(), Quantity: 1}
	handler := suite.createHandler(time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC))

	_, err := handler.Handle(ctx, suite.createCommand("202403050001", line))
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, suite.createCommand("202403050001", line))
	suite.Require().Error(err)

	var count int64
	suite.Require().NoError(suite.database.DB.Table("orders").Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) createOrder(at time.Time, lines ...commands.ItemLine) kernel.UUID {
	cmd := suite.createCommand("", lines...)
	handler := suite.createHandler(at)
	_, err := handler.Handle(context.Background(), cmd)
	suite.Require().NoError(err)
	return cmd.OrderID()
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFinalize_WithdrawsStockAndDelivers() {
	ctx := context.Background()
	pencils := suite.addProduct("LAP-01", 10)
	erasers := suite.addProduct("BOR-01", 4)
	created := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	orderID := suite.createOrder(created,
		commands.ItemLine{ProductID: pencils.ID(), Quantity: 6},
		commands.ItemLine{ProductID: erasers.ID(), Quantity: 4},
	)

	delivered := created.Add(26 * time.Hour)
	handler := commands.NewFinalizeDeliveryCommandHandler(uowFactory{suite.factory}, order.Permissive, kernel.FixedClock{At: delivered})
	cmd, err := commands.NewFinalizeDeliveryCommand(orderID, "joao", "")
	suite.Require().NoError(err)
	suite.Require().NoError(handler.Handle(ctx, cmd))

	suite.Equal(4, suite.storedStock(pencils.ID()))
	suite.Equal(0, suite.storedStock(erasers.ID()))

	o, err := suite.factory.Create().OrderRepository().Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, o.Status())
	suite.True(o.ActualDeliveryDate().IsEqual(kernel.MustNewDate(2024, time.March, 6)))
	suite.Len(o.History(), 2)

	var movements int64
	suite.Require().NoError(suite.database.DB.Table("stock_movements").
		Where("kind = ? AND reason = ?", "out", "delivery").Count(&movements).Error)
	suite.Equal(int64(2), movements)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFinalize_InsufficientStockChangesNothing() {
	ctx := context.Background()
	pencils := suite.addProduct("LAP-01", 10)
	erasers := suite.addProduct("BOR-01", 1)
	created := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	orderID := suite.createOrder(created,
		commands.ItemLine{ProductID: pencils.ID(), Quantity: 6},
		commands.ItemLine{ProductID: erasers.ID(), Quantity: 3},
	)

	handler := commands.NewFinalizeDeliveryCommandHandler(uowFactory{suite.factory}, order.Permissive, kernel.FixedClock{At: created})
	cmd, err := commands.NewFinalizeDeliveryCommand(orderID, "joao", "")
	suite.Require().NoError(err)

	err = handler.Handle(ctx, cmd)
	var shortage *services.InsufficientStockError
	suite.Require().True(errors.As(err, &shortage))
	suite.Require().Len(shortage.Shortfalls, 1)
	suite.Equal(erasers.ID(), shortage.Shortfalls[0].ProductID)
	suite.Equal(2, shortage.Shortfalls[0].Missing())

	suite.Equal(10, suite.storedStock(pencils.ID()))
	suite.Equal(1, suite.storedStock(erasers.ID()))

	o, err := suite.factory.Create().OrderRepository().Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(order.Planned, o.Status())
	suite.True(o.ActualDeliveryDate().IsZero())
	suite.Len(o.History(), 1)

	var movements int64
	suite.Require().NoError(suite.database.DB.Table("stock_movements").Count(&movements).Error)
	suite.Zero(movements)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PublishesEventsOfSavedOrders() {
	ctx := context.Background()
	p := suite.addProduct("LAP-01", 10)
	created := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	orderID := suite.createOrder(created, commands.ItemLine{ProductID: p.ID(), Quantity: 1})

	transition := commands.NewTransitionOrderCommandHandler(uowFactory{suite.factory}, order.Strict, kernel.FixedClock{At: created.Add(time.Hour)})
	cmd, err := commands.NewTransitionOrderCommand(orderID, order.Preparing, "ana", "picking")
	suite.Require().NoError(err)
	suite.Require().NoError(transition.Handle(ctx, cmd))

	events := suite.publisher.Events()
	suite.Require().Len(events, 2)

	created0, ok := events[0].(order.StatusChanged)
	suite.Require().True(ok)
	suite.Equal(order.Unknown, created0.From)
	suite.Equal(order.Planned, created0.To)

	changed, ok := events[1].(order.StatusChanged)
	suite.Require().True(ok)
	suite.Equal(orderID, changed.OrderID)
	suite.Equal(order.Planned, changed.From)
	suite.Equal(order.Preparing, changed.To)
	suite.Equal("ana", changed.Actor)
	suite.Equal("202403050001", changed.EventKey())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PublishesWhenCallerIsCancelledAfterCommit() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := suite.addProduct("LAP-01", 10)

	var publishErr error
	suite.publisher.onPublish = func(publishCtx context.Context) {
		cancel()
		publishErr = publishCtx.Err()
	}

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	o, err := order.NewOrder(kernel.NewUUID(), mustNumber(suite.T(), "202403050001"), suite.school.ID(),
		kernel.MustNewDate(2024, time.March, 8), order.Details{DeliveryType: order.Normal, Responsible: "Maria"}, "maria",
		time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Require().NoError(o.AddItem(kernel.NewUUID(), p.ID(), 1, ""))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(ctx.Err(), context.Canceled)
	suite.NoError(publishErr)
	suite.Len(suite.publisher.Events(), 1)
}

func mustNumber(t *testing.T, raw string) order.Number {
	t.Helper()
	number, err := order.ParseNumber(raw)
	if err != nil {
		t.Fatal(err)
	}
	return number
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PublishFailureKeepsCommittedState() {
	ctx := context.Background()
	suite.publisher.err = errors.New("broker unavailable")
	p := suite.addProduct("LAP-01", 10)

	orderID := suite.createOrder(time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC), commands.ItemLine{ProductID: p.ID(), Quantity: 1})

	_, err := suite.factory.Create().OrderRepository().Get(ctx, orderID)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DropsEvents() {
	ctx := context.Background()
	p := suite.addProduct("LAP-01", 10)
	orderID := suite.createOrder(time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC), commands.ItemLine{ProductID: p.ID(), Quantity: 1})
	published := len(suite.publisher.Events())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().NoError(o.Transition(order.Strict, order.Cancelled, "ana", "", time.Now()))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Len(suite.publisher.Events(), published)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
