package queries_test

import (
	"context"
	"testing"
	"time"

	"depot/internal/adapters/out/postgres/orderrepo"
	"depot/internal/adapters/out/postgres/pgtest"
	"depot/internal/adapters/out/postgres/productrepo"
	"depot/internal/adapters/out/postgres/schoolrepo"
	"depot/internal/core/application/usecases/queries"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"
	"depot/internal/core/domain/model/product"
	"depot/internal/core/domain/model/school"
	"depot/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// QueriesIntegrationTestSuite seeds a small depot and reads it back through
// the query handlers. Today is 2024-03-10.
type QueriesIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	clock    kernel.FixedClock

	north, south *school.School
	pencils      *product.Product
	erasers      *product.Product
	glue         *product.Product
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.clock = kernel.FixedClock{At: time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)}
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Stop(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.database.Truncate())

	schools := schoolrepo.NewGormSchoolRepository(suite.database.DB)
	suite.north = suite.newSchool("EM Norte", true)
	suite.south = suite.newSchool("EM Sul", false)
	suite.Require().NoError(schools.Add(ctx, suite.north))
	suite.Require().NoError(schools.Add(ctx, suite.south))

	products := productrepo.NewGormProductRepository(suite.database.DB)
	suite.pencils = suite.newProduct("LAP-01", 3, 50, true)
	suite.erasers = suite.newProduct("BOR-01", 10, 4, true)
	suite.glue = suite.newProduct("COL-01", 5, 0, false)
	for _, p := range []*product.Product{suite.pencils, suite.erasers, suite.glue} {
		suite.Require().NoError(products.Add(ctx, p))
	}
}

func (suite *QueriesIntegrationTestSuite) newSchool(name string, active bool) *school.School {
	s, err := school.RestoreSchool(kernel.NewUUID(), name, "", school.Municipal, school.Elementary,
		school.Address{Street: "Rua A, 1", District: "Centro"}, active)
	suite.Require().NoError(err)
	return s
}

func (suite *QueriesIntegrationTestSuite) newProduct(sku string, minStock, stock int, active bool) *product.Product {
	p, err := product.RestoreProduct(kernel.NewUUID(), sku, "Produto "+sku, product.UnitPiece, minStock, stock, active)
	suite.Require().NoError(err)
	return p
}

// addOrder stores an order created on 2024-03-01 and walks it to status.
func (suite *QueriesIntegrationTestSuite) addOrder(seq int, s *school.School, expected kernel.Date, status order.Status, dt order.DeliveryType) *order.Order {
	created := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	number, err := order.NewNumber(kernel.DateOf(created), seq)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), number, s.ID(), expected,
		order.Details{DeliveryType: dt, Responsible: "Maria"}, "maria", created)
	suite.Require().NoError(err)
	suite.Require().NoError(o.AddItem(kernel.NewUUID(), suite.pencils.ID(), 4, ""))
	suite.Require().NoError(o.AddItem(kernel.NewUUID(), suite.erasers.ID(), 2, "azul"))

	repo := orderrepo.NewGormOrderRepository(suite.database.DB, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), o))
	if status != order.Planned {
		suite.Require().NoError(o.Transition(order.Permissive, status, "ana", "", created.Add(time.Hour)))
		suite.Require().NoError(repo.Update(context.Background(), o))
	}
	return o
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder() {
	o := suite.addOrder(1, suite.north, kernel.MustNewDate(2024, time.March, 8), order.Preparing, order.Urgent)
	handler := queries.NewGetOrderQueryHandler(suite.database.DB, suite.clock)
	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	view, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal("202403010001", view.Number)
	suite.Equal("EM Norte", view.SchoolName)
	suite.Equal(order.Preparing, view.Status)
	suite.Equal(order.Urgent, view.DeliveryType)
	suite.True(view.Overdue)
	suite.True(view.ActualDeliveryDate.IsZero())
	suite.Equal(6, view.TotalQuantity)

	suite.Require().Len(view.Items, 2)
	suite.Equal("LAP-01", view.Items[0].SKU)
	suite.Equal(product.UnitPiece, view.Items[0].Unit)
	suite.Equal("azul", view.Items[1].Note)

	suite.Require().Len(view.History, 2)
	suite.Equal(order.Preparing, view.History[0].Next)
	suite.Equal(order.Unknown, view.History[1].Previous)
	suite.Equal(order.Planned, view.History[1].Next)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_Delivered() {
	o := suite.addOrder(1, suite.north, kernel.MustNewDate(2024, time.March, 8), order.Delivered, order.Normal)
	handler := queries.NewGetOrderQueryHandler(suite.database.DB, suite.clock)
	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	view, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.False(view.Overdue)
	suite.True(view.ActualDeliveryDate.IsEqual(kernel.MustNewDate(2024, time.March, 1)))
	suite.Equal(4, view.Items[0].Delivered)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_NotFound() {
	handler := queries.NewGetOrderQueryHandler(suite.database.DB, suite.clock)
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders() {
	overdue := suite.addOrder(1, suite.north, kernel.MustNewDate(2024, time.March, 8), order.InTransit, order.Urgent)
	upcoming := suite.addOrder(2, suite.north, kernel.MustNewDate(2024, time.March, 12), order.Planned, order.Normal)
	cancelled := suite.addOrder(3, suite.south, kernel.MustNewDate(2024, time.March, 5), order.Cancelled, order.Normal)
	delivered := suite.addOrder(4, suite.south, kernel.MustNewDate(2024, time.March, 9), order.Delivered, order.Scheduled)

	handler := queries.NewListOrdersQueryHandler(suite.database.DB, suite.clock)
	list := func(filter queries.OrderFilter) queries.ListOrdersQueryResponse {
		query, err := queries.NewListOrdersQuery(filter)
		suite.Require().NoError(err)
		resp, err := handler.Handle(context.Background(), query)
		suite.Require().NoError(err)
		return resp
	}
	ids := func(resp queries.ListOrdersQueryResponse) []kernel.UUID {
		out := make([]kernel.UUID, 0, len(resp.Orders))
		for _, summary := range resp.Orders {
			out = append(out, summary.ID)
		}
		return out
	}

	all := list(queries.OrderFilter{})
	suite.Equal([]kernel.UUID{cancelled.ID(), overdue.ID(), delivered.ID(), upcoming.ID()}, ids(all))
	suite.Equal(1, all.Overdue)
	suite.Equal(map[order.Status]int{
		order.Planned:   1,
		order.Preparing: 0,
		order.InTransit: 1,
		order.Delivered: 1,
		order.Cancelled: 1,
	}, all.CountByStatus)

	first := all.Orders[1]
	suite.Equal("EM Norte", first.SchoolName)
	suite.Equal(2, first.ItemCount)
	suite.Equal(6, first.TotalQuantity)
	suite.True(first.Overdue)

	suite.Equal([]kernel.UUID{overdue.ID()}, ids(list(queries.OrderFilter{OnlyOverdue: true})))
	suite.Equal([]kernel.UUID{upcoming.ID()}, ids(list(queries.OrderFilter{Status: order.Planned})))
	suite.Equal([]kernel.UUID{delivered.ID()}, ids(list(queries.OrderFilter{DeliveryType: order.Scheduled})))
	suite.Equal([]kernel.UUID{cancelled.ID(), delivered.ID()}, ids(list(queries.OrderFilter{SchoolID: suite.south.ID()})))

	byRange := list(queries.OrderFilter{
		ExpectedFrom: kernel.MustNewDate(2024, time.March, 8),
		ExpectedTo:   kernel.MustNewDate(2024, time.March, 9),
	})
	suite.Equal([]kernel.UUID{overdue.ID(), delivered.ID()}, ids(byRange))
	suite.Equal(1, byRange.CountByStatus[order.Cancelled])
}

func (suite *QueriesIntegrationTestSuite) TestListLowStockProducts() {
	handler := queries.NewListLowStockProductsQueryHandler(suite.database.DB)

	products, err := handler.Handle(context.Background(), queries.NewListLowStockProductsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(products, 1)
	suite.Equal("BOR-01", products[0].SKU)
	suite.Equal(4, products[0].Stock)
	suite.Equal(product.LowStock, products[0].Status)
}

func (suite *QueriesIntegrationTestSuite) TestListProductMovements() {
	ctx := context.Background()
	movements := productrepo.NewGormMovementRepository(suite.database.DB)
	at := time.Date(2024, time.March, 2, 8, 0, 0, 0, time.UTC)

	older, err := product.NewMovement(kernel.NewUUID(), suite.pencils.ID(), product.Inbound, 50, product.ReasonPurchase, "", "ana", at)
	suite.Require().NoError(err)
	newer, err := product.NewMovement(kernel.NewUUID(), suite.pencils.ID(), product.Outbound, 5, product.ReasonLoss, "quebrados", "ana", at.Add(time.Hour))
	suite.Require().NoError(err)
	other, err := product.NewMovement(kernel.NewUUID(), suite.erasers.ID(), product.Inbound, 4, product.ReasonPurchase, "", "ana", at)
	suite.Require().NoError(err)
	suite.Require().NoError(movements.Add(ctx, older, newer, other))

	handler := queries.NewListProductMovementsQueryHandler(suite.database.DB)
	query, err := queries.NewListProductMovementsQuery(suite.pencils.ID(), 0)
	suite.Require().NoError(err)

	views, err := handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.Equal(newer.ID(), views[0].ID)
	suite.Equal(product.Outbound, views[0].Kind)
	suite.Equal("quebrados", views[0].Note)
	suite.Equal(older.ID(), views[1].ID)

	limited, err := queries.NewListProductMovementsQuery(suite.pencils.ID(), 1)
	suite.Require().NoError(err)
	views, err = handler.Handle(ctx, limited)
	suite.Require().NoError(err)
	suite.Len(views, 1)

	missing, err := queries.NewListProductMovementsQuery(kernel.NewUUID(), 0)
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestSchools() {
	suite.addOrder(1, suite.north, kernel.MustNewDate(2024, time.March, 8), order.Planned, order.Normal)
	suite.addOrder(2, suite.north, kernel.MustNewDate(2024, time.March, 8), order.Cancelled, order.Normal)

	get := queries.NewGetSchoolQueryHandler(suite.database.DB)
	query, err := queries.NewGetSchoolQuery(suite.north.ID())
	suite.Require().NoError(err)
	view, err := get.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal("EM Norte", view.Name)
	suite.Equal(school.DefaultCity, view.Address.City)
	suite.Equal(1, view.OpenOrders)
	suite.True(view.Active)

	missing, err := queries.NewGetSchoolQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = get.Handle(context.Background(), missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	list := queries.NewListSchoolsQueryHandler(suite.database.DB)
	active, err := list.Handle(context.Background(), queries.NewListSchoolsQuery(false))
	suite.Require().NoError(err)
	suite.Require().Len(active, 1)
	suite.Equal(suite.north.ID(), active[0].ID)

	everything, err := list.Handle(context.Background(), queries.NewListSchoolsQuery(true))
	suite.Require().NoError(err)
	suite.Len(everything, 2)
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
