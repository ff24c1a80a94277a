package commands_test

import (
	"context"

	"depot/internal/core/application/usecases/commands"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"
	"depot/internal/core/domain/model/product"
	"depot/internal/core/domain/model/school"
	"depot/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) LockLatestNumberOn(ctx context.Context, day kernel.Date) (string, bool, error) {
	args := m.Called(ctx, day)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockOrderRepository) CountNumberedOn(ctx context.Context, day kernel.Date) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) GetForUpdate(ctx context.Context, ids ...kernel.UUID) ([]*product.Product, error) {
	args := m.Called(ctx, ids)
	products, _ := args.Get(0).([]*product.Product)
	return products, args.Error(1)
}

type MockMovementRepository struct{ mock.Mock }

func (m *MockMovementRepository) Add(ctx context.Context, movements ...product.Movement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *MockMovementRepository) Get(ctx context.Context, id kernel.UUID) (product.Movement, error) {
	args := m.Called(ctx, id)
	mv, _ := args.Get(0).(product.Movement)
	return mv, args.Error(1)
}

func (m *MockMovementRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSchoolRepository struct{ mock.Mock }

func (m *MockSchoolRepository) Add(ctx context.Context, s *school.School) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSchoolRepository) Update(ctx context.Context, s *school.School) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSchoolRepository) Get(ctx context.Context, id kernel.UUID) (*school.School, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*school.School)
	return s, args.Error(1)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) SavePoint(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockUoW) RollbackTo(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockUoW) MovementRepository() ports.MovementRepository {
	args := m.Called()
	return args.Get(0).(ports.MovementRepository)
}

func (m *MockUoW) SchoolRepository() ports.SchoolRepository {
	args := m.Called()
	return args.Get(0).(ports.SchoolRepository)
}

type mockFactory struct{ uow *MockUoW }

func (f mockFactory) orders() commands.OrderUoWFactory {
	return orderFactory(func() commands.OrderUoW { return f.uow })
}

func (f mockFactory) inventory() commands.InventoryUoWFactory {
	return inventoryFactory(func() commands.InventoryUoW { return f.uow })
}

func (f mockFactory) schools() commands.SchoolUoWFactory {
	return schoolFactory(func() commands.SchoolUoW { return f.uow })
}

func (f mockFactory) all() commands.UoWFactory {
	return uowFactory(func() commands.UoW { return f.uow })
}

type orderFactory func() commands.OrderUoW

func (f orderFactory) Create() commands.OrderUoW { return f() }

type inventoryFactory func() commands.InventoryUoW

func (f inventoryFactory) Create() commands.InventoryUoW { return f() }

type schoolFactory func() commands.SchoolUoW

func (f schoolFactory) Create() commands.SchoolUoW { return f() }

type uowFactory func() commands.UoW

func (f uowFactory) Create() commands.UoW { return f() }

// newMockUoW wires repositories into a unit of work expecting a successful
// Begin and a deferred Rollback.
func newMockUoW(ctx context.Context) (*MockUoW, *MockOrderRepository, *MockProductRepository, *MockMovementRepository, *MockSchoolRepository) {
	uow := new(MockUoW)
	orders := new(MockOrderRepository)
	products := new(MockProductRepository)
	movements := new(MockMovementRepository)
	schools := new(MockSchoolRepository)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orders).Maybe()
	uow.On("ProductRepository").Return(products).Maybe()
	uow.On("MovementRepository").Return(movements).Maybe()
	uow.On("SchoolRepository").Return(schools).Maybe()

	return uow, orders, products, movements, schools
}
