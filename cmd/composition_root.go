package cmd

import (
	httpin "depot/internal/adapters/in/http"
	"depot/internal/adapters/out/postgres"
	"depot/internal/core/application/usecases/commands"
	"depot/internal/core/application/usecases/queries"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"
	"depot/internal/core/ports"
	"depot/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
	policy     order.TransitionPolicy
	logger     *zap.Logger
}

// NewCompositionRoot wires the application around gormDB. publisher may be
// nil, in which case committed events are dropped.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) (CompositionRoot, error) {
	loc, err := config.Location()
	if err != nil {
		return CompositionRoot{}, err
	}
	policy, err := config.TransitionPolicy()
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		clock:      kernel.NewSystemClock(loc),
		policy:     policy,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) inventoryUoWFactory() commands.InventoryUoWFactory {
	return FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) schoolUoWFactory() commands.SchoolUoWFactory {
	return FuncSchoolUoWFactory(func() commands.SchoolUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uowFactoryForDelivery() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateSchoolCommandHandler() commands.CreateSchoolCommandHandler {
	return commands.NewCreateSchoolCommandHandler(c.schoolUoWFactory())
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	return commands.NewCreateProductCommandHandler(c.inventoryUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRecordMovementCommandHandler() commands.RecordMovementCommandHandler {
	return commands.NewRecordMovementCommandHandler(c.inventoryUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAdjustStockCommandHandler() commands.AdjustStockCommandHandler {
	return commands.NewAdjustStockCommandHandler(c.inventoryUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRevertMovementCommandHandler() commands.RevertMovementCommandHandler {
	return commands.NewRevertMovementCommandHandler(c.inventoryUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	allocator := commands.NewOrderNumberAllocator(c.config.OrderNumberMaxAttempts, c.logger)
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), allocator, c.clock)
}

func (c *CompositionRoot) CreateRescheduleOrderCommandHandler() commands.RescheduleOrderCommandHandler {
	return commands.NewRescheduleOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateChangeOrderItemCommandHandler() commands.ChangeOrderItemCommandHandler {
	return commands.NewChangeOrderItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.uowFactoryForDelivery(), c.policy, c.clock)
}

func (c *CompositionRoot) CreateFinalizeDeliveryCommandHandler() commands.FinalizeDeliveryCommandHandler {
	return commands.NewFinalizeDeliveryCommandHandler(c.uowFactoryForDelivery(), c.policy, c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateGetSchoolQueryHandler() queries.GetSchoolQueryHandler {
	return queries.NewGetSchoolQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListSchoolsQueryHandler() queries.ListSchoolsQueryHandler {
	return queries.NewListSchoolsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListLowStockProductsQueryHandler() queries.ListLowStockProductsQueryHandler {
	return queries.NewListLowStockProductsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListProductMovementsQueryHandler() queries.ListProductMovementsQueryHandler {
	return queries.NewListProductMovementsQueryHandler(c.gormDB)
}

// CreateHTTPHandlers collects every use case the HTTP server exposes.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	createSchool := c.CreateCreateSchoolCommandHandler()
	createProduct := c.CreateCreateProductCommandHandler()
	recordMovement := c.CreateRecordMovementCommandHandler()
	revertMovement := c.CreateRevertMovementCommandHandler()
	adjustStock := c.CreateAdjustStockCommandHandler()
	createOrder := c.CreateCreateOrderCommandHandler()
	rescheduleOrder := c.CreateRescheduleOrderCommandHandler()
	deleteOrder := c.CreateDeleteOrderCommandHandler()
	transitionOrder := c.CreateTransitionOrderCommandHandler()
	finalizeDelivery := c.CreateFinalizeDeliveryCommandHandler()
	changeOrderItem := c.CreateChangeOrderItemCommandHandler()

	return httpin.Handlers{
		CreateSchool:     &createSchool,
		CreateProduct:    &createProduct,
		RecordMovement:   &recordMovement,
		RevertMovement:   &revertMovement,
		AdjustStock:      &adjustStock,
		CreateOrder:      &createOrder,
		RescheduleOrder:  &rescheduleOrder,
		DeleteOrder:      &deleteOrder,
		TransitionOrder:  &transitionOrder,
		FinalizeDelivery: &finalizeDelivery,
		ChangeOrderItem:  &changeOrderItem,

		GetSchool:            c.CreateGetSchoolQueryHandler(),
		ListSchools:          c.CreateListSchoolsQueryHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
		ListOrders:           c.CreateListOrdersQueryHandler(),
		ListLowStockProducts: c.CreateListLowStockProductsQueryHandler(),
		ListMovements:        c.CreateListProductMovementsQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateListOrdersQueryHandler(),
		c.CreateListLowStockProductsQueryHandler(),
		jobs.Schedules{
			OverdueDeliveries: c.config.OverdueJobSchedule,
			LowStock:          c.config.LowStockJobSchedule,
		},
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncInventoryUoWFactory func() commands.InventoryUoW

func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}

type FuncSchoolUoWFactory func() commands.SchoolUoW

func (f FuncSchoolUoWFactory) Create() commands.SchoolUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
