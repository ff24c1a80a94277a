package http

import (
	"context"
	"fmt"
	"net/http"

	"depot/internal/core/application/usecases/commands"
	"depot/internal/core/application/usecases/queries"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/order"
	"depot/internal/core/domain/model/product"
	"depot/internal/core/domain/model/school"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// CommandHandler runs a command that returns nothing but an error.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler runs a read-only query.
type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// CreateOrderHandler creates an order and reports the number it was
// stored with.
type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (order.Number, error)
}

// AdjustStockHandler reconciles a product with a stock count.
type AdjustStockHandler interface {
	Handle(ctx context.Context, cmd commands.AdjustStockCommand) (product.CountAdjustment, error)
}

// Handlers are the use cases the server dispatches to.
type Handlers struct {
	CreateSchool     CommandHandler[commands.CreateSchoolCommand]
	CreateProduct    CommandHandler[commands.CreateProductCommand]
	RecordMovement   CommandHandler[commands.RecordMovementCommand]
	RevertMovement   CommandHandler[commands.RevertMovementCommand]
	AdjustStock      AdjustStockHandler
	CreateOrder      CreateOrderHandler
	RescheduleOrder  CommandHandler[commands.RescheduleOrderCommand]
	DeleteOrder      CommandHandler[commands.DeleteOrderCommand]
	TransitionOrder  CommandHandler[commands.TransitionOrderCommand]
	FinalizeDelivery CommandHandler[commands.FinalizeDeliveryCommand]
	ChangeOrderItem  CommandHandler[commands.ChangeOrderItemCommand]

	GetSchool            QueryHandler[queries.GetSchoolQuery, queries.SchoolView]
	ListSchools          QueryHandler[queries.ListSchoolsQuery, []queries.SchoolView]
	GetOrder             QueryHandler[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	ListOrders           QueryHandler[queries.ListOrdersQuery, queries.ListOrdersQueryResponse]
	ListLowStockProducts QueryHandler[queries.ListLowStockProductsQuery, []queries.ProductStockView]
	ListMovements        QueryHandler[queries.ListProductMovementsQuery, []queries.MovementView]
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// ListSchools handles GET /api/v1/schools.
func (s *Server) ListSchools(ctx echo.Context, params ListSchoolsParams) error {
	query := queries.NewListSchoolsQuery(valueOf(params.IncludeInactive))

	schools, err := s.handlers.ListSchools.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve schools")
	}

	response := make([]School, len(schools))
	for i, view := range schools {
		response[i] = schoolFromView(view)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateSchool handles POST /api/v1/schools.
func (s *Server) CreateSchool(ctx echo.Context) error {
	var body NewSchool
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	schoolID := kernel.NewUUID()
	cmd, err := commands.NewCreateSchoolCommand(
		schoolID,
		body.Name,
		valueOf(body.InepCode),
		school.Kind(valueOf(body.Kind)),
		school.Level(valueOf(body.Level)),
		school.Address{
			Street:   body.Street,
			District: body.District,
			City:     valueOf(body.City),
			State:    valueOf(body.State),
		},
	)
	if err != nil {
		return badRequest(ctx, "Invalid school data: "+err.Error())
	}

	if err := s.handlers.CreateSchool.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to create school")
	}
	return ctx.JSON(http.StatusCreated, Created{Id: schoolID.Value()})
}

// GetSchool handles GET /api/v1/schools/{schoolId}.
func (s *Server) GetSchool(ctx echo.Context, schoolId openapi_types.UUID) error {
	id, err := kernel.UUIDFromGoogle(schoolId)
	if err != nil {
		return badRequest(ctx, "Invalid school id: "+err.Error())
	}
	query, err := queries.NewGetSchoolQuery(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.handlers.GetSchool.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve school")
	}
	return ctx.JSON(http.StatusOK, schoolFromView(view))
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(ctx echo.Context, params ActorParams) error {
	var body NewProduct
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	unit, err := product.ParseUnit(valueOf(body.Unit))
	if err != nil {
		return badRequest(ctx, "Invalid product data: "+err.Error())
	}

	productID := kernel.NewUUID()
	cmd, err := commands.NewCreateProductCommand(
		productID,
		body.Sku,
		body.Name,
		unit,
		valueOf(body.MinStock),
		valueOf(body.InitialStock),
		params.XActor,
	)
	if err != nil {
		return badRequest(ctx, "Invalid product data: "+err.Error())
	}

	if err := s.handlers.CreateProduct.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to create product")
	}
	return ctx.JSON(http.StatusCreated, Created{Id: productID.Value()})
}

// ListLowStockProducts handles GET /api/v1/products/low-stock.
func (s *Server) ListLowStockProducts(ctx echo.Context) error {
	products, err := s.handlers.ListLowStockProducts.Handle(
		ctx.Request().Context(),
		queries.NewListLowStockProductsQuery(),
	)
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve products")
	}

	response := make([]ProductStock, len(products))
	for i, p := range products {
		response[i] = ProductStock{
			Id:          p.ID.Value(),
			Sku:         p.SKU,
			Name:        p.Name,
			Unit:        p.Unit.String(),
			MinStock:    p.MinStock,
			Stock:       p.Stock,
			StockStatus: string(p.Status),
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// ListProductMovements handles GET /api/v1/products/{productId}/movements.
func (s *Server) ListProductMovements(
	ctx echo.Context,
	productId openapi_types.UUID,
	params ListProductMovementsParams,
) error {
	id, err := kernel.UUIDFromGoogle(productId)
	if err != nil {
		return badRequest(ctx, "Invalid product id: "+err.Error())
	}
	query, err := queries.NewListProductMovementsQuery(id, valueOf(params.Limit))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	movements, err := s.handlers.ListMovements.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve movements")
	}

	response := make([]Movement, len(movements))
	for i, m := range movements {
		response[i] = Movement{
			Id:         m.ID.Value(),
			Kind:       string(m.Kind),
			Quantity:   m.Quantity,
			Reason:     string(m.Reason),
			Note:       m.Note,
			Actor:      m.Actor,
			OccurredAt: m.OccurredAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// RecordMovement handles POST /api/v1/products/{productId}/movements.
func (s *Server) RecordMovement(ctx echo.Context, productId openapi_types.UUID, params ActorParams) error {
	id, err := kernel.UUIDFromGoogle(productId)
	if err != nil {
		return badRequest(ctx, "Invalid product id: "+err.Error())
	}
	var body NewMovement
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	movementID := kernel.NewUUID()
	cmd, err := commands.NewRecordMovementCommand(
		movementID,
		id,
		product.MovementKind(body.Kind),
		body.Quantity,
		product.Reason(body.Reason),
		valueOf(body.Note),
		params.XActor,
	)
	if err != nil {
		return badRequest(ctx, "Invalid movement data: "+err.Error())
	}

	if err := s.handlers.RecordMovement.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to record movement")
	}
	return ctx.JSON(http.StatusCreated, Created{Id: movementID.Value()})
}

// AdjustStock handles POST /api/v1/products/{productId}/adjustments.
func (s *Server) AdjustStock(ctx echo.Context, productId openapi_types.UUID, params ActorParams) error {
	id, err := kernel.UUIDFromGoogle(productId)
	if err != nil {
		return badRequest(ctx, "Invalid product id: "+err.Error())
	}
	var body NewStockCount
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAdjustStockCommand(kernel.NewUUID(), id, body.CountedStock, valueOf(body.Note), params.XActor)
	if err != nil {
		return badRequest(ctx, "Invalid stock count: "+err.Error())
	}

	adjustment, err := s.handlers.AdjustStock.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err, "Failed to adjust stock")
	}

	response := StockAdjustment{
		PreviousStock: adjustment.Previous,
		CountedStock:  adjustment.Counted,
		Difference:    adjustment.Difference(),
	}
	if adjustment.Movement != nil {
		movementID := adjustment.Movement.ID().Value()
		response.MovementId = &movementID
	}
	return ctx.JSON(http.StatusOK, response)
}

// RevertMovement handles DELETE /api/v1/movements/{movementId}.
func (s *Server) RevertMovement(ctx echo.Context, movementId openapi_types.UUID) error {
	id, err := kernel.UUIDFromGoogle(movementId)
	if err != nil {
		return badRequest(ctx, "Invalid movement id: "+err.Error())
	}
	cmd, err := commands.NewRevertMovementCommand(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.handlers.RevertMovement.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to revert movement")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	filter, err := orderFilterOf(params)
	if err != nil {
		return badRequest(ctx, "Invalid filter: "+err.Error())
	}
	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return badRequest(ctx, "Invalid filter: "+err.Error())
	}

	result, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve orders")
	}

	response := OrderList{
		Orders:        make([]OrderSummary, len(result.Orders)),
		CountByStatus: make(map[string]int, len(result.CountByStatus)),
		Overdue:       result.Overdue,
	}
	for i, summary := range result.Orders {
		response.Orders[i] = OrderSummary{
			Id:                 summary.ID.Value(),
			Number:             summary.Number,
			SchoolId:           summary.SchoolID.Value(),
			SchoolName:         summary.SchoolName,
			Status:             summary.Status.String(),
			DeliveryType:       summary.DeliveryType.String(),
			Responsible:        summary.Responsible,
			ExpectedDate:       apiDate(summary.ExpectedDate),
			ActualDeliveryDate: optionalAPIDate(summary.ActualDeliveryDate),
			ItemCount:          summary.ItemCount,
			TotalQuantity:      summary.TotalQuantity,
			Overdue:            summary.Overdue,
		}
	}
	for status, count := range result.CountByStatus {
		response.CountByStatus[status.String()] = count
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders. The body may carry a number for
// administrative backfill; otherwise the next number of the day is issued.
func (s *Server) CreateOrder(ctx echo.Context, params ActorParams) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	schoolID, err := kernel.UUIDFromGoogle(body.SchoolId)
	if err != nil {
		return badRequest(ctx, "Invalid school id: "+err.Error())
	}
	details, err := detailsOf(body.OrderDetails)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}
	lines := make([]commands.ItemLine, 0, len(body.Items))
	for _, item := range body.Items {
		productID, err := kernel.UUIDFromGoogle(item.ProductId)
		if err != nil {
			return badRequest(ctx, "Invalid product id: "+err.Error())
		}
		lines = append(lines, commands.ItemLine{
			ProductID: productID,
			Quantity:  item.Quantity,
			Note:      valueOf(item.Note),
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		schoolID,
		kernel.DateOf(body.ExpectedDate.Time),
		details,
		valueOf(body.Number),
		lines,
		params.XActor,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	number, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err, "Failed to create order")
	}
	return ctx.JSON(http.StatusCreated, CreatedOrder{Id: orderID.Value(), Number: number.String()})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	o, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve order")
	}

	response := Order{
		OrderSummary: OrderSummary{
			Id:                 o.ID.Value(),
			Number:             o.Number,
			SchoolId:           o.SchoolID.Value(),
			SchoolName:         o.SchoolName,
			Status:             o.Status.String(),
			DeliveryType:       o.DeliveryType.String(),
			Responsible:        o.Responsible,
			ExpectedDate:       apiDate(o.ExpectedDate),
			ActualDeliveryDate: optionalAPIDate(o.ActualDeliveryDate),
			ItemCount:          len(o.Items),
			TotalQuantity:      o.TotalQuantity,
			Overdue:            o.Overdue,
		},
		Driver:    o.Driver,
		Vehicle:   o.Vehicle,
		Notes:     o.Notes,
		CreatedBy: o.CreatedBy,
		CreatedAt: o.CreatedAt,
		Items:     make([]OrderItem, len(o.Items)),
		History:   make([]HistoryEntry, len(o.History)),
	}
	for i, item := range o.Items {
		response.Items[i] = OrderItem{
			Id:          item.ID.Value(),
			ProductId:   item.ProductID.Value(),
			Sku:         item.SKU,
			ProductName: item.ProductName,
			Unit:        item.Unit.String(),
			Requested:   item.Requested,
			Delivered:   item.Delivered,
			Note:        item.Note,
		}
	}
	for i, entry := range o.History {
		response.History[i] = HistoryEntry{
			PreviousStatus: entry.Previous.String(),
			NewStatus:      entry.Next.String(),
			Actor:          entry.Actor,
			Note:           entry.Note,
			OccurredAt:     entry.OccurredAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// RescheduleOrder handles PUT /api/v1/orders/{orderId}.
func (s *Server) RescheduleOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}
	var body OrderDetails
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	details, err := detailsOf(body)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	cmd, err := commands.NewRescheduleOrderCommand(id, kernel.DateOf(body.ExpectedDate.Time), details)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}
	if err := s.handlers.RescheduleOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to update order")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId}.
func (s *Server) DeleteOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}
	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := s.handlers.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to delete order")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/transitions.
func (s *Server) TransitionOrder(ctx echo.Context, orderId openapi_types.UUID, params ActorParams) error {
	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}
	var body Transition
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return badRequest(ctx, "Invalid transition: "+err.Error())
	}

	cmd, err := commands.NewTransitionOrderCommand(id, status, params.XActor, valueOf(body.Note))
	if err != nil {
		return badRequest(ctx, "Invalid transition: "+err.Error())
	}
	if err := s.handlers.TransitionOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to change order status")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// FinalizeDelivery handles POST /api/v1/orders/{orderId}/finalize.
func (s *Server) FinalizeDelivery(ctx echo.Context, orderId openapi_types.UUID, params ActorParams) error {
	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}
	var body Finalize
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewFinalizeDeliveryCommand(id, params.XActor, valueOf(body.Note))
	if err != nil {
		return badRequest(ctx, "Invalid delivery data: "+err.Error())
	}
	if err := s.handlers.FinalizeDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to finalize delivery")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AddOrderItem handles POST /api/v1/orders/{orderId}/items.
func (s *Server) AddOrderItem(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}
	var body NewOrderItem
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	productID, err := kernel.UUIDFromGoogle(body.ProductId)
	if err != nil {
		return badRequest(ctx, "Invalid product id: "+err.Error())
	}

	cmd, err := commands.NewAddOrderItemCommand(id, productID, body.Quantity, valueOf(body.Note))
	if err != nil {
		return badRequest(ctx, "Invalid item data: "+err.Error())
	}
	return s.changeItem(ctx, cmd)
}

// SetOrderItemQuantity handles PUT /api/v1/orders/{orderId}/items/{productId}.
func (s *Server) SetOrderItemQuantity(ctx echo.Context, orderId, productId openapi_types.UUID) error {
	id, productID, err := itemIDs(orderId, productId)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var body ItemQuantity
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetOrderItemQuantityCommand(id, productID, body.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid item data: "+err.Error())
	}
	return s.changeItem(ctx, cmd)
}

// RemoveOrderItem handles DELETE /api/v1/orders/{orderId}/items/{productId}.
func (s *Server) RemoveOrderItem(ctx echo.Context, orderId, productId openapi_types.UUID) error {
	id, productID, err := itemIDs(orderId, productId)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewRemoveOrderItemCommand(id, productID)
	if err != nil {
		return badRequest(ctx, "Invalid item data: "+err.Error())
	}
	return s.changeItem(ctx, cmd)
}

func (s *Server) changeItem(ctx echo.Context, cmd commands.ChangeOrderItemCommand) error {
	if err := s.handlers.ChangeOrderItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to change order items")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func itemIDs(orderId, productId openapi_types.UUID) (kernel.UUID, kernel.UUID, error) {
	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, fmt.Errorf("invalid order id: %w", err)
	}
	productID, err := kernel.UUIDFromGoogle(productId)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, fmt.Errorf("invalid product id: %w", err)
	}
	return id, productID, nil
}

func detailsOf(body OrderDetails) (order.Details, error) {
	deliveryType, err := order.ParseDeliveryType(valueOf(body.DeliveryType))
	if err != nil {
		return order.Details{}, err
	}
	return order.Details{
		DeliveryType: deliveryType,
		Responsible:  body.Responsible,
		Driver:       valueOf(body.Driver),
		Vehicle:      valueOf(body.Vehicle),
		Notes:        valueOf(body.Notes),
	}, nil
}

func orderFilterOf(params ListOrdersParams) (queries.OrderFilter, error) {
	var filter queries.OrderFilter
	if params.Status != nil {
		status, err := order.ParseStatus(*params.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = status
	}
	if params.DeliveryType != nil {
		deliveryType, err := order.ParseDeliveryType(*params.DeliveryType)
		if err != nil {
			return filter, err
		}
		filter.DeliveryType = deliveryType
	}
	if params.SchoolId != nil {
		schoolID, err := kernel.UUIDFromGoogle(*params.SchoolId)
		if err != nil {
			return filter, err
		}
		filter.SchoolID = schoolID
	}
	if params.ExpectedFrom != nil {
		filter.ExpectedFrom = kernel.DateOf(params.ExpectedFrom.Time)
	}
	if params.ExpectedTo != nil {
		filter.ExpectedTo = kernel.DateOf(params.ExpectedTo.Time)
	}
	filter.OnlyOverdue = valueOf(params.Overdue)
	return filter, nil
}

func schoolFromView(view queries.SchoolView) School {
	return School{
		Id:         view.ID.Value(),
		Name:       view.Name,
		InepCode:   view.INEPCode,
		Kind:       string(view.Kind),
		Level:      string(view.Level),
		Street:     view.Address.Street,
		District:   view.Address.District,
		City:       view.Address.City,
		State:      view.Address.State,
		Active:     view.Active,
		OpenOrders: view.OpenOrders,
	}
}

func apiDate(d kernel.Date) openapi_types.Date {
	return openapi_types.Date{Time: d.Time()}
}

func optionalAPIDate(d kernel.Date) *openapi_types.Date {
	if d.IsZero() {
		return nil
	}
	date := apiDate(d)
	return &date
}

func valueOf[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
