package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const actorHeader = "X-Actor"

// Error defines model for Error.
type Error struct {
	Code       int         `json:"code"`
	Message    string      `json:"message"`
	Shortfalls []Shortfall `json:"shortfalls,omitempty"`
}

// Shortfall defines model for Shortfall.
type Shortfall struct {
	ProductId openapi_types.UUID `json:"product_id"`
	Sku       string             `json:"sku"`
	Name      string             `json:"name,omitempty"`
	Requested int                `json:"requested"`
	Available int                `json:"available"`
	Missing   int                `json:"missing"`
}

// Created defines model for Created.
type Created struct {
	Id openapi_types.UUID `json:"id"`
}

// CreatedOrder defines model for CreatedOrder.
type CreatedOrder struct {
	Id     openapi_types.UUID `json:"id"`
	Number string             `json:"number"`
}

// NewSchool defines model for NewSchool.
type NewSchool struct {
	Name     string  `json:"name"`
	InepCode *string `json:"inep_code,omitempty"`
	Kind     *string `json:"kind,omitempty"`
	Level    *string `json:"level,omitempty"`
	Street   string  `json:"street"`
	District string  `json:"district"`
	City     *string `json:"city,omitempty"`
	State    *string `json:"state,omitempty"`
}

// School defines model for School.
type School struct {
	Id         openapi_types.UUID `json:"id"`
	Name       string             `json:"name"`
	InepCode   string             `json:"inep_code,omitempty"`
	Kind       string             `json:"kind"`
	Level      string             `json:"level"`
	Street     string             `json:"street"`
	District   string             `json:"district"`
	City       string             `json:"city"`
	State      string             `json:"state"`
	Active     bool               `json:"active"`
	OpenOrders int                `json:"open_orders"`
}

// NewProduct defines model for NewProduct.
type NewProduct struct {
	Sku          string  `json:"sku"`
	Name         string  `json:"name"`
	Unit         *string `json:"unit,omitempty"`
	MinStock     *int    `json:"min_stock,omitempty"`
	InitialStock *int    `json:"initial_stock,omitempty"`
}

// ProductStock defines model for ProductStock.
type ProductStock struct {
	Id          openapi_types.UUID `json:"id"`
	Sku         string             `json:"sku"`
	Name        string             `json:"name"`
	Unit        string             `json:"unit"`
	MinStock    int                `json:"min_stock"`
	Stock       int                `json:"stock"`
	StockStatus string             `json:"stock_status"`
}

// NewMovement defines model for NewMovement.
type NewMovement struct {
	Kind     string  `json:"kind"`
	Quantity int     `json:"quantity"`
	Reason   string  `json:"reason"`
	Note     *string `json:"note,omitempty"`
}

// NewStockCount defines model for NewStockCount.
type NewStockCount struct {
	CountedStock int     `json:"counted_stock"`
	Note         *string `json:"note,omitempty"`
}

// StockAdjustment defines model for StockAdjustment.
type StockAdjustment struct {
	MovementId    *openapi_types.UUID `json:"movement_id,omitempty"`
	PreviousStock int                 `json:"previous_stock"`
	CountedStock  int                 `json:"counted_stock"`
	Difference    int                 `json:"difference"`
}

// Movement defines model for Movement.
type Movement struct {
	Id         openapi_types.UUID `json:"id"`
	Kind       string             `json:"kind"`
	Quantity   int                `json:"quantity"`
	Reason     string             `json:"reason"`
	Note       string             `json:"note,omitempty"`
	Actor      string             `json:"actor"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// OrderDetails defines model for OrderDetails.
type OrderDetails struct {
	ExpectedDate openapi_types.Date `json:"expected_date"`
	DeliveryType *string            `json:"delivery_type,omitempty"`
	Responsible  string             `json:"responsible"`
	Driver       *string            `json:"driver,omitempty"`
	Vehicle      *string            `json:"vehicle,omitempty"`
	Notes        *string            `json:"notes,omitempty"`
}

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	ProductId openapi_types.UUID `json:"product_id"`
	Quantity  int                `json:"quantity"`
	Note      *string            `json:"note,omitempty"`
}

// ItemQuantity defines model for ItemQuantity.
type ItemQuantity struct {
	Quantity int `json:"quantity"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	OrderDetails
	SchoolId openapi_types.UUID `json:"school_id"`
	Number   *string            `json:"number,omitempty"`
	Items    []NewOrderItem     `json:"items"`
}

// Transition defines model for Transition.
type Transition struct {
	Status string  `json:"status"`
	Note   *string `json:"note,omitempty"`
}

// Finalize defines model for Finalize.
type Finalize struct {
	Note *string `json:"note,omitempty"`
}

// OrderSummary defines model for OrderSummary.
type OrderSummary struct {
	Id                 openapi_types.UUID  `json:"id"`
	Number             string              `json:"number"`
	SchoolId           openapi_types.UUID  `json:"school_id"`
	SchoolName         string              `json:"school_name"`
	Status             string              `json:"status"`
	DeliveryType       string              `json:"delivery_type"`
	Responsible        string              `json:"responsible,omitempty"`
	ExpectedDate       openapi_types.Date  `json:"expected_date"`
	ActualDeliveryDate *openapi_types.Date `json:"actual_delivery_date,omitempty"`
	ItemCount          int                 `json:"item_count"`
	TotalQuantity      int                 `json:"total_quantity"`
	Overdue            bool                `json:"overdue"`
}

// OrderList defines model for OrderList.
type OrderList struct {
	Orders        []OrderSummary `json:"orders"`
	CountByStatus map[string]int `json:"count_by_status"`
	Overdue       int            `json:"overdue"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	Id          openapi_types.UUID `json:"id"`
	ProductId   openapi_types.UUID `json:"product_id"`
	Sku         string             `json:"sku"`
	ProductName string             `json:"product_name"`
	Unit        string             `json:"unit"`
	Requested   int                `json:"requested"`
	Delivered   int                `json:"delivered"`
	Note        string             `json:"note,omitempty"`
}

// HistoryEntry defines model for HistoryEntry.
type HistoryEntry struct {
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Actor          string    `json:"actor"`
	Note           string    `json:"note,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Order defines model for Order.
type Order struct {
	OrderSummary
	Driver    string         `json:"driver,omitempty"`
	Vehicle   string         `json:"vehicle,omitempty"`
	Notes     string         `json:"notes,omitempty"`
	CreatedBy string         `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	Items     []OrderItem    `json:"items"`
	History   []HistoryEntry `json:"history"`
}

// ListSchoolsParams defines parameters for ListSchools.
type ListSchoolsParams struct {
	IncludeInactive *bool `form:"include_inactive,omitempty" json:"include_inactive,omitempty"`
}

// ListProductMovementsParams defines parameters for ListProductMovements.
type ListProductMovementsParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Status       *string             `form:"status,omitempty" json:"status,omitempty"`
	DeliveryType *string             `form:"delivery_type,omitempty" json:"delivery_type,omitempty"`
	SchoolId     *openapi_types.UUID `form:"school_id,omitempty" json:"school_id,omitempty"`
	ExpectedFrom *openapi_types.Date `form:"expected_from,omitempty" json:"expected_from,omitempty"`
	ExpectedTo   *openapi_types.Date `form:"expected_to,omitempty" json:"expected_to,omitempty"`
	Overdue      *bool               `form:"overdue,omitempty" json:"overdue,omitempty"`
}

// ActorParams carries the X-Actor header of operations that record who
// made a change.
type ActorParams struct {
	XActor string `json:"X-Actor"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /api/v1/schools)
	ListSchools(ctx echo.Context, params ListSchoolsParams) error
	// (POST /api/v1/schools)
	CreateSchool(ctx echo.Context) error
	// (GET /api/v1/schools/{schoolId})
	GetSchool(ctx echo.Context, schoolId openapi_types.UUID) error
	// (POST /api/v1/products)
	CreateProduct(ctx echo.Context, params ActorParams) error
	// (GET /api/v1/products/low-stock)
	ListLowStockProducts(ctx echo.Context) error
	// (GET /api/v1/products/{productId}/movements)
	ListProductMovements(ctx echo.Context, productId openapi_types.UUID, params ListProductMovementsParams) error
	// (POST /api/v1/products/{productId}/movements)
	RecordMovement(ctx echo.Context, productId openapi_types.UUID, params ActorParams) error
	// (POST /api/v1/products/{productId}/adjustments)
	AdjustStock(ctx echo.Context, productId openapi_types.UUID, params ActorParams) error
	// (DELETE /api/v1/movements/{movementId})
	RevertMovement(ctx echo.Context, movementId openapi_types.UUID) error
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context, params ActorParams) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (PUT /api/v1/orders/{orderId})
	RescheduleOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (DELETE /api/v1/orders/{orderId})
	DeleteOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/transitions)
	TransitionOrder(ctx echo.Context, orderId openapi_types.UUID, params ActorParams) error
	// (POST /api/v1/orders/{orderId}/finalize)
	FinalizeDelivery(ctx echo.Context, orderId openapi_types.UUID, params ActorParams) error
	// (POST /api/v1/orders/{orderId}/items)
	AddOrderItem(ctx echo.Context, orderId openapi_types.UUID) error
	// (PUT /api/v1/orders/{orderId}/items/{productId})
	SetOrderItemQuantity(ctx echo.Context, orderId openapi_types.UUID, productId openapi_types.UUID) error
	// (DELETE /api/v1/orders/{orderId}/items/{productId})
	RemoveOrderItem(ctx echo.Context, orderId openapi_types.UUID, productId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindActor(ctx echo.Context) (ActorParams, error) {
	var params ActorParams
	valueList, found := ctx.Request().Header[http.CanonicalHeaderKey(actorHeader)]
	if !found {
		return params, echo.NewHTTPError(http.StatusBadRequest, "Header parameter X-Actor is required, but not found")
	}
	if n := len(valueList); n != 1 {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for X-Actor, got %d", n))
	}

	var actor string
	err := runtime.BindStyledParameterWithOptions("simple", actorHeader, valueList[0], &actor,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter X-Actor: %s", err))
	}
	params.XActor = actor
	return params, nil
}

func bindQuery(ctx echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

// ListSchools converts echo context to params.
func (w *ServerInterfaceWrapper) ListSchools(ctx echo.Context) error {
	var params ListSchoolsParams
	if err := bindQuery(ctx, "include_inactive", &params.IncludeInactive); err != nil {
		return err
	}
	return w.Handler.ListSchools(ctx, params)
}

// CreateSchool converts echo context to params.
func (w *ServerInterfaceWrapper) CreateSchool(ctx echo.Context) error {
	return w.Handler.CreateSchool(ctx)
}

// GetSchool converts echo context to params.
func (w *ServerInterfaceWrapper) GetSchool(ctx echo.Context) error {
	schoolId, err := bindPathUUID(ctx, "schoolId")
	if err != nil {
		return err
	}
	return w.Handler.GetSchool(ctx, schoolId)
}

// CreateProduct converts echo context to params.
func (w *ServerInterfaceWrapper) CreateProduct(ctx echo.Context) error {
	params, err := bindActor(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CreateProduct(ctx, params)
}

// ListLowStockProducts converts echo context to params.
func (w *ServerInterfaceWrapper) ListLowStockProducts(ctx echo.Context) error {
	return w.Handler.ListLowStockProducts(ctx)
}

// ListProductMovements converts echo context to params.
func (w *ServerInterfaceWrapper) ListProductMovements(ctx echo.Context) error {
	productId, err := bindPathUUID(ctx, "productId")
	if err != nil {
		return err
	}
	var params ListProductMovementsParams
	if err := bindQuery(ctx, "limit", &params.Limit); err != nil {
		return err
	}
	return w.Handler.ListProductMovements(ctx, productId, params)
}

// RecordMovement converts echo context to params.
func (w *ServerInterfaceWrapper) RecordMovement(ctx echo.Context) error {
	productId, err := bindPathUUID(ctx, "productId")
	if err != nil {
		return err
	}
	params, err := bindActor(ctx)
	if err != nil {
		return err
	}
	return w.Handler.RecordMovement(ctx, productId, params)
}

// AdjustStock converts echo context to params.
func (w *ServerInterfaceWrapper) AdjustStock(ctx echo.Context) error {
	productId, err := bindPathUUID(ctx, "productId")
	if err != nil {
		return err
	}
	params, err := bindActor(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AdjustStock(ctx, productId, params)
}

// RevertMovement converts echo context to params.
func (w *ServerInterfaceWrapper) RevertMovement(ctx echo.Context) error {
	movementId, err := bindPathUUID(ctx, "movementId")
	if err != nil {
		return err
	}
	return w.Handler.RevertMovement(ctx, movementId)
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	for name, dest := range map[string]any{
		"status":        &params.Status,
		"delivery_type": &params.DeliveryType,
		"school_id":     &params.SchoolId,
		"expected_from": &params.ExpectedFrom,
		"expected_to":   &params.ExpectedTo,
		"overdue":       &params.Overdue,
	} {
		if err := bindQuery(ctx, name, dest); err != nil {
			return err
		}
	}
	return w.Handler.ListOrders(ctx, params)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	params, err := bindActor(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CreateOrder(ctx, params)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

// RescheduleOrder converts echo context to params.
func (w *ServerInterfaceWrapper) RescheduleOrder(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.RescheduleOrder(ctx, orderId)
}

// DeleteOrder converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.DeleteOrder(ctx, orderId)
}

// TransitionOrder converts echo context to params.
func (w *ServerInterfaceWrapper) TransitionOrder(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	params, err := bindActor(ctx)
	if err != nil {
		return err
	}
	return w.Handler.TransitionOrder(ctx, orderId, params)
}

// FinalizeDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) FinalizeDelivery(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	params, err := bindActor(ctx)
	if err != nil {
		return err
	}
	return w.Handler.FinalizeDelivery(ctx, orderId, params)
}

// AddOrderItem converts echo context to params.
func (w *ServerInterfaceWrapper) AddOrderItem(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.AddOrderItem(ctx, orderId)
}

// SetOrderItemQuantity converts echo context to params.
func (w *ServerInterfaceWrapper) SetOrderItemQuantity(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	productId, err := bindPathUUID(ctx, "productId")
	if err != nil {
		return err
	}
	return w.Handler.SetOrderItemQuantity(ctx, orderId, productId)
}

// RemoveOrderItem converts echo context to params.
func (w *ServerInterfaceWrapper) RemoveOrderItem(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	productId, err := bindPathUUID(ctx, "productId")
	if err != nil {
		return err
	}
	return w.Handler.RemoveOrderItem(ctx, orderId, productId)
}

// EchoRouter is the subset of echo.Echo and echo.Group that handlers are
// registered on.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/schools", wrapper.ListSchools)
	router.POST(baseURL+"/api/v1/schools", wrapper.CreateSchool)
	router.GET(baseURL+"/api/v1/schools/:schoolId", wrapper.GetSchool)
	router.POST(baseURL+"/api/v1/products", wrapper.CreateProduct)
	router.GET(baseURL+"/api/v1/products/low-stock", wrapper.ListLowStockProducts)
	router.GET(baseURL+"/api/v1/products/:productId/movements", wrapper.ListProductMovements)
	router.POST(baseURL+"/api/v1/products/:productId/movements", wrapper.RecordMovement)
	router.POST(baseURL+"/api/v1/products/:productId/adjustments", wrapper.AdjustStock)
	router.DELETE(baseURL+"/api/v1/movements/:movementId", wrapper.RevertMovement)
	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.PUT(baseURL+"/api/v1/orders/:orderId", wrapper.RescheduleOrder)
	router.DELETE(baseURL+"/api/v1/orders/:orderId", wrapper.DeleteOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/transitions", wrapper.TransitionOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/finalize", wrapper.FinalizeDelivery)
	router.POST(baseURL+"/api/v1/orders/:orderId/items", wrapper.AddOrderItem)
	router.PUT(baseURL+"/api/v1/orders/:orderId/items/:productId", wrapper.SetOrderItemQuantity)
	router.DELETE(baseURL+"/api/v1/orders/:orderId/items/:productId", wrapper.RemoveOrderItem)
}
