// Package servers holds the HTTP contract of the tracking API: the OpenAPI
// document, its request and response types, and the echo wrapper that binds
// path and query parameters before calling a ServerInterface.
//
// The layout follows oapi-codegen's echo server output so the package can be
// regenerated from openapi.yaml.
package servers

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

//go:embed openapi.yaml
var swaggerSpec []byte

// Defines values for PaymentMethod.
const (
	CARD PaymentMethod = "CARD"
	COD  PaymentMethod = "COD"
	UPI  PaymentMethod = "UPI"
)

// Defines values for OrderStatus.
const (
	CANCELLED      OrderStatus = "CANCELLED"
	DELIVERED      OrderStatus = "DELIVERED"
	DRIVERASSIGNED OrderStatus = "DRIVER_ASSIGNED"
	FINDINGDRIVER  OrderStatus = "FINDING_DRIVER"
	PICKEDUP       OrderStatus = "PICKED_UP"
	PLACED         OrderStatus = "PLACED"
)

// ActiveOrder defines model for ActiveOrder.
type ActiveOrder struct {
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
	Marker      Marker     `json:"marker"`
	Order       Order      `json:"order"`
	Progress    float32    `json:"progress"`
	Route       []Point    `json:"route"`
}

// Driver defines model for Driver.
type Driver struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Marker defines model for Marker.
type Marker struct {
	Angle float32 `json:"angle"`
	Label string  `json:"label"`
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Items          []NewOrderItem `json:"items"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod"`
	RestaurantId   string         `json:"restaurantId"`
	RestaurantName string         `json:"restaurantName"`
	UpiId          *string        `json:"upiId,omitempty"`
}

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	MenuItemId string `json:"menuItemId"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Quantity   int    `json:"quantity"`
}

// Order defines model for Order.
type Order struct {
	AmountToPay    int64              `json:"amountToPay"`
	DeliveryFee    int64              `json:"deliveryFee"`
	DisplayCode    string             `json:"displayCode"`
	Driver         *Driver            `json:"driver,omitempty"`
	Id             openapi_types.UUID `json:"id"`
	Items          []OrderItem        `json:"items"`
	PaymentMethod  PaymentMethod      `json:"paymentMethod"`
	PlacedAt       time.Time          `json:"placedAt"`
	PlatformFee    int64              `json:"platformFee"`
	RestaurantId   string             `json:"restaurantId"`
	RestaurantName string             `json:"restaurantName"`
	Status         OrderStatus        `json:"status"`
	Total          int64              `json:"total"`
}

// OrderCreated defines model for OrderCreated.
type OrderCreated struct {
	DisplayCode string             `json:"displayCode"`
	Id          openapi_types.UUID `json:"id"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	MenuItemId string `json:"menuItemId"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Quantity   int    `json:"quantity"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// PaymentMethod defines model for PaymentMethod.
type PaymentMethod string

// Point defines model for Point.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// GetOrderHistoryParams defines parameters for GetOrderHistory.
type GetOrderHistoryParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// PlaceOrderJSONRequestBody defines body for PlaceOrder for application/json ContentType.
type PlaceOrderJSONRequestBody = NewOrder

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Check out a cart and start tracking it
	// (POST /api/v1/orders)
	PlaceOrder(ctx echo.Context) error
	// Drop the active order
	// (DELETE /api/v1/orders/active)
	ClearActiveOrder(ctx echo.Context) error
	// Tracking view of the active order
	// (GET /api/v1/orders/active)
	GetActiveOrder(ctx echo.Context) error
	// Past orders, most recent first
	// (GET /api/v1/orders/history)
	GetOrderHistory(ctx echo.Context, params GetOrderHistoryParams) error
	// One past order
	// (GET /api/v1/orders/history/{orderId})
	GetPastOrder(ctx echo.Context, orderId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// PlaceOrder converts echo context to params.
func (w *ServerInterfaceWrapper) PlaceOrder(ctx echo.Context) error {
	return w.Handler.PlaceOrder(ctx)
}

// ClearActiveOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ClearActiveOrder(ctx echo.Context) error {
	return w.Handler.ClearActiveOrder(ctx)
}

// GetActiveOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetActiveOrder(ctx echo.Context) error {
	return w.Handler.GetActiveOrder(ctx)
}

// GetOrderHistory converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderHistory(ctx echo.Context) error {
	var err error

	var params GetOrderHistoryParams

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.GetOrderHistory(ctx, params)
}

// GetPastOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetPastOrder(ctx echo.Context) error {
	var err error
	var orderId openapi_types.UUID

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	return w.Handler.GetPastOrder(ctx, orderId)
}

// EchoRouter is an interface that wraps the methods of echo.Echo and
// echo.Group to be able to register handlers on either of them.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to
// the paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/orders", wrapper.PlaceOrder)
	router.DELETE(baseURL+"/api/v1/orders/active", wrapper.ClearActiveOrder)
	router.GET(baseURL+"/api/v1/orders/active", wrapper.GetActiveOrder)
	router.GET(baseURL+"/api/v1/orders/history", wrapper.GetOrderHistory)
	router.GET(baseURL+"/api/v1/orders/history/:orderId", wrapper.GetPastOrder)
}

// GetSwagger returns the parsed and validated OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(swaggerSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}
	if err = swagger.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("error validating Swagger: %w", err)
	}
	return swagger, nil
}
