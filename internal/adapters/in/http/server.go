package http

import (
	"net/http"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler       commands.PlaceOrderCommandHandler
	clearActiveOrderHandler commands.ClearActiveOrderCommandHandler

	// Query handlers
	getActiveOrderHandler  queries.GetActiveOrderQueryHandler
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler
	getPastOrderHandler    queries.GetPastOrderQueryHandler
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	clearActiveOrderHandler commands.ClearActiveOrderCommandHandler,
	getActiveOrderHandler queries.GetActiveOrderQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	getPastOrderHandler queries.GetPastOrderQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:       placeOrderHandler,
		clearActiveOrderHandler: clearActiveOrderHandler,
		getActiveOrderHandler:   getActiveOrderHandler,
		getOrderHistoryHandler:  getOrderHistoryHandler,
		getPastOrderHandler:     getPastOrderHandler,
	}
}

// PlaceOrder handles POST /api/v1/orders - checks out a cart and starts tracking it.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	items := make([]commands.PlaceOrderItem, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, commands.PlaceOrderItem{
			MenuItemID:  item.MenuItemId,
			Name:        item.Name,
			PriceRupees: item.Price,
			Quantity:    item.Quantity,
		})
	}
	var upiID string
	if body.UpiId != nil {
		upiID = *body.UpiId
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(
		orderID,
		body.RestaurantId,
		body.RestaurantName,
		items,
		order.PaymentMethod(body.PaymentMethod),
		upiID,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.OrderCreated{
		Id:          orderID.Bytes(),
		DisplayCode: order.DisplayCodeFor(orderID),
	})
}

// GetActiveOrder handles GET /api/v1/orders/active - the tracking view.
func (s *Server) GetActiveOrder(ctx echo.Context) error {
	resp, err := s.getActiveOrderHandler.Handle(ctx.Request().Context(), queries.NewGetActiveOrderQuery())
	if err != nil {
		return errorResponse(ctx, err)
	}

	active := servers.ActiveOrder{
		Order:    toOrder(resp.OrderResponse),
		Progress: float32(resp.Progress),
		Marker: servers.Marker{
			X:     float32(resp.X),
			Y:     float32(resp.Y),
			Angle: float32(resp.Angle),
			Label: resp.Label,
		},
		Route:       make([]servers.Point, 0, len(resp.Route)),
		DeliveredAt: resp.DeliveredAt,
	}
	for _, p := range resp.Route {
		active.Route = append(active.Route, servers.Point{X: float32(p.X), Y: float32(p.Y)})
	}

	return ctx.JSON(http.StatusOK, active)
}

// ClearActiveOrder handles DELETE /api/v1/orders/active.
func (s *Server) ClearActiveOrder(ctx echo.Context) error {
	if err := s.clearActiveOrderHandler.Handle(ctx.Request().Context(), commands.NewClearActiveOrderCommand()); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderHistory handles GET /api/v1/orders/history.
func (s *Server) GetOrderHistory(ctx echo.Context, params servers.GetOrderHistoryParams) error {
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewGetOrderHistoryQuery(limit)
	if err != nil {
		return errorResponse(ctx, err)
	}

	orders, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = toOrder(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetPastOrder handles GET /api/v1/orders/history/{orderId}.
func (s *Server) GetPastOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetPastOrderQuery(id)
	if err != nil {
		return errorResponse(ctx, err)
	}

	o, err := s.getPastOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(o))
}

func toOrder(o queries.OrderResponse) servers.Order {
	resp := servers.Order{
		Id:             o.ID.Bytes(),
		DisplayCode:    o.DisplayCode,
		RestaurantId:   o.RestaurantID,
		RestaurantName: o.RestaurantName,
		Items:          make([]servers.OrderItem, 0, len(o.Items)),
		Total:          o.TotalRupees,
		DeliveryFee:    o.DeliveryFeeRupees,
		PlatformFee:    o.PlatformFeeRupees,
		AmountToPay:    o.AmountToPayRupees,
		PaymentMethod:  servers.PaymentMethod(o.PaymentMethod),
		Status:         servers.OrderStatus(o.Status),
		PlacedAt:       o.PlacedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, servers.OrderItem{
			MenuItemId: item.MenuItemID,
			Name:       item.Name,
			Price:      item.PriceRupees,
			Quantity:   item.Quantity,
		})
	}
	if o.Driver != nil {
		resp.Driver = &servers.Driver{Name: o.Driver.Name, Phone: o.Driver.Phone}
	}
	return resp
}
