package http

import (
	"net/http"

	"fastfeet/internal/core/application/usecases/commands"
	"fastfeet/internal/core/application/usecases/queries"
	"fastfeet/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Server binds HTTP requests to the application use cases.
type Server struct {
	// Command handlers
	createRecipientHandler commands.CreateRecipientCommandHandler
	createOrderHandler     commands.CreateOrderCommandHandler
	pickUpOrderHandler     commands.PickUpOrderCommandHandler
	deliverOrderHandler    commands.DeliverOrderCommandHandler

	// Query handlers
	fetchAwaitingOrdersHandler  queries.FetchAwaitingOrdersQueryHandler
	fetchCompletedOrdersHandler queries.FetchCompletedOrdersQueryHandler
	getOrderDetailsHandler      queries.GetOrderDetailsQueryHandler
	trackOrderHandler           queries.TrackOrderQueryHandler
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateRecipient      commands.CreateRecipientCommandHandler
	CreateOrder          commands.CreateOrderCommandHandler
	PickUpOrder          commands.PickUpOrderCommandHandler
	DeliverOrder         commands.DeliverOrderCommandHandler
	FetchAwaitingOrders  queries.FetchAwaitingOrdersQueryHandler
	FetchCompletedOrders queries.FetchCompletedOrdersQueryHandler
	GetOrderDetails      queries.GetOrderDetailsQueryHandler
	TrackOrder           queries.TrackOrderQueryHandler
}

func NewServer(h Handlers) *Server {
	return &Server{
		createRecipientHandler:      h.CreateRecipient,
		createOrderHandler:          h.CreateOrder,
		pickUpOrderHandler:          h.PickUpOrder,
		deliverOrderHandler:         h.DeliverOrder,
		fetchAwaitingOrdersHandler:  h.FetchAwaitingOrders,
		fetchCompletedOrdersHandler: h.FetchCompletedOrders,
		getOrderDetailsHandler:      h.GetOrderDetails,
		trackOrderHandler:           h.TrackOrder,
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateRecipient handles POST /recipients.
func (s *Server) CreateRecipient(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	var body NewRecipientRequest
	if err = ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCreateRecipientCommand(caller.Role, body.Name)
	if err != nil {
		return err
	}

	id, err := s.createRecipientHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, CreatedRecipientResponse{ID: id.String()})
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	var body NewOrderRequest
	if err = ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	recipientID, err := kernel.UUIDFromString(body.RecipientID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(caller.Role, recipientID, body.City, body.Neighborhood, body.Title)
	if err != nil {
		return err
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, CreatedOrderResponse{
		ID:           result.OrderID.String(),
		TrackingCode: result.TrackingCode,
	})
}

// FetchAwaitingOrders handles GET /orders/awaiting.
func (s *Server) FetchAwaitingOrders(ctx echo.Context) error {
	query, err := fetchOrdersQueryFrom(ctx)
	if err != nil {
		return err
	}

	orders, err := s.fetchAwaitingOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, OrderListResponse{Orders: presentOrders(orders)})
}

// FetchCompletedOrders handles GET /orders/completed.
func (s *Server) FetchCompletedOrders(ctx echo.Context) error {
	query, err := fetchOrdersQueryFrom(ctx)
	if err != nil {
		return err
	}

	orders, err := s.fetchCompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, OrderListResponse{Orders: presentOrders(orders)})
}

// GetOrderDetails handles GET /orders/{orderId}.
func (s *Server) GetOrderDetails(ctx echo.Context) error {
	if _, err := callerFrom(ctx); err != nil {
		return err
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderDetailsQuery(orderID)
	if err != nil {
		return err
	}

	details, err := s.getOrderDetailsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, OrderDetailsResponse{
		Order:     presentOrder(details.Order),
		Recipient: presentRecipient(details.Recipient),
	})
}

// TrackOrder handles GET /orders/tracking/{trackingCode}. It is public: the
// code itself is the credential.
func (s *Server) TrackOrder(ctx echo.Context) error {
	var code string
	if err := runtime.BindStyledParameterWithOptions("simple", "trackingCode", ctx.Param("trackingCode"), &code,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true}); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter trackingCode: "+err.Error())
	}

	query, err := queries.NewTrackOrderQuery(code)
	if err != nil {
		return err
	}

	o, err := s.trackOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, TrackedOrderResponse{TrackingCode: o.TrackingCode(), Order: presentOrder(o)})
}

// PickUpOrder handles PATCH /orders/{orderId}/pickup.
func (s *Server) PickUpOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewPickUpOrderCommand(caller.Role, orderID, caller.ID)
	if err != nil {
		return err
	}

	if err = s.pickUpOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeliverOrder handles PATCH /orders/{orderId}/deliver.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return err
	}

	var body DeliveryRequest
	if err = ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewDeliverOrderCommand(caller.Role, orderID, caller.ID, body.AttachmentID)
	if err != nil {
		return err
	}

	if err = s.deliverOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	var raw uuid.UUID
	if err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true}); err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter orderId: "+err.Error())
	}
	return kernel.UUIDFromBytes(raw[:])
}

func fetchOrdersQueryFrom(ctx echo.Context) (queries.FetchOrdersQuery, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return queries.FetchOrdersQuery{}, err
	}

	var city string
	if err = runtime.BindQueryParameter("form", true, true, "city", ctx.QueryParams(), &city); err != nil {
		return queries.FetchOrdersQuery{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter city: "+err.Error())
	}

	page := 1
	if err = runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &page); err != nil {
		return queries.FetchOrdersQuery{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter page: "+err.Error())
	}

	return queries.NewFetchOrdersQuery(caller.Role, caller.ID, city, page)
}
