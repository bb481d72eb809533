package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/api/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case handlers the server delegates to.
type (
	PlaceOrderHandler interface {
		Handle(ctx context.Context, cmd commands.PlaceOrderCommand) error
	}

	AdvancePartHandler interface {
		Handle(ctx context.Context, cmd commands.AdvancePartCommand) (order.Status, error)
	}

	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (commands.CancelOrderResult, error)
	}

	GetOrderStatusHandler interface {
		Handle(ctx context.Context, query queries.GetOrderStatusQuery) (queries.GetOrderStatusQueryResponse, error)
	}

	GetOpenOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetOpenOrdersQuery) ([]queries.GetOpenOrdersQueryResponse, error)
	}
)

const defaultOpenOrdersLimit = 100

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler  PlaceOrderHandler
	advancePartHandler AdvancePartHandler
	cancelOrderHandler CancelOrderHandler

	// Query handlers
	getOrderStatusHandler GetOrderStatusHandler
	getOpenOrdersHandler  GetOpenOrdersHandler

	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler PlaceOrderHandler,
	advancePartHandler AdvancePartHandler,
	cancelOrderHandler CancelOrderHandler,
	getOrderStatusHandler GetOrderStatusHandler,
	getOpenOrdersHandler GetOpenOrdersHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		placeOrderHandler:     placeOrderHandler,
		advancePartHandler:    advancePartHandler,
		cancelOrderHandler:    cancelOrderHandler,
		getOrderStatusHandler: getOrderStatusHandler,
		getOpenOrdersHandler:  getOpenOrdersHandler,
		logger:                logger.With("component", "http"),
	}
}

// CreateOrder handles POST /api/v1/orders - places a split order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := toPlaceOrderCommand(body)
	if err != nil {
		return s.badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.fail(ctx, handleErr, "Failed to place order")
	}

	return ctx.JSON(http.StatusCreated, servers.OrderCreated{Id: cmd.OrderID().Bytes()})
}

// GetOpenOrders handles GET /api/v1/orders/open - lists orders still in progress.
func (s *Server) GetOpenOrders(ctx echo.Context, params servers.GetOpenOrdersParams) error {
	limit := defaultOpenOrdersLimit
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewGetOpenOrdersQuery(limit)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	orders, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve orders")
	}

	response := make([]servers.OpenOrder, len(orders))
	for i, o := range orders {
		statuses := make([]string, len(o.PartStatuses))
		for j, status := range o.PartStatuses {
			statuses[j] = status.String()
		}

		response[i] = servers.OpenOrder{
			Id:           o.ID.Bytes(),
			CustomerId:   o.CustomerID.Bytes(),
			Status:       o.Status.String(),
			PartStatuses: statuses,
			CreatedAt:    o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId} - unified and per-part status.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderStatusQuery(id)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	result, err := s.getOrderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, toOrderStatus(result))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.CancelOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := toCancelOrderCommand(orderId, body)
	if err != nil {
		return s.fail(ctx, err, "Invalid cancellation request")
	}

	result, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to cancel order")
	}

	response, err := toCancelOrderResult(result)
	if err != nil {
		return s.fail(ctx, err, "Failed to render cancellation")
	}

	return ctx.JSON(http.StatusOK, response)
}

// AdvancePart handles POST /api/v1/orders/{orderId}/parts/{partId}/status.
func (s *Server) AdvancePart(ctx echo.Context, orderId servers.OrderId, partId openapi_types.UUID) error {
	var body servers.AdvancePartRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := toAdvancePartCommand(orderId, partId, body)
	if err != nil {
		return s.fail(ctx, err, "Invalid status change")
	}

	status, err := s.advancePartHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to change part status")
	}

	return ctx.JSON(http.StatusOK, servers.AdvancePartResult{
		OrderId: orderId,
		PartId:  partId,
		Status:  status.String(),
	})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// fail maps err to a status code. Server errors and rejected status transitions are
// logged; server error details are hidden from the client.
func (s *Server) fail(ctx echo.Context, err error, fallback string) error {
	code := statusCode(err)
	message := err.Error()

	internal := code >= http.StatusInternalServerError
	if internal || errors.Is(err, order.ErrInvalidTransition) {
		s.logger.ErrorContext(ctx.Request().Context(), fallback,
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"status", code,
			"error", err,
		)
	}
	if internal {
		message = fallback
	}

	return ctx.JSON(code, servers.Error{
		Code:    code,
		Message: message,
	})
}
