package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/api/servers"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockPlaceOrderHandler struct {
	mock.Mock
}

func (m *MockPlaceOrderHandler) Handle(ctx context.Context, cmd commands.PlaceOrderCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockAdvancePartHandler struct {
	mock.Mock
}

func (m *MockAdvancePartHandler) Handle(ctx context.Context, cmd commands.AdvancePartCommand) (order.Status, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(order.Status), args.Error(1)
}

type MockCancelOrderHandler struct {
	mock.Mock
}

func (m *MockCancelOrderHandler) Handle(
	ctx context.Context,
	cmd commands.CancelOrderCommand,
) (commands.CancelOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CancelOrderResult), args.Error(1)
}

type MockGetOrderStatusHandler struct {
	mock.Mock
}

func (m *MockGetOrderStatusHandler) Handle(
	ctx context.Context,
	query queries.GetOrderStatusQuery,
) (queries.GetOrderStatusQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderStatusQueryResponse), args.Error(1)
}

type MockGetOpenOrdersHandler struct {
	mock.Mock
}

func (m *MockGetOpenOrdersHandler) Handle(
	ctx context.Context,
	query queries.GetOpenOrdersQuery,
) ([]queries.GetOpenOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetOpenOrdersQueryResponse), args.Error(1)
}

type ServerTestSuite struct {
	suite.Suite
	echo          *echo.Echo
	placeOrder    *MockPlaceOrderHandler
	advancePart   *MockAdvancePartHandler
	cancelOrder   *MockCancelOrderHandler
	getOrder      *MockGetOrderStatusHandler
	getOpenOrders *MockGetOpenOrdersHandler
	logs          *bytes.Buffer
}

func (suite *ServerTestSuite) SetupTest() {
	suite.placeOrder = new(MockPlaceOrderHandler)
	suite.advancePart = new(MockAdvancePartHandler)
	suite.cancelOrder = new(MockCancelOrderHandler)
	suite.getOrder = new(MockGetOrderStatusHandler)
	suite.getOpenOrders = new(MockGetOpenOrdersHandler)
	suite.logs = new(bytes.Buffer)

	server := httpadapter.NewServer(
		suite.placeOrder,
		suite.advancePart,
		suite.cancelOrder,
		suite.getOrder,
		suite.getOpenOrders,
		slog.New(slog.NewTextHandler(suite.logs, nil)),
	)

	suite.echo = echo.New()
	servers.RegisterHandlers(suite.echo, server)
}

func (suite *ServerTestSuite) TearDownTest() {
	suite.placeOrder.AssertExpectations(suite.T())
	suite.advancePart.AssertExpectations(suite.T())
	suite.cancelOrder.AssertExpectations(suite.T())
	suite.getOrder.AssertExpectations(suite.T())
	suite.getOpenOrders.AssertExpectations(suite.T())
}

func (suite *ServerTestSuite) TestCreateOrder_Success() {
	orderID := kernel.NewUUID()
	vendorID := kernel.NewUUID()
	body := `{
		"id": "` + orderID.String() + `",
		"customerId": "` + kernel.NewUUID().String() + `",
		"parts": [
			{"items": [{"sku": "SKU-A", "quantity": 2, "unitPrice": "10.00"}]},
			{"vendorId": "` + vendorID.String() + `", "commissionRate": "0.10",
			 "items": [{"sku": "SKU-V", "quantity": 1, "unitPrice": "50.00"}]}
		]
	}`

	suite.placeOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PlaceOrderCommand) bool {
		parts := cmd.Parts()
		return cmd.OrderID() == orderID &&
			len(parts) == 2 &&
			parts[0].VendorID == nil &&
			parts[1].VendorID != nil && *parts[1].VendorID == vendorID &&
			parts[1].CommissionRate.String() == "0.10" &&
			parts[1].Items[0].UnitPrice.String() == "50.00"
	})).Return(nil).Once()

	rec := suite.do(http.MethodPost, "/api/v1/orders", body)

	suite.Equal(http.StatusCreated, rec.Code)
	var created servers.OrderCreated
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	suite.Equal(orderID.String(), created.Id.String())
}

func (suite *ServerTestSuite) TestCreateOrder_InvalidUnitPrice_ReturnsBadRequest() {
	body := `{
		"customerId": "` + kernel.NewUUID().String() + `",
		"parts": [{"items": [{"sku": "SKU-A", "quantity": 1, "unitPrice": "ten"}]}]
	}`

	rec := suite.do(http.MethodPost, "/api/v1/orders", body)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(suite.errorMessage(rec), "unitPrice")
	suite.placeOrder.AssertNotCalled(suite.T(), "Handle", mock.Anything, mock.Anything)
}

func (suite *ServerTestSuite) TestCreateOrder_HandlerFailure_HidesDetails() {
	suite.placeOrder.On("Handle", mock.Anything, mock.Anything).
		Return(errors.New("connection refused")).Once()

	body := `{
		"customerId": "` + kernel.NewUUID().String() + `",
		"parts": [{"items": [{"sku": "SKU-A", "quantity": 1, "unitPrice": "1.00"}]}]
	}`
	rec := suite.do(http.MethodPost, "/api/v1/orders", body)

	suite.Equal(http.StatusInternalServerError, rec.Code)
	suite.Equal("Failed to place order", suite.errorMessage(rec))
	suite.Contains(suite.logs.String(), "connection refused")
}

func (suite *ServerTestSuite) TestGetOrder_Success() {
	orderID := kernel.NewUUID()
	vendorID := kernel.NewUUID()
	partID := kernel.NewUUID()
	response := queries.GetOrderStatusQueryResponse{
		ID:          orderID,
		CustomerID:  kernel.NewUUID(),
		Status:      order.Shipped,
		Version:     3,
		Cancellable: true,
		Total:       kernel.MustMoney("60.00"),
		Parts: []queries.PartStatusResponse{
			{ID: kernel.NewUUID(), Kind: order.KindAdmin, Status: order.Shipped, Subtotal: kernel.MustMoney("10.00")},
			{
				ID: partID, Kind: order.KindVendor, VendorID: &vendorID, Status: order.CancelledByCustomer,
				Subtotal: kernel.MustMoney("50.00"),
			},
		},
		Reversals: []queries.CommissionReversalResponse{
			{PartID: partID, VendorID: vendorID, Amount: kernel.MustMoney("5.00")},
		},
	}
	suite.getOrder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderStatusQuery) bool {
		return q.OrderID() == orderID
	})).Return(response, nil).Once()

	rec := suite.do(http.MethodGet, "/api/v1/orders/"+orderID.String(), "")

	suite.Require().Equal(http.StatusOK, rec.Code)
	var body servers.OrderStatus
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	suite.Equal("shipped", body.Status)
	suite.Equal("60.00", body.Total)
	suite.Equal(int64(3), body.Version)
	suite.Require().Len(body.Parts, 2)
	suite.Nil(body.Parts[0].VendorId)
	suite.Equal(servers.PartKindVendor, body.Parts[1].Kind)
	suite.Equal("cancelled_by_customer", body.Parts[1].Status)
	suite.Require().Len(body.Reversals, 1)
	suite.Equal("5.00", body.Reversals[0].Amount)
}

func (suite *ServerTestSuite) TestGetOrder_NotFound() {
	orderID := kernel.NewUUID()
	suite.getOrder.On("Handle", mock.Anything, mock.Anything).
		Return(queries.GetOrderStatusQueryResponse{}, errs.NewObjectNotFoundError("order", orderID)).Once()

	rec := suite.do(http.MethodGet, "/api/v1/orders/"+orderID.String(), "")

	suite.Equal(http.StatusNotFound, rec.Code)
	suite.Empty(suite.logs.String())
}

func (suite *ServerTestSuite) TestGetOrder_MalformedID_ReturnsBadRequest() {
	rec := suite.do(http.MethodGet, "/api/v1/orders/not-a-uuid", "")

	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestGetOpenOrders_DefaultLimit() {
	created := []queries.GetOpenOrdersQueryResponse{{
		ID:           kernel.NewUUID(),
		CustomerID:   kernel.NewUUID(),
		Status:       order.Processing,
		PartStatuses: []order.Status{order.Processing, order.Placed},
	}}
	suite.getOpenOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOpenOrdersQuery) bool {
		return q.Limit() == 100
	})).Return(created, nil).Once()

	rec := suite.do(http.MethodGet, "/api/v1/orders/open", "")

	suite.Require().Equal(http.StatusOK, rec.Code)
	var body []servers.OpenOrder
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	suite.Require().Len(body, 1)
	suite.Equal("processing", body[0].Status)
	suite.Equal([]string{"processing", "placed"}, body[0].PartStatuses)
}

func (suite *ServerTestSuite) TestGetOpenOrders_LimitOutOfRange() {
	rec := suite.do(http.MethodGet, "/api/v1/orders/open?limit=0", "")

	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestCancelOrder_Customer_ReturnsOutcomes() {
	orderID := kernel.NewUUID()
	partID := kernel.NewUUID()
	vendorID := kernel.NewUUID()
	result := commands.CancelOrderResult{
		OrderCancellationOutcome: services.OrderCancellationOutcome{
			OrderID: orderID,
			Outcomes: []services.CancellationOutcome{{
				PartID:                     partID,
				VendorID:                   &vendorID,
				Kind:                       order.KindVendor,
				Actor:                      order.ActorCustomer,
				PriorStatus:                order.Processing,
				NewStatus:                  order.CancelledByCustomer,
				CommissionReversalRequired: true,
				RefundAmount:               kernel.MustMoney("50.00"),
				CommissionAmount:           kernel.MustMoney("5.00"),
			}},
			AnyCommissionReversalRequired: true,
		},
		Status: order.Placed,
	}
	suite.cancelOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CancelOrderCommand) bool {
		return cmd.OrderID() == orderID &&
			cmd.Actor() == order.ActorCustomer &&
			cmd.TargetPartID() != nil && *cmd.TargetPartID() == partID &&
			cmd.Reason() == "changed my mind"
	})).Return(result, nil).Once()

	rec := suite.do(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/cancel",
		`{"actor": "customer", "partId": "`+partID.String()+`", "reason": "changed my mind"}`)

	suite.Require().Equal(http.StatusOK, rec.Code)
	var body servers.CancelOrderResult
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	suite.Equal("placed", body.Status)
	suite.True(body.AnyCommissionReversalRequired)
	suite.Equal("50.00", body.RefundTotal)
	suite.Equal("5.00", body.CommissionTotal)
	suite.Require().Len(body.Outcomes, 1)
	suite.Equal("processing", body.Outcomes[0].PriorStatus)
	suite.Equal("cancelled_by_customer", body.Outcomes[0].NewStatus)
	suite.Equal("cancelled, commission reversed", body.Outcomes[0].Message)
}

func (suite *ServerTestSuite) TestCancelOrder_VendorWithoutPart_ReturnsBadRequest() {
	rec := suite.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/cancel",
		`{"actor": "vendor", "vendorId": "`+kernel.NewUUID().String()+`"}`)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.cancelOrder.AssertNotCalled(suite.T(), "Handle", mock.Anything, mock.Anything)
}

func (suite *ServerTestSuite) TestCancelOrder_MapsBusinessErrors() {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nothing cancellable", services.ErrNotCancellable, http.StatusConflict},
		{"foreign vendor", commands.ErrActorIsNotAllowed, http.StatusForbidden},
		{"concurrent update", errs.NewVersionIsInvalidError("order"), http.StatusConflict},
		{"unknown part", errs.NewObjectNotFoundError("partId", kernel.NewUUID()), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.cancelOrder.On("Handle", mock.Anything, mock.Anything).
				Return(commands.CancelOrderResult{}, tt.err).Once()

			rec := suite.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/cancel",
				`{"actor": "admin"}`)

			suite.Equal(tt.expected, rec.Code)
			suite.Contains(suite.errorMessage(rec), tt.err.Error())
		})
	}
}

func (suite *ServerTestSuite) TestAdvancePart_Success() {
	orderID := kernel.NewUUID()
	partID := kernel.NewUUID()
	vendorID := kernel.NewUUID()
	suite.advancePart.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AdvancePartCommand) bool {
		return cmd.OrderID() == orderID &&
			cmd.PartID() == partID &&
			cmd.Target() == order.Processing &&
			cmd.Actor() == order.ActorVendor &&
			*cmd.VendorID() == vendorID
	})).Return(order.Processing, nil).Once()

	rec := suite.do(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/parts/"+partID.String()+"/status",
		`{"actor": "vendor", "vendorId": "`+vendorID.String()+`", "status": "processing"}`)

	suite.Require().Equal(http.StatusOK, rec.Code)
	var body servers.AdvancePartResult
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	suite.Equal("processing", body.Status)
	suite.Equal(partID.String(), body.PartId.String())
}

func (suite *ServerTestSuite) TestAdvancePart_Customer_IsForbidden() {
	rec := suite.do(http.MethodPost,
		"/api/v1/orders/"+kernel.NewUUID().String()+"/parts/"+kernel.NewUUID().String()+"/status",
		`{"actor": "customer", "status": "shipped"}`)

	suite.Equal(http.StatusForbidden, rec.Code)
	suite.advancePart.AssertNotCalled(suite.T(), "Handle", mock.Anything, mock.Anything)
}

func (suite *ServerTestSuite) TestAdvancePart_InvalidTransition() {
	suite.advancePart.On("Handle", mock.Anything, mock.Anything).
		Return(order.Status(""), order.ErrInvalidTransition).Once()

	rec := suite.do(http.MethodPost,
		"/api/v1/orders/"+kernel.NewUUID().String()+"/parts/"+kernel.NewUUID().String()+"/status",
		`{"actor": "admin", "status": "delivered"}`)

	suite.Equal(http.StatusUnprocessableEntity, rec.Code)
	suite.Contains(suite.errorMessage(rec), "invalid status transition")

	logged := suite.logs.String()
	suite.Contains(logged, "level=ERROR")
	suite.Contains(logged, `msg="Failed to change part status"`)
	suite.Contains(logged, "status=422")
	suite.Contains(logged, `error="invalid status transition"`)
}

func (suite *ServerTestSuite) TestRequestValidator() {
	swagger, err := servers.GetSwagger()
	suite.Require().NoError(err)
	validator, err := httpadapter.NewRequestValidator(swagger)
	suite.Require().NoError(err)
	suite.echo.Use(validator)
	suite.echo.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	suite.Run("rejects status outside the advance enum", func() {
		rec := suite.do(http.MethodPost,
			"/api/v1/orders/"+kernel.NewUUID().String()+"/parts/"+kernel.NewUUID().String()+"/status",
			`{"actor": "admin", "status": "cancelled"}`)

		suite.Equal(http.StatusBadRequest, rec.Code)
	})

	suite.Run("rejects order without parts", func() {
		rec := suite.do(http.MethodPost, "/api/v1/orders", `{"customerId": "`+kernel.NewUUID().String()+`"}`)

		suite.Equal(http.StatusBadRequest, rec.Code)
	})

	suite.Run("passes undocumented routes through", func() {
		rec := suite.do(http.MethodGet, "/health", "")

		suite.Equal(http.StatusOK, rec.Code)
	})

	suite.advancePart.AssertNotCalled(suite.T(), "Handle", mock.Anything, mock.Anything)
	suite.placeOrder.AssertNotCalled(suite.T(), "Handle", mock.Anything, mock.Anything)
}

func (suite *ServerTestSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *ServerTestSuite) errorMessage(rec *httptest.ResponseRecorder) string {
	var body servers.Error
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
