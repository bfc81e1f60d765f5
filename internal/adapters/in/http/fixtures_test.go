package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "evashoes/internal/adapters/in/http"
	"evashoes/internal/core/application/usecases/commands"
	"evashoes/internal/core/application/usecases/queries"
	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/pkg/metrics"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type MockCommand[C any] struct{ mock.Mock }

func (m *MockCommand[C]) Handle(ctx context.Context, cmd C) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockQuery[Q any, R any] struct{ mock.Mock }

func (m *MockQuery[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	args := m.Called(ctx, query)
	result, _ := args.Get(0).(R)
	return result, args.Error(1)
}

type MockProductReader struct{ mock.Mock }

func (m *MockProductReader) List(ctx context.Context, query queries.ListProductsQuery) ([]queries.ProductView, error) {
	args := m.Called(ctx, query)
	products, _ := args.Get(0).([]queries.ProductView)
	return products, args.Error(1)
}

func (m *MockProductReader) Get(ctx context.Context, query queries.GetProductQuery) (queries.ProductView, error) {
	args := m.Called(ctx, query)
	product, _ := args.Get(0).(queries.ProductView)
	return product, args.Error(1)
}

type serverFixture struct {
	createOrder   *MockCommand[commands.CreateOrderCommand]
	updateDetails *MockCommand[commands.UpdateOrderDetailsCommand]
	updateStatus  *MockCommand[commands.UpdateOrderStatusCommand]
	deleteOrder   *MockCommand[commands.DeleteOrderCommand]
	addCart       *MockCommand[commands.AddCartItemsCommand]
	removeCart    *MockCommand[commands.RemoveCartItemCommand]
	clearCart     *MockCommand[commands.ClearCartCommand]
	createProduct *MockCommand[commands.CreateProductCommand]

	getOrder     *MockQuery[queries.GetOrderQuery, queries.OrderView]
	listOrders   *MockQuery[queries.ListOrdersQuery, queries.OrderPage]
	userOrders   *MockQuery[queries.GetUserOrdersQuery, []queries.OrderSummary]
	searchOrders *MockQuery[queries.SearchOrdersQuery, []queries.OrderSummary]
	getCart      *MockQuery[queries.GetCartQuery, queries.CartView]
	products     *MockProductReader
	financials   *MockQuery[queries.ListFinancialRecordsQuery, []queries.FinancialRecordView]
	adminStats   *MockQuery[queries.GetAdminStatsQuery, queries.AdminStats]

	metrics *metrics.Metrics
	echo    *echo.Echo
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()
	return newServerFixtureWithStore(t, nil)
}

func newServerFixtureWithStore(t *testing.T, store httpadapter.IdempotencyStore) *serverFixture {
	t.Helper()

	f := &serverFixture{
		createOrder:   new(MockCommand[commands.CreateOrderCommand]),
		updateDetails: new(MockCommand[commands.UpdateOrderDetailsCommand]),
		updateStatus:  new(MockCommand[commands.UpdateOrderStatusCommand]),
		deleteOrder:   new(MockCommand[commands.DeleteOrderCommand]),
		addCart:       new(MockCommand[commands.AddCartItemsCommand]),
		removeCart:    new(MockCommand[commands.RemoveCartItemCommand]),
		clearCart:     new(MockCommand[commands.ClearCartCommand]),
		createProduct: new(MockCommand[commands.CreateProductCommand]),
		getOrder:      new(MockQuery[queries.GetOrderQuery, queries.OrderView]),
		listOrders:    new(MockQuery[queries.ListOrdersQuery, queries.OrderPage]),
		userOrders:    new(MockQuery[queries.GetUserOrdersQuery, []queries.OrderSummary]),
		searchOrders:  new(MockQuery[queries.SearchOrdersQuery, []queries.OrderSummary]),
		getCart:       new(MockQuery[queries.GetCartQuery, queries.CartView]),
		products:      new(MockProductReader),
		financials:    new(MockQuery[queries.ListFinancialRecordsQuery, []queries.FinancialRecordView]),
		adminStats:    new(MockQuery[queries.GetAdminStatsQuery, queries.AdminStats]),
		metrics:       metrics.New(),
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:        f.createOrder,
		UpdateOrderDetails: f.updateDetails,
		UpdateOrderStatus:  f.updateStatus,
		DeleteOrder:        f.deleteOrder,
		AddCartItems:       f.addCart,
		RemoveCartItem:     f.removeCart,
		ClearCart:          f.clearCart,
		CreateProduct:      f.createProduct,
		GetOrder:           f.getOrder,
		ListOrders:         f.listOrders,
		GetUserOrders:      f.userOrders,
		SearchOrders:       f.searchOrders,
		GetCart:            f.getCart,
		Products:           f.products,
		ListFinancials:     f.financials,
		GetAdminStats:      f.adminStats,
	})

	e, err := httpadapter.NewRouter(httpadapter.RouterConfig{
		Server:      server,
		JWTSecret:   []byte(testSecret),
		Metrics:     f.metrics,
		Idempotency: store,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	f.echo = e

	return f
}

func (f *serverFixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.createOrder.AssertExpectations(t)
	f.updateDetails.AssertExpectations(t)
	f.updateStatus.AssertExpectations(t)
	f.deleteOrder.AssertExpectations(t)
	f.addCart.AssertExpectations(t)
	f.removeCart.AssertExpectations(t)
	f.clearCart.AssertExpectations(t)
	f.createProduct.AssertExpectations(t)
	f.getOrder.AssertExpectations(t)
	f.listOrders.AssertExpectations(t)
	f.userOrders.AssertExpectations(t)
	f.searchOrders.AssertExpectations(t)
	f.getCart.AssertExpectations(t)
	f.products.AssertExpectations(t)
	f.financials.AssertExpectations(t)
	f.adminStats.AssertExpectations(t)
}

type request struct {
	method  string
	path    string
	body    any
	token   string
	headers map[string]string
}

func (f *serverFixture) do(t *testing.T, r request) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(r.method, r.path, body)
	if r.body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if r.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+r.token)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func signToken(t *testing.T, secret string, userID kernel.UUID, role string, ttl time.Duration) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, httpadapter.Claims{
		UserID: userID.String(),
		Email:  "buyer@evashoes.test",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func customerToken(t *testing.T, userID kernel.UUID) string {
	t.Helper()
	return signToken(t, testSecret, userID, "user", time.Hour)
}

func adminToken(t *testing.T) string {
	t.Helper()
	return signToken(t, testSecret, kernel.NewUUID(), httpadapter.RoleAdmin, time.Hour)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["message"]
}

func orderView(orderID, userID kernel.UUID) queries.OrderView {
	size := 40
	return queries.OrderView{
		OrderSummary: queries.OrderSummary{
			ID:            orderID,
			UserID:        userID,
			TotalPrice:    kernel.MustMoney(200),
			Status:        "pending",
			PaymentMethod: "COD",
			PaymentStatus: "pending",
			ShippingAddress: queries.ShippingAddressView{
				FullName: "Lan Nguyen",
				Phone:    "0901234567",
				Address:  "12 Le Loi",
				City:     "Hanoi",
			},
			CodeOrder: "ORD1700000000000123",
			CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		},
		Items: []queries.OrderItemView{{
			ProductID:   kernel.NewUUID(),
			ProductName: "Runner",
			ImageURL:    "https://cdn.evashoes.test/runner.jpg",
			Quantity:    2,
			Price:       kernel.MustMoney(100),
			Color:       "red",
			Size:        &size,
		}},
	}
}
