// Package http is the inbound REST adapter of the storefront. It binds the api
// contract to the command and query handlers, authenticates callers and turns
// domain errors into status codes.
package http

import (
	"context"
	"net/http"
	"strings"

	"evashoes/internal/adapters/in/http/api"
	"evashoes/internal/core/application/usecases/commands"
	"evashoes/internal/core/application/usecases/queries"
	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// CommandHandler is the write-side use case contract.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler is the read-side use case contract.
type QueryHandler[Q any, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// ProductReader serves the catalog reads.
type ProductReader interface {
	List(ctx context.Context, query queries.ListProductsQuery) ([]queries.ProductView, error)
	Get(ctx context.Context, query queries.GetProductQuery) (queries.ProductView, error)
}

// Handlers are the use cases the server dispatches to.
type Handlers struct {
	CreateOrder        CommandHandler[commands.CreateOrderCommand]
	UpdateOrderDetails CommandHandler[commands.UpdateOrderDetailsCommand]
	UpdateOrderStatus  CommandHandler[commands.UpdateOrderStatusCommand]
	DeleteOrder        CommandHandler[commands.DeleteOrderCommand]
	AddCartItems       CommandHandler[commands.AddCartItemsCommand]
	RemoveCartItem     CommandHandler[commands.RemoveCartItemCommand]
	ClearCart          CommandHandler[commands.ClearCartCommand]
	CreateProduct      CommandHandler[commands.CreateProductCommand]

	GetOrder       QueryHandler[queries.GetOrderQuery, queries.OrderView]
	ListOrders     QueryHandler[queries.ListOrdersQuery, queries.OrderPage]
	GetUserOrders  QueryHandler[queries.GetUserOrdersQuery, []queries.OrderSummary]
	SearchOrders   QueryHandler[queries.SearchOrdersQuery, []queries.OrderSummary]
	GetCart        QueryHandler[queries.GetCartQuery, queries.CartView]
	Products       ProductReader
	ListFinancials QueryHandler[queries.ListFinancialRecordsQuery, []queries.FinancialRecordView]
	GetAdminStats  QueryHandler[queries.GetAdminStatsQuery, queries.AdminStats]
}

// Server implements api.ServerInterface.
type Server struct {
	h Handlers
}

var _ api.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// CreateOrder handles POST /api/orders. The customer is the token's user.
func (s *Server) CreateOrder(ctx echo.Context) error {
	claims, err := claimsFrom(ctx)
	if err != nil {
		return err
	}
	actor, err := claims.Actor()
	if err != nil {
		return err
	}

	var body api.NewOrder
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	items, err := toLineItems(body.Items)
	if err != nil {
		return err
	}
	totalPrice, err := toMoney(body.TotalPrice, "totalPrice")
	if err != nil {
		return err
	}
	paymentMethod := order.CashOnDelivery
	if body.PaymentMethod != nil {
		if paymentMethod, err = order.ParsePaymentMethod(*body.PaymentMethod); err != nil {
			return err
		}
	}
	address, err := toShippingAddress(body.ShippingAddress)
	if err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, actor.UserID, items, totalPrice, paymentMethod, address, body.Notes, body.CodeOrder,
	)
	if err != nil {
		return err
	}
	if err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(ctx, http.StatusCreated, orderID)
}

// ListOrders handles GET /api/orders.
func (s *Server) ListOrders(ctx echo.Context, params api.ListOrdersParams) error {
	var page, limit int
	if params.Page != nil {
		page = *params.Page
	}
	if params.Limit != nil {
		limit = *params.Limit
	}

	var status *order.Status
	if params.Status != nil && *params.Status != "" {
		parsed, err := order.ParseStatus(*params.Status)
		if err != nil {
			return err
		}
		status = &parsed
	}

	query, err := queries.NewListOrdersQuery(page, limit, status)
	if err != nil {
		return err
	}
	result, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, fromOrderPage(result))
}

// GetOrder handles GET /api/orders/:id for the owner or an admin.
func (s *Server) GetOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := toKernelUUID(id, "id")
	if err != nil {
		return err
	}
	view, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(ctx, view.UserID); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, fromOrderView(view))
}

// UpdateOrder handles PUT /api/orders/:id. Status is not updatable here.
func (s *Server) UpdateOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := toKernelUUID(id, "id")
	if err != nil {
		return err
	}

	var body api.UpdateOrder
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	details := order.Details{
		Notes:     body.Notes,
		CodeOrder: body.CodeOrder,
	}
	if body.ShippingAddress != nil {
		address, err := toShippingAddress(*body.ShippingAddress)
		if err != nil {
			return err
		}
		details.ShippingAddress = &address
	}
	if body.PaymentMethod != nil {
		method, err := order.ParsePaymentMethod(*body.PaymentMethod)
		if err != nil {
			return err
		}
		details.PaymentMethod = &method
	}

	cmd, err := commands.NewUpdateOrderDetailsCommand(orderID, details)
	if err != nil {
		return err
	}
	if err := s.h.UpdateOrderDetails.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// DeleteOrder handles DELETE /api/orders/:id.
func (s *Server) DeleteOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := toKernelUUID(id, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return err
	}
	if err := s.h.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetUserOrders handles GET /api/orders/user/:userId for that user or an admin.
func (s *Server) GetUserOrders(ctx echo.Context, userID openapi_types.UUID) error {
	id, err := toKernelUUID(userID, "userId")
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(ctx, id); err != nil {
		return err
	}

	query, err := queries.NewGetUserOrdersQuery(id)
	if err != nil {
		return err
	}
	orders, err := s.h.GetUserOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, fromOrderSummaries(orders))
}

// SearchAllOrders handles GET /api/orders/search/ with nothing after the slash.
func (s *Server) SearchAllOrders(ctx echo.Context) error {
	return s.SearchOrders(ctx, "")
}

// SearchOrders handles GET /api/orders/search/:query.
func (s *Server) SearchOrders(ctx echo.Context, text string) error {
	orders, err := s.h.SearchOrders.Handle(ctx.Request().Context(), queries.NewSearchOrdersQuery(text))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, fromOrderSummaries(orders))
}

// UpdateOrderStatus handles PUT /api/orders/updateStatus/:id. Admins may apply any
// allowed transition; customers may only cancel their own orders.
func (s *Server) UpdateOrderStatus(ctx echo.Context, id openapi_types.UUID) error {
	claims, err := claimsFrom(ctx)
	if err != nil {
		return err
	}
	actor, err := claims.Actor()
	if err != nil {
		return err
	}
	orderID, err := toKernelUUID(id, "id")
	if err != nil {
		return err
	}

	var body api.UpdateOrderStatus
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status, body.CancelReason, actor)
	if err != nil {
		return err
	}
	if err := s.h.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

func (s *Server) loadOrder(ctx echo.Context, orderID kernel.UUID) (queries.OrderView, error) {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return queries.OrderView{}, err
	}
	return s.h.GetOrder.Handle(ctx.Request().Context(), query)
}

func (s *Server) respondWithOrder(ctx echo.Context, status int, orderID kernel.UUID) error {
	view, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return ctx.JSON(status, fromOrderView(view))
}

// GetCart handles GET /api/cart. A customer without a cart gets an empty one.
func (s *Server) GetCart(ctx echo.Context) error {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	return s.respondWithCart(ctx, userID)
}

// AddToCart handles POST /api/cart/add. Lines with the same product, color and size
// are merged and their quantities summed.
func (s *Server) AddToCart(ctx echo.Context) error {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}

	var body api.AddToCart
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	lines, err := toCartLines(body.Items)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAddCartItemsCommand(userID, lines)
	if err != nil {
		return err
	}
	if err := s.h.AddCartItems.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithCart(ctx, userID)
}

// RemoveFromCart handles POST /api/cart/remove. Every line of the product goes.
func (s *Server) RemoveFromCart(ctx echo.Context) error {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}

	var body api.RemoveFromCart
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	productID, err := toKernelUUID(body.ProductID, "productId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveCartItemCommand(userID, productID)
	if err != nil {
		return err
	}
	if err := s.h.RemoveCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithCart(ctx, userID)
}

// ClearCart handles POST /api/cart/clear.
func (s *Server) ClearCart(ctx echo.Context) error {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewClearCartCommand(userID)
	if err != nil {
		return err
	}
	if err := s.h.ClearCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithCart(ctx, userID)
}

func (s *Server) currentUser(ctx echo.Context) (kernel.UUID, error) {
	claims, err := claimsFrom(ctx)
	if err != nil {
		return kernel.UUID{}, err
	}
	actor, err := claims.Actor()
	if err != nil {
		return kernel.UUID{}, err
	}
	return actor.UserID, nil
}

func (s *Server) respondWithCart(ctx echo.Context, userID kernel.UUID) error {
	query, err := queries.NewGetCartQuery(userID)
	if err != nil {
		return err
	}
	view, err := s.h.GetCart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, fromCartView(view))
}

// ListProducts handles GET /api/products. An optional name narrows the list.
func (s *Server) ListProducts(ctx echo.Context, params api.ListProductsParams) error {
	var name string
	if params.Name != nil {
		name = *params.Name
	}
	return s.respondWithProducts(ctx, name)
}

// SearchAllProducts handles GET /api/products/search/ and lists every active product.
func (s *Server) SearchAllProducts(ctx echo.Context) error {
	return s.respondWithProducts(ctx, "")
}

// SearchProducts handles GET /api/products/search/:name.
func (s *Server) SearchProducts(ctx echo.Context, name string) error {
	return s.respondWithProducts(ctx, name)
}

func (s *Server) respondWithProducts(ctx echo.Context, name string) error {
	products, err := s.h.Products.List(ctx.Request().Context(), queries.NewListProductsQuery(strings.TrimSpace(name)))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, fromProductViews(products))
}

// GetProduct handles GET /api/products/:id.
func (s *Server) GetProduct(ctx echo.Context, id openapi_types.UUID) error {
	productID, err := toKernelUUID(id, "id")
	if err != nil {
		return err
	}
	return s.respondWithProduct(ctx, http.StatusOK, productID)
}

// CreateProduct handles POST /api/products.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var body api.NewProduct
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	price, err := toMoney(body.Price, "price")
	if err != nil {
		return err
	}
	var sellPrice *kernel.Money
	if body.SellPrice != nil {
		m, err := toMoney(*body.SellPrice, "sellPrice")
		if err != nil {
			return err
		}
		sellPrice = &m
	}

	productID := kernel.NewUUID()
	cmd, err := commands.NewCreateProductCommand(
		productID,
		body.Name,
		price,
		sellPrice,
		body.Description,
		body.Details,
		body.ImageURLs,
		toSizeStocks(body.Sizes),
		body.IsSale,
	)
	if err != nil {
		return err
	}
	if err := s.h.CreateProduct.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithProduct(ctx, http.StatusCreated, productID)
}

func (s *Server) respondWithProduct(ctx echo.Context, status int, productID kernel.UUID) error {
	query, err := queries.NewGetProductQuery(productID)
	if err != nil {
		return err
	}
	view, err := s.h.Products.Get(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(status, fromProductView(view))
}

// ListFinancials handles GET /api/financials.
func (s *Server) ListFinancials(ctx echo.Context) error {
	records, err := s.h.ListFinancials.Handle(ctx.Request().Context(), queries.NewListFinancialRecordsQuery())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, fromFinancialRecords(records))
}

// GetAdminStats handles GET /api/admin/stats.
func (s *Server) GetAdminStats(ctx echo.Context) error {
	stats, err := s.h.GetAdminStats.Handle(ctx.Request().Context(), queries.NewGetAdminStatsQuery())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, fromAdminStats(stats))
}
