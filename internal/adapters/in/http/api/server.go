package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /api/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (GET /api/orders/{id})
	GetOrder(ctx echo.Context, id openapi_types.UUID) error
	// (PUT /api/orders/{id})
	UpdateOrder(ctx echo.Context, id openapi_types.UUID) error
	// (DELETE /api/orders/{id})
	DeleteOrder(ctx echo.Context, id openapi_types.UUID) error
	// (GET /api/orders/user/{userId})
	GetUserOrders(ctx echo.Context, userID openapi_types.UUID) error
	// (GET /api/orders/search/)
	SearchAllOrders(ctx echo.Context) error
	// (GET /api/orders/search/{query})
	SearchOrders(ctx echo.Context, query string) error
	// (PUT /api/orders/updateStatus/{id})
	UpdateOrderStatus(ctx echo.Context, id openapi_types.UUID) error
	// (GET /api/cart)
	GetCart(ctx echo.Context) error
	// (POST /api/cart/add)
	AddToCart(ctx echo.Context) error
	// (POST /api/cart/remove)
	RemoveFromCart(ctx echo.Context) error
	// (POST /api/cart/clear)
	ClearCart(ctx echo.Context) error
	// (GET /api/products)
	ListProducts(ctx echo.Context, params ListProductsParams) error
	// (POST /api/products)
	CreateProduct(ctx echo.Context) error
	// (GET /api/products/{id})
	GetProduct(ctx echo.Context, id openapi_types.UUID) error
	// (GET /api/products/search/)
	SearchAllProducts(ctx echo.Context) error
	// (GET /api/products/search/{name})
	SearchProducts(ctx echo.Context, name string) error
	// (GET /api/financials)
	ListFinancials(ctx echo.Context) error
	// (GET /api/admin/stats)
	GetAdminStats(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	if err := runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &params.Page); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter page: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdateOrder(ctx echo.Context) error {
	id, err := bindUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	id, err := bindUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.DeleteOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) GetUserOrders(ctx echo.Context) error {
	userID, err := bindUUID(ctx, "userId")
	if err != nil {
		return err
	}
	return w.Handler.GetUserOrders(ctx, userID)
}

func (w *ServerInterfaceWrapper) SearchAllOrders(ctx echo.Context) error {
	return w.Handler.SearchAllOrders(ctx)
}

func (w *ServerInterfaceWrapper) SearchOrders(ctx echo.Context) error {
	query, err := bindString(ctx, "query")
	if err != nil {
		return err
	}
	return w.Handler.SearchOrders(ctx, query)
}

func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	id, err := bindUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, id)
}

func (w *ServerInterfaceWrapper) GetCart(ctx echo.Context) error {
	return w.Handler.GetCart(ctx)
}

func (w *ServerInterfaceWrapper) AddToCart(ctx echo.Context) error {
	return w.Handler.AddToCart(ctx)
}

func (w *ServerInterfaceWrapper) RemoveFromCart(ctx echo.Context) error {
	return w.Handler.RemoveFromCart(ctx)
}

func (w *ServerInterfaceWrapper) ClearCart(ctx echo.Context) error {
	return w.Handler.ClearCart(ctx)
}

func (w *ServerInterfaceWrapper) ListProducts(ctx echo.Context) error {
	var params ListProductsParams

	if err := runtime.BindQueryParameter("form", true, false, "name", ctx.QueryParams(), &params.Name); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter name: %s", err))
	}

	return w.Handler.ListProducts(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateProduct(ctx echo.Context) error {
	return w.Handler.CreateProduct(ctx)
}

func (w *ServerInterfaceWrapper) GetProduct(ctx echo.Context) error {
	id, err := bindUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetProduct(ctx, id)
}

func (w *ServerInterfaceWrapper) SearchAllProducts(ctx echo.Context) error {
	return w.Handler.SearchAllProducts(ctx)
}

func (w *ServerInterfaceWrapper) SearchProducts(ctx echo.Context) error {
	name, err := bindString(ctx, "name")
	if err != nil {
		return err
	}
	return w.Handler.SearchProducts(ctx, name)
}

func (w *ServerInterfaceWrapper) ListFinancials(ctx echo.Context) error {
	return w.Handler.ListFinancials(ctx)
}

func (w *ServerInterfaceWrapper) GetAdminStats(ctx echo.Context) error {
	return w.Handler.GetAdminStats(ctx)
}

func bindUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindString(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
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

// RegisterHandlersWithBaseURL registers the routes under baseURL, e.g. "/v2".
// Path templates use echo's :param syntax.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/orders", wrapper.ListOrders)
	router.GET(baseURL+"/api/orders/:id", wrapper.GetOrder)
	router.PUT(baseURL+"/api/orders/:id", wrapper.UpdateOrder)
	router.DELETE(baseURL+"/api/orders/:id", wrapper.DeleteOrder)
	router.GET(baseURL+"/api/orders/user/:userId", wrapper.GetUserOrders)
	router.GET(baseURL+"/api/orders/search/", wrapper.SearchAllOrders)
	router.GET(baseURL+"/api/orders/search/:query", wrapper.SearchOrders)
	router.PUT(baseURL+"/api/orders/updateStatus/:id", wrapper.UpdateOrderStatus)
	router.GET(baseURL+"/api/cart", wrapper.GetCart)
	router.POST(baseURL+"/api/cart/add", wrapper.AddToCart)
	router.POST(baseURL+"/api/cart/remove", wrapper.RemoveFromCart)
	router.POST(baseURL+"/api/cart/clear", wrapper.ClearCart)
	router.GET(baseURL+"/api/products", wrapper.ListProducts)
	router.POST(baseURL+"/api/products", wrapper.CreateProduct)
	router.GET(baseURL+"/api/products/:id", wrapper.GetProduct)
	router.GET(baseURL+"/api/products/search/", wrapper.SearchAllProducts)
	router.GET(baseURL+"/api/products/search/:name", wrapper.SearchProducts)
	router.GET(baseURL+"/api/financials", wrapper.ListFinancials)
	router.GET(baseURL+"/api/admin/stats", wrapper.GetAdminStats)
}
