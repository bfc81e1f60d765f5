package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"evashoes/internal/adapters/in/http/api"
	"evashoes/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// RouterConfig collects what NewRouter wires into echo.
type RouterConfig struct {
	Server    *Server
	JWTSecret []byte
	Metrics   *metrics.Metrics
	// Idempotency is optional; nil serves every request without replay protection.
	Idempotency IdempotencyStore
	Logger      *slog.Logger
}

// NewRouter builds the echo instance: request logging, panic recovery, metrics, bearer
// auth, OpenAPI validation and idempotency in that order, then the api routes plus
// /health, /metrics and /swagger/*.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	doc, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}
	if err := registerSwaggerDoc(); err != nil {
		return nil, err
	}
	validateRequests, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(cfg.Logger)
	e.Validator = NewRequestValidator()

	e.Use(requestLogger(cfg.Logger))
	e.Use(middleware.Recover())
	e.Use(Metrics(cfg.Metrics))
	e.Use(JWTAuth(cfg.JWTSecret))
	e.Use(validateRequests)
	e.Use(Idempotency(cfg.Idempotency, cfg.Logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api.RegisterHandlers(e, cfg.Server)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.WarnContext(c.Request().Context(), "request", append(attrs, "error", v.Error.Error())...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	})
}

// swaggerDoc serves the OpenAPI document to echo-swagger through the swag registry.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var (
	swaggerOnce sync.Once
	swaggerErr  error
)

// registerSwaggerDoc registers the document once per process; swag panics on a
// second registration under the same name.
func registerSwaggerDoc() error {
	swaggerOnce.Do(func() {
		doc, err := api.GetSwagger()
		if err != nil {
			swaggerErr = err
			return
		}
		raw, err := doc.MarshalJSON()
		if err != nil {
			swaggerErr = fmt.Errorf("encode OpenAPI document: %w", err)
			return
		}
		swag.Register(swag.Name, swaggerDoc{json: string(raw)})
	})
	return swaggerErr
}
