package http

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"evashoes/internal/adapters/out/redis"
	"evashoes/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// HeaderIdempotencyKey is the request header carrying the client's retry key.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotentReplay marks a response that was replayed from the store.
const HeaderIdempotentReplay = "Idempotent-Replayed"

// IdempotencyStore remembers responses of idempotent requests.
type IdempotencyStore interface {
	Begin(ctx context.Context, key string) (redis.State, *redis.Response, error)
	Complete(ctx context.Context, key string, resp redis.Response) error
	Release(ctx context.Context, key string) error
}

// Idempotency replays the stored response of a request whose Idempotency-Key was seen
// before and rejects a duplicate that arrives while the first one is still running.
// Only routes marked idempotent are affected, and only when the header is present.
// Keys are scoped to the caller and the request path. A nil store disables it.
func Idempotency(store IdempotencyStore, logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "idempotency")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if store == nil {
			return next
		}

		return func(c echo.Context) error {
			header := c.Request().Header.Get(HeaderIdempotencyKey)
			if header == "" || !policyFor(c).idempotent {
				return next(c)
			}
			claims, err := claimsFrom(c)
			if err != nil {
				return err
			}

			ctx := c.Request().Context()
			key := claims.UserID + ":" + c.Request().Method + ":" + c.Request().URL.Path + ":" + header
			// the outcome is recorded even when the client has gone away
			storeCtx := context.WithoutCancel(ctx)

			state, stored, err := store.Begin(ctx, key)
			if err != nil {
				logger.WarnContext(ctx, "idempotency store unavailable, serving without it", "error", err)
				return next(c)
			}

			switch state {
			case redis.InProgress:
				return echo.NewHTTPError(http.StatusConflict, "a request with this Idempotency-Key is in progress")
			case redis.Completed:
				c.Response().Header().Set(HeaderIdempotentReplay, "true")
				return c.Blob(stored.Status, stored.ContentType, stored.Body)
			case redis.Started:
			}

			release := func() {
				if relErr := store.Release(storeCtx, key); relErr != nil {
					logger.WarnContext(ctx, "failed to release idempotency key", "error", relErr)
				}
			}

			body := new(bytes.Buffer)
			original := c.Response().Writer
			c.Response().Writer = &capturingWriter{Writer: io.MultiWriter(original, body), ResponseWriter: original}
			defer func() { c.Response().Writer = original }()
			defer func() {
				if r := recover(); r != nil {
					release()
					panic(r)
				}
			}()

			if err := next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			if status >= http.StatusInternalServerError {
				release()
				return nil
			}

			resp := redis.Response{
				Status:      status,
				ContentType: c.Response().Header().Get(echo.HeaderContentType),
				Body:        body.Bytes(),
			}
			if err := store.Complete(storeCtx, key, resp); err != nil {
				logger.WarnContext(ctx, "failed to store idempotent response", "error", err)
			}
			return nil
		}
	}
}

type capturingWriter struct {
	io.Writer
	http.ResponseWriter
}

func (w *capturingWriter) WriteHeader(code int) {
	w.ResponseWriter.WriteHeader(code)
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func (w *capturingWriter) Flush() {
	if err := http.NewResponseController(w.ResponseWriter).Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		panic(err)
	}
}

func (w *capturingWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return http.NewResponseController(w.ResponseWriter).Hijack()
}

func (w *capturingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Metrics counts requests and observes their latency by route template. Errors are
// rendered here so the recorded status is the one the client receives.
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			m.Requests.WithLabelValues(route, method, strconv.Itoa(c.Response().Status)).Inc()
			m.LatencyMS.WithLabelValues(route, method).Observe(float64(time.Since(start).Milliseconds()))
			return nil
		}
	}
}
