package http

import (
	"errors"
	"log/slog"
	"net/http"

	"evashoes/internal/adapters/in/http/api"
	"evashoes/internal/core/application/usecases/commands"
	"evashoes/internal/core/domain/model/order"
	"evashoes/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "Internal server error"

var (
	// ErrUnauthorized is returned for a missing, malformed or expired bearer token.
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden is returned when the caller is authenticated but lacks the role or
	// does not own the resource.
	ErrForbidden = errors.New("access denied")
)

// statusFor classifies err into an HTTP status. The boolean is false for errors whose
// text must not reach the client.
func statusFor(err error) (int, bool) {
	var (
		httpErr       *echo.HTTPError
		transitionErr *order.TransitionNotAllowedError
	)

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, httpErr.Code < http.StatusInternalServerError
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, true
	case errors.Is(err, ErrForbidden), errors.Is(err, commands.ErrStatusChangeIsForbidden):
		return http.StatusForbidden, true
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, true
	case errors.As(err, &transitionErr),
		errors.Is(err, errs.ErrConflict),
		errors.Is(err, order.ErrPaymentMethodIsLocked):
		return http.StatusConflict, true
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, true
	default:
		return http.StatusInternalServerError, false
	}
}

// NewErrorHandler renders every error as {"message": ...}. Server-side failures are
// logged with their detail and answered with a generic message.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, public := statusFor(err)
		message := internalErrorMessage
		if public {
			message = publicMessage(err)
		} else {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, api.Error{Message: message})
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}

func publicMessage(err error) string {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return msg
		}
		return http.StatusText(httpErr.Code)
	}
	return err.Error()
}
