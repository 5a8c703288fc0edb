package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// setupErrorHandling installs the HTTP error handler. Errors that are not
// *echo.HTTPError are logged with a stack trace and answered with a generic
// 500 so internals never reach the browser.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
			if code >= http.StatusInternalServerError {
				slog.Error("Internal Server Error", "error", err, "path", c.Path())
			}
		} else {
			slog.Error("Internal Server Error (Unhandled)",
				"error", err.Error(),
				"path", c.Path(),
				"stack_trace", string(debug.Stack()),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.String(code, message)
		}
		if writeErr != nil {
			slog.Error("Failed to write error response", "error", writeErr)
		}
	}
}
