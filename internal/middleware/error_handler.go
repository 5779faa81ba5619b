package middleware

import (
	"errors"
	"net/http"

	"bamkzStore/pkg/logger"
	"bamkzStore/pkg/trace"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders errors that escape handlers, mostly echo's own
// routing and binding errors, in the same shape handlers use.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := http.StatusText(status)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(status)
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("unhandled request error",
			"trace_id", trace.TraceIDFromContext(c.Request().Context()),
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, errorBody{Message: msg})
	}
	if err != nil {
		logger.Error("failed to write error response", "error", err)
	}
}
