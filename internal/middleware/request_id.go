package middleware

import (
	"bamkzStore/pkg/trace"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const RequestIDHeader = "X-Request-ID"

// RequestID propagates the caller's request id, or mints one, into the
// request context so service logs can carry it as trace_id.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			id := req.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			c.Response().Header().Set(RequestIDHeader, id)
			c.SetRequest(req.WithContext(trace.WithTraceID(req.Context(), id)))

			return next(c)
		}
	}
}
