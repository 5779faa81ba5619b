package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const AdminKeyHeader = "X-Admin-Key"

type errorBody struct {
	Message string `json:"message"`
}

// AdminOnly guards back-office routes with a shared key. An empty key
// rejects every request.
func AdminOnly(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := strings.TrimSpace(c.Request().Header.Get(AdminKeyHeader))
			if got == "" {
				return c.JSON(http.StatusUnauthorized, errorBody{Message: "missing admin key"})
			}

			if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				return c.JSON(http.StatusForbidden, errorBody{Message: "admin access required"})
			}

			return next(c)
		}
	}
}
