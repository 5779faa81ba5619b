package rest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// SessionHeader carries the anonymous storefront session used for history.
const SessionHeader = "X-Session-ID"

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func sessionID(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get(SessionHeader))
}

func queryInt64(c echo.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &v, nil
}

func queryFloat(c echo.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &v, nil
}

func queryBool(c echo.Context, name string) (bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s", name)
	}
	return v, nil
}
