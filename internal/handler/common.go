package handler // handler defines http handlers

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds every storage round trip issued from a handler.
const dbTimeout = 5 * time.Second

// getUserID extracts the authenticated user's UUID from echo.Context.
// JWTAuth stores the raw "sub" claim, which this service always issues
// as a string.
func getUserID(c echo.Context) (string, error) {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("invalid user_id in context")
}

// reqCtx derives a timeout-bounded context from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}
