package middleware

// identity.go holds helpers shared across middleware files, currently
// the user-id extraction used by the rate limiter's key builder.

import "github.com/labstack/echo/v4"

// currentUserID returns the authenticated user's UUID from context, or
// "anon" for unauthenticated requests. JWTAuth stores the value as the
// raw "sub" claim, which for this service is always a string.
func currentUserID(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "anon"
}
