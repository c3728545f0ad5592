package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Role names carried in the JWT "role" claim. RoleAdmin is derived from
// profiles.is_admin at token issuance.
const (
	RoleAdmin = "ADMIN"
	RoleTech  = "TECH"
)

// RequireRole returns a middleware that enforces that the authenticated
// user has one of the specified roles. This is the "admin only" gate:
// an authenticated user without an allowed role gets 403, even though
// a user is present. It assumes JWTAuth already stored the role in the
// context under "role"; a missing or mistyped value is treated as no
// role at all.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := c.Get("role")
			role, ok := v.(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
