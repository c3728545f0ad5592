package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/ndtverified/hours-service/internal/handler"
	"github.com/ndtverified/hours-service/internal/middleware"
)

// Handlers bundles every handler the API mounts so main wires one value
// through registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	NDT       *handler.NDTEntryHandler
	Rope      *handler.RopeEntryHandler
	Lookup    *handler.LookupHandler
	Profile   *handler.ProfileHandler
	Signature *handler.SignatureHandler
	Dashboard *handler.DashboardHandler
	Admin     *handler.AdminHandler
}

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers and
// monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes. Unauthenticated
// operations live under /v1/auth; the session endpoints that need a
// valid access token (me, logout-all) are attached to the protected
// group by RegisterAPI instead.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout takes the refresh token in the body, so no JWT is required.
	g.POST("/logout", a.Logout)
	g.POST("/forgot-password", a.ForgotPassword)
	g.POST("/reset-password", a.ResetPassword)
}

// RegisterVerification registers the public supervisor verification
// endpoints. The token in the URL is the only credential: supervisors
// are not users of the system and never authenticate.
func RegisterVerification(e *echo.Echo, s *handler.SignatureHandler) {
	e.GET("/v1/signatures/verify/:token", s.Verify)
	e.POST("/v1/signatures/verify/:token", s.Confirm)
}

// RegisterAPI registers every route behind authentication. The group
// applies JWTAuth and accepts both roles; the admin subgroup narrows to
// ADMIN only. cache is applied exclusively to the lookup-list routes,
// whose responses are global and safe to share across users; nothing
// user-scoped may go through it.
func RegisterAPI(e *echo.Echo, h Handlers, jwtSecret string, cache echo.MiddlewareFunc) {
	api := e.Group("/v1")
	api.Use(middleware.JWTAuth(jwtSecret))
	api.Use(middleware.RequireRole(middleware.RoleAdmin, middleware.RoleTech))

	// Session.
	api.GET("/me", h.Auth.Me)
	api.POST("/logout-all", h.Auth.LogoutAll)

	// NDT hours.
	api.GET("/ndt-entries", h.NDT.List)
	api.POST("/ndt-entries", h.NDT.Create)
	api.PUT("/ndt-entries/:id", h.NDT.Update)
	api.DELETE("/ndt-entries/:id", h.NDT.Delete)
	api.POST("/ndt-entries/:id/signatures", h.Signature.CreateNDT)

	// Rope access hours.
	api.GET("/rope-entries", h.Rope.List)
	api.POST("/rope-entries", h.Rope.Create)
	api.DELETE("/rope-entries/:id", h.Rope.Delete)
	api.POST("/rope-entries/:id/signatures", h.Signature.CreateRope)

	// Signature requests (technician's own view).
	api.GET("/signatures", h.Signature.List)

	// Shared lookup vocabularies, cached.
	api.GET("/methods", h.Lookup.GetMethods, cache)
	api.GET("/companies", h.Lookup.GetCompanies, cache)

	// Profile.
	api.GET("/profile", h.Profile.Get)
	api.PUT("/profile", h.Profile.Update)

	// Aggregates.
	api.GET("/dashboard", h.Dashboard.Summary)
	api.GET("/reports/methods", h.Dashboard.MethodReport)

	// Admin-only surface.
	admin := api.Group("/admin")
	admin.Use(middleware.RequireRole(middleware.RoleAdmin))
	admin.GET("/users", h.Admin.ListUsers)
}
