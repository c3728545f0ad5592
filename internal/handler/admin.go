package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndtverified/hours-service/internal/repository"
)

// AdminHandler serves the admin-only surfaces. Routing guards it with
// the ADMIN role; the handlers assume the check already ran.
type AdminHandler struct {
	Profiles repository.ProfileStore
}

func NewAdminHandler(s *repository.Store) *AdminHandler {
	return &AdminHandler{Profiles: s.Profiles}
}

// ListUsers handles GET /v1/admin/users: every technician profile,
// newest first.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Profiles.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
