package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndtverified/hours-service/internal/repository"
)

// LookupHandler serves the shared method and company name lists that
// feed entry-form autocomplete. Both lists are global, which is why
// these two routes are the only ones behind the response cache.
type LookupHandler struct {
	Lookups repository.LookupStore
}

func NewLookupHandler(s *repository.Store) *LookupHandler {
	return &LookupHandler{Lookups: s.Lookups}
}

// GetMethods handles GET /v1/methods.
func (h *LookupHandler) GetMethods(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Lookups.ListMethods(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetCompanies handles GET /v1/companies.
func (h *LookupHandler) GetCompanies(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Lookups.ListCompanies(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
