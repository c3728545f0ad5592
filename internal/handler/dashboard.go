package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndtverified/hours-service/internal/repository"
	"github.com/ndtverified/hours-service/internal/stats"
)

// DashboardHandler reduces a technician's entries and signature
// requests into the headline numbers. All aggregation happens in the
// stats package over lists fetched here; the store never computes.
type DashboardHandler struct {
	NDTEntries  repository.NDTEntryStore
	RopeEntries repository.RopeEntryStore
	Signatures  repository.SignatureStore
}

func NewDashboardHandler(s *repository.Store) *DashboardHandler {
	return &DashboardHandler{
		NDTEntries:  s.NDTEntries,
		RopeEntries: s.RopeEntries,
		Signatures:  s.Signatures,
	}
}

// Summary handles GET /v1/dashboard.
func (h *DashboardHandler) Summary(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	ndt, err := h.NDTEntries.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	rope, err := h.RopeEntries.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	sigs, err := h.Signatures.StatusesByTechnician(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	return c.JSON(http.StatusOK, stats.Summarize(ndt, rope, sigs))
}

// MethodReport handles GET /v1/reports/methods: the per-method hours
// breakdown on its own, for the reports page.
func (h *DashboardHandler) MethodReport(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	ndt, err := h.NDTEntries.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"method_totals": stats.MethodTotals(ndt),
		"total_hours":   stats.TotalHours(ndt),
	})
}
