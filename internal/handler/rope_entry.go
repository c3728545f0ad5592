package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ndtverified/hours-service/internal/model"
	"github.com/ndtverified/hours-service/internal/repository"
	"github.com/ndtverified/hours-service/internal/stats"
)

// RopeEntryHandler serves the rope-access hours surface.
type RopeEntryHandler struct {
	Entries repository.RopeEntryStore
}

func NewRopeEntryHandler(s *repository.Store) *RopeEntryHandler {
	return &RopeEntryHandler{Entries: s.RopeEntries}
}

type ropeEntryReq struct {
	DateFrom   string  `json:"date_from"`
	DateTo     string  `json:"date_to"`
	Company    string  `json:"company"`
	Location   string  `json:"location"`
	Tasks      string  `json:"tasks"`
	Industry   string  `json:"industry"`
	Details    string  `json:"details"`
	Supervisor string  `json:"supervisor"`
	RopeHours  float64 `json:"rope_hours"`
	Level      string  `json:"level"`
}

func (r *ropeEntryReq) validate() string {
	r.DateFrom = strings.TrimSpace(r.DateFrom)
	r.DateTo = strings.TrimSpace(r.DateTo)
	if r.DateTo == "" {
		r.DateTo = r.DateFrom // single-day entry
	}
	if r.DateFrom == "" {
		return "date_from is required"
	}
	if r.RopeHours < 0 {
		return "rope_hours must not be negative"
	}
	if !model.ValidRopeLevel(r.Level) {
		return "level must be one of Level 1, Level 2, Level 3"
	}
	return ""
}

// List handles GET /v1/rope-entries.
func (h *RopeEntryHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Entries.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":       items,
		"total_hours": stats.TotalRopeHours(items),
	})
}

// Create handles POST /v1/rope-entries.
func (h *RopeEntryHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req ropeEntryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	created, err := h.Entries.Create(ctx, model.RopeEntry{
		UserID:     uid,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		Company:    strings.TrimSpace(req.Company),
		Location:   strings.TrimSpace(req.Location),
		Tasks:      strings.TrimSpace(req.Tasks),
		Industry:   strings.TrimSpace(req.Industry),
		Details:    strings.TrimSpace(req.Details),
		Supervisor: strings.TrimSpace(req.Supervisor),
		RopeHours:  req.RopeHours,
		Level:      req.Level,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create entry"})
	}
	return c.JSON(http.StatusCreated, created)
}

// Delete handles DELETE /v1/rope-entries/:id.
func (h *RopeEntryHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Entries.Delete(ctx, c.Param("id"), uid); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
