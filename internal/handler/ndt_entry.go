package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ndtverified/hours-service/internal/model"
	"github.com/ndtverified/hours-service/internal/repository"
	"github.com/ndtverified/hours-service/internal/stats"
)

// NDTEntryHandler serves the NDT hours CRUD surface. Create and Update
// lazily extend the method/company vocabularies: a name the lookup
// tables have not seen yet is inserted best-effort after the entry
// write, matching the entry page's behavior.
type NDTEntryHandler struct {
	Entries repository.NDTEntryStore
	Lookups repository.LookupStore
}

func NewNDTEntryHandler(s *repository.Store) *NDTEntryHandler {
	return &NDTEntryHandler{Entries: s.NDTEntries, Lookups: s.Lookups}
}

type ndtEntryReq struct {
	EntryDate  string  `json:"entry_date"`
	Method     string  `json:"method"`
	Location   string  `json:"location"`
	Hours      float64 `json:"hours"`
	Company    string  `json:"company"`
	Supervisor string  `json:"supervisor"`
}

// validate applies the required-field gate. A failed gate means the
// store is never called and the client keeps its draft.
func (r *ndtEntryReq) validate() string {
	r.EntryDate = strings.TrimSpace(r.EntryDate)
	r.Method = strings.TrimSpace(r.Method)
	r.Company = strings.TrimSpace(r.Company)
	if r.EntryDate == "" || r.Method == "" || r.Company == "" {
		return "entry_date, method and company are required"
	}
	if r.Hours < 0 {
		return "hours must not be negative"
	}
	return ""
}

// List handles GET /v1/ndt-entries. The response carries the raw
// entries plus the derived aggregates the hours page displays.
func (h *NDTEntryHandler) List(c echo.Context) error {
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
		"items":         items,
		"total_hours":   stats.TotalHours(items),
		"method_totals": stats.MethodTotals(items),
	})
}

// Create handles POST /v1/ndt-entries.
func (h *NDTEntryHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req ndtEntryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	created, err := h.Entries.Create(ctx, model.NDTEntry{
		UserID:     uid,
		EntryDate:  req.EntryDate,
		Method:     req.Method,
		Location:   strings.TrimSpace(req.Location),
		Hours:      req.Hours,
		Company:    req.Company,
		Supervisor: strings.TrimSpace(req.Supervisor),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create entry"})
	}

	// Grow the open vocabularies; losing a duplicate-name race is fine.
	_ = h.Lookups.EnsureMethod(ctx, req.Method)
	_ = h.Lookups.EnsureCompany(ctx, req.Company)

	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /v1/ndt-entries/:id.
func (h *NDTEntryHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")
	var req ndtEntryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err = h.Entries.Update(ctx, model.NDTEntry{
		ID:         id,
		UserID:     uid,
		EntryDate:  req.EntryDate,
		Method:     req.Method,
		Location:   strings.TrimSpace(req.Location),
		Hours:      req.Hours,
		Company:    req.Company,
		Supervisor: strings.TrimSpace(req.Supervisor),
	})
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	_ = h.Lookups.EnsureMethod(ctx, req.Method)
	_ = h.Lookups.EnsureCompany(ctx, req.Company)

	updated, err := h.Entries.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/ndt-entries/:id.
func (h *NDTEntryHandler) Delete(c echo.Context) error {
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
