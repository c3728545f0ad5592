package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ndtverified/hours-service/internal/repository"
)

// ProfileHandler serves the technician's own profile.
type ProfileHandler struct {
	Profiles repository.ProfileStore
}

func NewProfileHandler(s *repository.Store) *ProfileHandler {
	return &ProfileHandler{Profiles: s.Profiles}
}

type profileUpdateReq struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// Get handles GET /v1/profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Profiles.GetByID(ctx, uid)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, p)
}

// Update handles PUT /v1/profile. Changing username keeps the global
// uniqueness rule: a taken name answers 409 and nothing changes.
func (h *ProfileHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req profileUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Profiles.Update(ctx, uid, req.Username, req.FullName); err != nil {
		switch err {
		case repository.ErrUsernameExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already taken"})
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}

	p, err := h.Profiles.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, p)
}
