package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ndtverified/hours-service/internal/config"
	"github.com/ndtverified/hours-service/internal/model"
	"github.com/ndtverified/hours-service/internal/queue"
	"github.com/ndtverified/hours-service/internal/repository"
	queue_publisher "github.com/ndtverified/hours-service/internal/service"
	"github.com/ndtverified/hours-service/internal/stats"
	"github.com/ndtverified/hours-service/internal/utils"
)

// SignatureHandler owns the supervisor sign-off workflow: a technician
// requests attestation of an entry, the supervisor follows an emailed
// tokenized link, and confirming through it moves the request from
// Pending to Confirmed. The verify endpoints are public; the token in
// the URL is the only credential.
type SignatureHandler struct {
	Cfg         config.Config
	Signatures  repository.SignatureStore
	NDTEntries  repository.NDTEntryStore
	RopeEntries repository.RopeEntryStore
	Profiles    repository.ProfileStore
	Notify      func(ctx context.Context, ev queue.EmailNotificationEvent) error
}

func NewSignatureHandler(cfg config.Config, s *repository.Store) *SignatureHandler {
	return &SignatureHandler{
		Cfg:         cfg,
		Signatures:  s.Signatures,
		NDTEntries:  s.NDTEntries,
		RopeEntries: s.RopeEntries,
		Profiles:    s.Profiles,
		Notify:      queue_publisher.PublishEmailNotification,
	}
}

type signatureReq struct {
	SupervisorName  string `json:"supervisor_name"`
	SupervisorEmail string `json:"supervisor_email"`
}

func (r *signatureReq) validate() string {
	r.SupervisorName = strings.TrimSpace(r.SupervisorName)
	r.SupervisorEmail = strings.ToLower(strings.TrimSpace(r.SupervisorEmail))
	if r.SupervisorName == "" || r.SupervisorEmail == "" {
		return "supervisor_name and supervisor_email are required"
	}
	if !strings.Contains(r.SupervisorEmail, "@") {
		return "supervisor_email is not a valid address"
	}
	return ""
}

func (h *SignatureHandler) verifyLink(token string) string {
	return h.Cfg.BaseURL + "/verify-signature/" + token
}

// technicianName resolves the display name put on the request row and
// in the email. Full name when the profile has one, username otherwise.
func (h *SignatureHandler) technicianName(ctx context.Context, uid string) string {
	p, err := h.Profiles.GetByID(ctx, uid)
	if err != nil {
		return ""
	}
	if p.FullName != "" {
		return p.FullName
	}
	return p.Username
}

func (h *SignatureHandler) sendRequestEmail(ctx context.Context, to, supervisor, technician, what, token string) {
	_ = h.Notify(ctx, queue.EmailNotificationEvent{
		Kind:        queue.KindSignatureRequest,
		To:          to,
		Subject:     "Signature request from " + technician,
		Body:        supervisor + ", " + technician + " asks you to confirm " + what + ". Open the link to review and sign.",
		Link:        h.verifyLink(token),
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// CreateNDT handles POST /v1/ndt-entries/:id/signatures. The entry
// details are denormalized onto the signature row at request time, so
// the supervisor confirms what the technician claimed then, not what
// the entry says later.
func (h *SignatureHandler) CreateNDT(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req signatureReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	entry, err := h.NDTEntries.GetByIDAndOwner(ctx, c.Param("id"), uid)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	token, err := utils.NewSignatureToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
	}
	techName := h.technicianName(ctx, uid)

	created, err := h.Signatures.CreateNDT(ctx, model.NDTSignature{
		EntryID:         entry.ID,
		TechnicianID:    uid,
		TechnicianName:  techName,
		Hours:           entry.Hours,
		Method:          entry.Method,
		SupervisorName:  req.SupervisorName,
		SupervisorEmail: req.SupervisorEmail,
		Company:         entry.Company,
		Token:           token,
		Status:          model.SignatureStatusPending,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create signature request"})
	}

	h.sendRequestEmail(ctx, req.SupervisorEmail, req.SupervisorName, techName,
		"NDT hours ("+entry.Method+", "+entry.EntryDate+")", token)

	return c.JSON(http.StatusCreated, created)
}

// CreateRope handles POST /v1/rope-entries/:id/signatures.
func (h *SignatureHandler) CreateRope(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req signatureReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	entry, err := h.RopeEntries.GetByIDAndOwner(ctx, c.Param("id"), uid)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	token, err := utils.NewSignatureToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
	}
	techName := h.technicianName(ctx, uid)

	created, err := h.Signatures.CreateRope(ctx, model.RopeSignature{
		EntryID:         entry.ID,
		TechnicianID:    uid,
		TechnicianName:  techName,
		SupervisorName:  req.SupervisorName,
		SupervisorEmail: req.SupervisorEmail,
		Token:           token,
		Status:          model.SignatureStatusPending,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create signature request"})
	}

	h.sendRequestEmail(ctx, req.SupervisorEmail, req.SupervisorName, techName,
		"rope access hours ("+entry.DateFrom+" to "+entry.DateTo+")", token)

	return c.JSON(http.StatusCreated, created)
}

// List handles GET /v1/signatures: both request lists plus the
// pending/verified tallies for the signatures page header.
func (h *SignatureHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	ndt, err := h.Signatures.ListNDTByTechnician(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	rope, err := h.Signatures.ListRopeByTechnician(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	refs := make([]model.SignatureStatusRef, 0, len(ndt)+len(rope))
	for _, s := range ndt {
		refs = append(refs, model.SignatureStatusRef{Status: s.Status})
	}
	for _, s := range rope {
		refs = append(refs, model.SignatureStatusRef{Status: s.Status})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"ndt":    ndt,
		"rope":   rope,
		"counts": stats.CountSignatures(refs),
	})
}

// verifyView is what the public verification page renders before the
// supervisor signs. Tokens never appear in the payload.
type verifyView struct {
	Type             string     `json:"type"` // "ndt" or "rope"
	TechnicianName   string     `json:"technician_name"`
	SupervisorName   string     `json:"supervisor_name"`
	Status           string     `json:"status"`
	Hours            float64    `json:"hours,omitempty"`
	Method           string     `json:"method,omitempty"`
	Company          string     `json:"company,omitempty"`
	VerificationDate *time.Time `json:"verification_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Verify handles GET /v1/signatures/verify/:token (public). The token
// is looked up in both request tables; unknown tokens 404 without
// hinting which table was consulted.
func (h *SignatureHandler) Verify(c echo.Context) error {
	token := c.Param("token")
	ctx, cancel := reqCtx(c)
	defer cancel()

	if s, err := h.Signatures.GetNDTByToken(ctx, token); err == nil {
		return c.JSON(http.StatusOK, verifyView{
			Type:             "ndt",
			TechnicianName:   s.TechnicianName,
			SupervisorName:   s.SupervisorName,
			Status:           s.Status,
			Hours:            s.Hours,
			Method:           s.Method,
			Company:          s.Company,
			VerificationDate: s.VerificationDate,
			CreatedAt:        s.CreatedAt,
		})
	} else if err != repository.ErrNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	s, err := h.Signatures.GetRopeByToken(ctx, token)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "signature request not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, verifyView{
		Type:             "rope",
		TechnicianName:   s.TechnicianName,
		SupervisorName:   s.SupervisorName,
		Status:           s.Status,
		VerificationDate: s.VerificationDate,
		CreatedAt:        s.CreatedAt,
	})
}

// Confirm handles POST /v1/signatures/verify/:token (public). The
// transition is one-way: a second confirm attempt answers 409 and the
// original verification date stands.
func (h *SignatureHandler) Confirm(c echo.Context) error {
	token := c.Param("token")
	now := time.Now().UTC()

	ctx, cancel := reqCtx(c)
	defer cancel()

	err := h.Signatures.ConfirmNDTByToken(ctx, token, now)
	if err == repository.ErrNotFound {
		err = h.Signatures.ConfirmRopeByToken(ctx, token, now)
	}
	switch err {
	case nil:
		return c.JSON(http.StatusOK, echo.Map{
			"status":            model.SignatureStatusConfirmed,
			"verification_date": now,
		})
	case repository.ErrAlreadyConfirmed:
		return c.JSON(http.StatusConflict, echo.Map{"error": "signature already confirmed"})
	case repository.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "signature request not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm failed"})
	}
}
