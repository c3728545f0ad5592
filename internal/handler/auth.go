package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ndtverified/hours-service/internal/config"
	"github.com/ndtverified/hours-service/internal/middleware"
	"github.com/ndtverified/hours-service/internal/model"
	"github.com/ndtverified/hours-service/internal/queue"
	"github.com/ndtverified/hours-service/internal/repository"
	queue_publisher "github.com/ndtverified/hours-service/internal/service"
	"github.com/ndtverified/hours-service/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints. Notify publishes
// email notification events; tests replace it to capture events without
// a broker.
type AuthHandler struct {
	Cfg      config.Config
	Users    repository.UserStore
	Profiles repository.ProfileStore
	Tokens   repository.TokenStore
	Notify   func(ctx context.Context, ev queue.EmailNotificationEvent) error
}

func NewAuthHandler(cfg config.Config, s *repository.Store) *AuthHandler {
	return &AuthHandler{
		Cfg:      cfg,
		Users:    s.Users,
		Profiles: s.Profiles,
		Tokens:   s.Tokens,
		Notify:   queue_publisher.PublishEmailNotification,
	}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}
type forgotReq struct {
	Email string `json:"email"`
}
type resetReq struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// roleFor maps the profile's admin flag onto the JWT role claim.
func roleFor(p model.Profile) string {
	if p.IsAdmin {
		return middleware.RoleAdmin
	}
	return middleware.RoleTech
}

// issuePair creates an access/refresh token pair and persists the
// refresh hash.
func (h *AuthHandler) issuePair(ctx context.Context, userID, role string) (utils.AccessToken, utils.RefreshToken, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, role, h.Cfg.AccessTTLMin)
	if err != nil {
		return utils.AccessToken{}, utils.RefreshToken{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return utils.AccessToken{}, utils.RefreshToken{}, err
	}
	if err := h.Tokens.StoreRefresh(ctx, userID, utils.HashTokenRaw(refresh.Raw), refresh.Exp); err != nil {
		return utils.AccessToken{}, utils.RefreshToken{}, err
	}
	return access, refresh, nil
}

// Register: create auth identity plus profile, return tokens
// immediately. The username pre-check runs before the identity insert
// so a taken username never creates an auth identity; the check and
// the insert are separate round trips, with the unique keys in the
// store as the backstop for the race between them.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Email == "" || req.Password == "" || req.Username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password/username required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// Username collision pre-check.
	if _, err := h.Profiles.GetByUsername(ctx, req.Username); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "username already taken"})
	} else if err != repository.ErrNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	uid, err := h.Users.Create(ctx, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	profile := model.Profile{ID: uid, Username: req.Username, FullName: req.FullName, IsAdmin: false}
	if err := h.Profiles.Create(ctx, profile); err != nil {
		if err == repository.ErrUsernameExists {
			// Lost the race past the pre-check.
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already taken"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create profile failed"})
	}

	role := roleFor(profile)
	access, refresh, err := h.issuePair(ctx, uid, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}

	return c.JSON(http.StatusCreated, authResp{
		User:    userPart{ID: uid, Email: req.Email, Username: req.Username, Role: role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	})
}

// Login: verify credentials and return a new token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if err == repository.ErrInvalidCredentials {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	profile, err := h.Profiles.GetByID(ctx, u.ID)
	if err != nil && err != repository.ErrNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	role := roleFor(profile)

	access, refresh, err := h.issuePair(ctx, u.ID, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		User:    userPart{ID: u.ID, Email: u.Email, Username: profile.Username, Role: role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
	})
}

// Refresh: validate by hash, revoke old, issue new pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashTokenRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := reqCtx(c)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	profile, err := h.Profiles.GetByID(ctx, userID)
	if err != nil && err != repository.ErrNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	role := roleFor(profile)

	access, refresh, err := h.issuePair(ctx, userID, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		User:    userPart{ID: userID, Email: u.Email, Username: profile.Username, Role: role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
	})
}

// RefreshAccess: validate a refresh token and return a new access token
// WITHOUT rotating the refresh token.
func (h *AuthHandler) RefreshAccess(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashTokenRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := reqCtx(c)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	if _, err := h.Users.GetByID(ctx, userID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	profile, err := h.Profiles.GetByID(ctx, userID)
	if err != nil && err != repository.ErrNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, roleFor(profile), h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access": tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Logout: revoke a specific refresh token. The session carrying the
// access token simply expires; refresh revocation is what ends it.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashTokenRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// LogoutAll: revoke every refresh token of the authenticated user
// (protected route).
func (h *AuthHandler) LogoutAll(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ForgotPassword issues a reset token and publishes the reset email
// event. The response is always 202 so the endpoint cannot be used to
// probe which emails have accounts.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		// Unknown email gets the same answer as a known one.
		return c.JSON(http.StatusAccepted, echo.Map{"message": "if the account exists, a reset email has been sent"})
	}

	reset, err := utils.NewResetToken(h.Cfg.ResetTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue reset failed"})
	}
	if err := h.Tokens.StoreReset(ctx, u.ID, utils.HashTokenRaw(reset.Raw), reset.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save reset failed"})
	}

	link := h.Cfg.BaseURL + "/reset-password?token=" + reset.Raw
	_ = h.Notify(ctx, queue.EmailNotificationEvent{
		Kind:        queue.KindPasswordReset,
		To:          u.Email,
		Subject:     "Reset your password",
		Body:        "Use the link below to set a new password. The link expires soon.",
		Link:        link,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusAccepted, echo.Map{"message": "if the account exists, a reset email has been sent"})
}

// ResetPassword consumes a reset token and sets the new password, then
// revokes all refresh tokens so stolen sessions die with the old
// password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Token) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	userID, err := h.Tokens.ConsumeReset(ctx, utils.HashTokenRaw(strings.TrimSpace(req.Token)))
	if err != nil {
		if err == repository.ErrNotFound || err == repository.ErrTokenExpired {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset failed"})
	}
	if err := h.Users.UpdatePassword(ctx, userID, req.Password, h.Cfg.BcryptCost); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update password failed"})
	}
	_ = h.Tokens.RevokeAllForUser(ctx, userID)

	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated identity with its profile, the signal a
// client uses to leave its loading state.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	profile, err := h.Profiles.GetByID(ctx, uid)
	if err != nil && err != repository.ErrNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user_id":  uid,
		"role":     c.Get("role"),
		"profile":  profile,
		"is_admin": profile.IsAdmin,
	})
}
