package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ndtverified/hours-service/internal/utils"
)

const testSecret = "test-secret"

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func doGuarded(t *testing.T, mw echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := mw(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec := doGuarded(t, JWTAuth(testSecret), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthMalformedToken(t *testing.T) {
	rec := doGuarded(t, JWTAuth(testSecret), "Bearer not-a-jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", "user-1", RoleTech, 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec := doGuarded(t, JWTAuth(testSecret), "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthValidTokenInjectsClaims(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "user-1", RoleTech, 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUser, gotRole any
	inner := func(c echo.Context) error {
		gotUser = c.Get("user_id")
		gotRole = c.Get("role")
		return c.String(http.StatusOK, "ok")
	}
	if err := JWTAuth(testSecret)(inner)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUser != "user-1" {
		t.Errorf("user_id = %v, want user-1", gotUser)
	}
	if gotRole != RoleTech {
		t.Errorf("role = %v, want %s", gotRole, RoleTech)
	}
}

func roleContext(t *testing.T, role any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	return c, rec
}

// An authenticated non-admin is rejected with 403 even though a user is
// present.
func TestRequireRoleNonAdminForbidden(t *testing.T) {
	c, rec := roleContext(t, RoleTech)
	c.Set("user_id", "user-1")
	if err := RequireRole(RoleAdmin)(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRoleAdminAllowed(t *testing.T) {
	c, rec := roleContext(t, RoleAdmin)
	if err := RequireRole(RoleAdmin)(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequireRoleMissingRoleForbidden(t *testing.T) {
	c, rec := roleContext(t, nil)
	if err := RequireRole(RoleAdmin, RoleTech)(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRoleNonStringRoleForbidden(t *testing.T) {
	c, rec := roleContext(t, 42)
	if err := RequireRole(RoleAdmin)(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
