package handler

// Hand-rolled store fakes for handler tests. Every method delegates to
// an optional function field and counts its calls, so a test can both
// script behavior and assert that a gate kept the store untouched.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ndtverified/hours-service/internal/model"
	"github.com/ndtverified/hours-service/internal/repository"
)

type fakeUsers struct {
	createCalls int
	createFn    func(ctx context.Context, email, password string, cost int) (string, error)
	authFn      func(ctx context.Context, email, password string) (model.User, error)
	getByIDFn   func(ctx context.Context, id string) (model.User, error)
	getByEmail  func(ctx context.Context, email string) (model.User, error)
}

func (f *fakeUsers) Create(ctx context.Context, email, password string, cost int) (string, error) {
	f.createCalls++
	if f.createFn != nil {
		return f.createFn(ctx, email, password, cost)
	}
	return "new-user-id", nil
}

func (f *fakeUsers) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	if f.authFn != nil {
		return f.authFn(ctx, email, password)
	}
	return model.User{}, repository.ErrInvalidCredentials
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (model.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return model.User{ID: id}, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (model.User, error) {
	if f.getByEmail != nil {
		return f.getByEmail(ctx, email)
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id, password string, cost int) error {
	return nil
}

type fakeProfiles struct {
	byUsernameFn func(ctx context.Context, username string) (model.Profile, error)
	byIDFn       func(ctx context.Context, id string) (model.Profile, error)
	updateFn     func(ctx context.Context, id, username, fullName string) error
}

func (f *fakeProfiles) Create(ctx context.Context, p model.Profile) error { return nil }

func (f *fakeProfiles) GetByID(ctx context.Context, id string) (model.Profile, error) {
	if f.byIDFn != nil {
		return f.byIDFn(ctx, id)
	}
	return model.Profile{ID: id, Username: "tech1", FullName: "Tech One"}, nil
}

func (f *fakeProfiles) GetByUsername(ctx context.Context, username string) (model.Profile, error) {
	if f.byUsernameFn != nil {
		return f.byUsernameFn(ctx, username)
	}
	return model.Profile{}, repository.ErrNotFound
}

func (f *fakeProfiles) Update(ctx context.Context, id, username, fullName string) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, username, fullName)
	}
	return nil
}

func (f *fakeProfiles) List(ctx context.Context) ([]model.Profile, error) {
	return []model.Profile{}, nil
}

type fakeTokens struct {
	validateFn func(ctx context.Context, hash string) (string, error)
	consumeFn  func(ctx context.Context, hash string) (string, error)
	storeReset int
}

func (f *fakeTokens) StoreRefresh(ctx context.Context, userID, tokenHash string, exp time.Time) error {
	return nil
}

func (f *fakeTokens) ValidateRefresh(ctx context.Context, tokenHash string) (string, error) {
	if f.validateFn != nil {
		return f.validateFn(ctx, tokenHash)
	}
	return "", repository.ErrNotFound
}

func (f *fakeTokens) RevokeByHash(ctx context.Context, tokenHash string) error   { return nil }
func (f *fakeTokens) RevokeAllForUser(ctx context.Context, userID string) error { return nil }

func (f *fakeTokens) StoreReset(ctx context.Context, userID, tokenHash string, exp time.Time) error {
	f.storeReset++
	return nil
}

func (f *fakeTokens) ConsumeReset(ctx context.Context, tokenHash string) (string, error) {
	if f.consumeFn != nil {
		return f.consumeFn(ctx, tokenHash)
	}
	return "", repository.ErrTokenExpired
}

type fakeNDTEntries struct {
	createCalls int
	listFn      func(ctx context.Context, userID string) ([]model.NDTEntry, error)
	getFn       func(ctx context.Context, id, userID string) (model.NDTEntry, error)
	createFn    func(ctx context.Context, e model.NDTEntry) (model.NDTEntry, error)
	deleteFn    func(ctx context.Context, id, userID string) error
}

func (f *fakeNDTEntries) ListByUser(ctx context.Context, userID string) ([]model.NDTEntry, error) {
	if f.listFn != nil {
		return f.listFn(ctx, userID)
	}
	return []model.NDTEntry{}, nil
}

func (f *fakeNDTEntries) GetByIDAndOwner(ctx context.Context, id, userID string) (model.NDTEntry, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id, userID)
	}
	return model.NDTEntry{}, repository.ErrNotFound
}

func (f *fakeNDTEntries) Create(ctx context.Context, e model.NDTEntry) (model.NDTEntry, error) {
	f.createCalls++
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	e.ID = "e-created"
	return e, nil
}

func (f *fakeNDTEntries) Update(ctx context.Context, e model.NDTEntry) error { return nil }

func (f *fakeNDTEntries) Delete(ctx context.Context, id, userID string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id, userID)
	}
	return nil
}

type fakeRopeEntries struct {
	createCalls int
	getFn       func(ctx context.Context, id, userID string) (model.RopeEntry, error)
	createFn    func(ctx context.Context, e model.RopeEntry) (model.RopeEntry, error)
}

func (f *fakeRopeEntries) ListByUser(ctx context.Context, userID string) ([]model.RopeEntry, error) {
	return []model.RopeEntry{}, nil
}

func (f *fakeRopeEntries) GetByIDAndOwner(ctx context.Context, id, userID string) (model.RopeEntry, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id, userID)
	}
	return model.RopeEntry{}, repository.ErrNotFound
}

func (f *fakeRopeEntries) Create(ctx context.Context, e model.RopeEntry) (model.RopeEntry, error) {
	f.createCalls++
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	e.ID = "r-created"
	return e, nil
}

func (f *fakeRopeEntries) Delete(ctx context.Context, id, userID string) error { return nil }

type fakeLookups struct {
	methods   []string
	companies []string
}

func (f *fakeLookups) ListMethods(ctx context.Context) ([]model.Method, error) {
	return []model.Method{}, nil
}

func (f *fakeLookups) ListCompanies(ctx context.Context) ([]model.Company, error) {
	return []model.Company{}, nil
}

func (f *fakeLookups) EnsureMethod(ctx context.Context, name string) error {
	f.methods = append(f.methods, name)
	return nil
}

func (f *fakeLookups) EnsureCompany(ctx context.Context, name string) error {
	f.companies = append(f.companies, name)
	return nil
}

type fakeSignatures struct {
	createdNDT    []model.NDTSignature
	createdRope   []model.RopeSignature
	confirmNDTFn  func(ctx context.Context, token string, when time.Time) error
	confirmRopeFn func(ctx context.Context, token string, when time.Time) error
	getNDTFn      func(ctx context.Context, token string) (model.NDTSignature, error)
	getRopeFn     func(ctx context.Context, token string) (model.RopeSignature, error)
	listNDTFn     func(ctx context.Context, technicianID string) ([]model.NDTSignature, error)
	listRopeFn    func(ctx context.Context, technicianID string) ([]model.RopeSignature, error)
}

func (f *fakeSignatures) CreateNDT(ctx context.Context, s model.NDTSignature) (model.NDTSignature, error) {
	s.ID = "sig-ndt"
	f.createdNDT = append(f.createdNDT, s)
	return s, nil
}

func (f *fakeSignatures) CreateRope(ctx context.Context, s model.RopeSignature) (model.RopeSignature, error) {
	s.ID = "sig-rope"
	f.createdRope = append(f.createdRope, s)
	return s, nil
}

func (f *fakeSignatures) ListNDTByTechnician(ctx context.Context, technicianID string) ([]model.NDTSignature, error) {
	if f.listNDTFn != nil {
		return f.listNDTFn(ctx, technicianID)
	}
	return []model.NDTSignature{}, nil
}

func (f *fakeSignatures) ListRopeByTechnician(ctx context.Context, technicianID string) ([]model.RopeSignature, error) {
	if f.listRopeFn != nil {
		return f.listRopeFn(ctx, technicianID)
	}
	return []model.RopeSignature{}, nil
}

func (f *fakeSignatures) StatusesByTechnician(ctx context.Context, technicianID string) ([]model.SignatureStatusRef, error) {
	return []model.SignatureStatusRef{}, nil
}

func (f *fakeSignatures) GetNDTByToken(ctx context.Context, token string) (model.NDTSignature, error) {
	if f.getNDTFn != nil {
		return f.getNDTFn(ctx, token)
	}
	return model.NDTSignature{}, repository.ErrNotFound
}

func (f *fakeSignatures) GetRopeByToken(ctx context.Context, token string) (model.RopeSignature, error) {
	if f.getRopeFn != nil {
		return f.getRopeFn(ctx, token)
	}
	return model.RopeSignature{}, repository.ErrNotFound
}

func (f *fakeSignatures) ConfirmNDTByToken(ctx context.Context, token string, when time.Time) error {
	if f.confirmNDTFn != nil {
		return f.confirmNDTFn(ctx, token, when)
	}
	return repository.ErrNotFound
}

func (f *fakeSignatures) ConfirmRopeByToken(ctx context.Context, token string, when time.Time) error {
	if f.confirmRopeFn != nil {
		return f.confirmRopeFn(ctx, token, when)
	}
	return repository.ErrNotFound
}

// newTestContext builds an echo context around a JSON request body and
// returns the recorder capturing the response.
func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asAuthed marks the context as carrying a valid access token.
func asAuthed(c echo.Context, userID string) {
	c.Set("user_id", userID)
	c.Set("role", "TECH")
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, rec.Body.String())
	}
	return out
}
