package repository

import (
	"context"
	"time"

	"github.com/ndtverified/hours-service/internal/model"
)

// The mock store is the offline development strategy: every list is
// empty, every write succeeds without persisting, and authentication
// always resolves to a fixed fake identity. It lets the API (and any
// front end pointed at it) run with no MySQL, Redis, or broker at all.

var mockUser = model.User{
	ID:       "mock-user-id",
	Email:    "test@local.dev",
	IsActive: true,
}

var mockProfile = model.Profile{
	ID:       "mock-user-id",
	Username: "mockuser",
	FullName: "Mock Technician",
}

// NewMockStore bundles the no-op implementations of every store
// interface.
func NewMockStore() *Store {
	return &Store{
		Users:       mockUsers{},
		Profiles:    mockProfiles{},
		NDTEntries:  mockNDTEntries{},
		RopeEntries: mockRopeEntries{},
		Lookups:     mockLookups{},
		Signatures:  mockSignatures{},
		Tokens:      mockTokens{},
	}
}

type mockUsers struct{}

func (mockUsers) Create(ctx context.Context, email, password string, cost int) (string, error) {
	return mockUser.ID, nil
}

// Authenticate accepts any credentials and returns the fake identity.
func (mockUsers) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	return mockUser, nil
}

func (mockUsers) GetByID(ctx context.Context, id string) (model.User, error) {
	return mockUser, nil
}

func (mockUsers) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return mockUser, nil
}

func (mockUsers) UpdatePassword(ctx context.Context, id, password string, cost int) error {
	return nil
}

type mockProfiles struct{}

func (mockProfiles) Create(ctx context.Context, p model.Profile) error { return nil }

func (mockProfiles) GetByID(ctx context.Context, id string) (model.Profile, error) {
	return mockProfile, nil
}

// GetByUsername always misses: no usernames are taken in mock mode, so
// registration never collides.
func (mockProfiles) GetByUsername(ctx context.Context, username string) (model.Profile, error) {
	return model.Profile{}, ErrNotFound
}

func (mockProfiles) Update(ctx context.Context, id, username, fullName string) error { return nil }

func (mockProfiles) List(ctx context.Context) ([]model.Profile, error) {
	return []model.Profile{mockProfile}, nil
}

type mockNDTEntries struct{}

func (mockNDTEntries) ListByUser(ctx context.Context, userID string) ([]model.NDTEntry, error) {
	return []model.NDTEntry{}, nil
}

func (mockNDTEntries) GetByIDAndOwner(ctx context.Context, id, userID string) (model.NDTEntry, error) {
	return model.NDTEntry{}, ErrNotFound
}

func (mockNDTEntries) Create(ctx context.Context, e model.NDTEntry) (model.NDTEntry, error) {
	e.ID = "mock-entry-id"
	return e, nil
}

func (mockNDTEntries) Update(ctx context.Context, e model.NDTEntry) error { return nil }

func (mockNDTEntries) Delete(ctx context.Context, id, userID string) error { return nil }

type mockRopeEntries struct{}

func (mockRopeEntries) ListByUser(ctx context.Context, userID string) ([]model.RopeEntry, error) {
	return []model.RopeEntry{}, nil
}

func (mockRopeEntries) GetByIDAndOwner(ctx context.Context, id, userID string) (model.RopeEntry, error) {
	return model.RopeEntry{}, ErrNotFound
}

func (mockRopeEntries) Create(ctx context.Context, e model.RopeEntry) (model.RopeEntry, error) {
	e.ID = "mock-entry-id"
	return e, nil
}

func (mockRopeEntries) Delete(ctx context.Context, id, userID string) error { return nil }

type mockLookups struct{}

func (mockLookups) ListMethods(ctx context.Context) ([]model.Method, error) {
	return []model.Method{}, nil
}

func (mockLookups) ListCompanies(ctx context.Context) ([]model.Company, error) {
	return []model.Company{}, nil
}

func (mockLookups) EnsureMethod(ctx context.Context, name string) error { return nil }

func (mockLookups) EnsureCompany(ctx context.Context, name string) error { return nil }

type mockSignatures struct{}

func (mockSignatures) CreateNDT(ctx context.Context, s model.NDTSignature) (model.NDTSignature, error) {
	s.ID = "mock-signature-id"
	s.Status = model.SignatureStatusPending
	return s, nil
}

func (mockSignatures) CreateRope(ctx context.Context, s model.RopeSignature) (model.RopeSignature, error) {
	s.ID = "mock-signature-id"
	s.Status = model.SignatureStatusPending
	return s, nil
}

func (mockSignatures) ListNDTByTechnician(ctx context.Context, technicianID string) ([]model.NDTSignature, error) {
	return []model.NDTSignature{}, nil
}

func (mockSignatures) ListRopeByTechnician(ctx context.Context, technicianID string) ([]model.RopeSignature, error) {
	return []model.RopeSignature{}, nil
}

func (mockSignatures) StatusesByTechnician(ctx context.Context, technicianID string) ([]model.SignatureStatusRef, error) {
	return []model.SignatureStatusRef{}, nil
}

func (mockSignatures) GetNDTByToken(ctx context.Context, token string) (model.NDTSignature, error) {
	return model.NDTSignature{}, ErrNotFound
}

func (mockSignatures) GetRopeByToken(ctx context.Context, token string) (model.RopeSignature, error) {
	return model.RopeSignature{}, ErrNotFound
}

func (mockSignatures) ConfirmNDTByToken(ctx context.Context, token string, when time.Time) error {
	return ErrNotFound
}

func (mockSignatures) ConfirmRopeByToken(ctx context.Context, token string, when time.Time) error {
	return ErrNotFound
}

type mockTokens struct{}

func (mockTokens) StoreRefresh(ctx context.Context, userID, tokenHash string, exp time.Time) error {
	return nil
}

// ValidateRefresh accepts any token so the refresh flow keeps working
// against the mock backend.
func (mockTokens) ValidateRefresh(ctx context.Context, tokenHash string) (string, error) {
	return mockUser.ID, nil
}

func (mockTokens) RevokeByHash(ctx context.Context, tokenHash string) error { return nil }

func (mockTokens) RevokeAllForUser(ctx context.Context, userID string) error { return nil }

func (mockTokens) StoreReset(ctx context.Context, userID, tokenHash string, exp time.Time) error {
	return nil
}

func (mockTokens) ConsumeReset(ctx context.Context, tokenHash string) (string, error) {
	return mockUser.ID, nil
}
