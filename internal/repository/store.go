package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/ndtverified/hours-service/internal/model"
)

// The store interfaces decouple handlers and aggregation from the
// concrete storage technology. Two strategies implement them: the MySQL
// repositories in this package and the in-memory mock store used for
// offline development and handler tests. The strategy is selected once
// at startup; business logic never branches on it.

// UserStore manages auth identities.
type UserStore interface {
	// Create inserts a user row and returns its UUID.
	Create(ctx context.Context, email, password string, cost int) (string, error)
	// Authenticate verifies an email/password pair and returns the user.
	// Returns ErrInvalidCredentials on any mismatch.
	Authenticate(ctx context.Context, email, password string) (model.User, error)
	// GetByID fetches a user by UUID.
	GetByID(ctx context.Context, id string) (model.User, error)
	// GetByEmail fetches a user by normalized email.
	GetByEmail(ctx context.Context, email string) (model.User, error)
	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id, password string, cost int) error
}

// ProfileStore manages technician profiles.
type ProfileStore interface {
	// Create inserts the profile row created at registration.
	Create(ctx context.Context, p model.Profile) error
	// GetByID fetches a profile by user UUID.
	GetByID(ctx context.Context, id string) (model.Profile, error)
	// GetByUsername fetches a profile by its unique username.
	GetByUsername(ctx context.Context, username string) (model.Profile, error)
	// Update changes username/full_name for the given user.
	Update(ctx context.Context, id, username, fullName string) error
	// List returns all profiles, newest first. Admin-only surface.
	List(ctx context.Context) ([]model.Profile, error)
}

// NDTEntryStore manages NDT hours entries, always scoped by owner.
type NDTEntryStore interface {
	// ListByUser returns the user's entries ordered by entry_date descending.
	ListByUser(ctx context.Context, userID string) ([]model.NDTEntry, error)
	// GetByIDAndOwner fetches one entry, enforcing ownership.
	GetByIDAndOwner(ctx context.Context, id, userID string) (model.NDTEntry, error)
	// Create inserts an entry and returns it with the generated id.
	Create(ctx context.Context, e model.NDTEntry) (model.NDTEntry, error)
	// Update rewrites the mutable columns of an owned entry.
	Update(ctx context.Context, e model.NDTEntry) error
	// Delete removes an owned entry.
	Delete(ctx context.Context, id, userID string) error
}

// RopeEntryStore manages rope-access entries.
type RopeEntryStore interface {
	ListByUser(ctx context.Context, userID string) ([]model.RopeEntry, error)
	GetByIDAndOwner(ctx context.Context, id, userID string) (model.RopeEntry, error)
	Create(ctx context.Context, e model.RopeEntry) (model.RopeEntry, error)
	Delete(ctx context.Context, id, userID string) error
}

// LookupStore manages the open-vocabulary method and company lists.
// Ensure* lazily inserts a missing name; a concurrent duplicate insert
// loses to the unique key and is treated as success.
type LookupStore interface {
	ListMethods(ctx context.Context) ([]model.Method, error)
	ListCompanies(ctx context.Context) ([]model.Company, error)
	EnsureMethod(ctx context.Context, name string) error
	EnsureCompany(ctx context.Context, name string) error
}

// SignatureStore manages supervisor sign-off requests for both entry
// variants.
type SignatureStore interface {
	CreateNDT(ctx context.Context, s model.NDTSignature) (model.NDTSignature, error)
	CreateRope(ctx context.Context, s model.RopeSignature) (model.RopeSignature, error)
	ListNDTByTechnician(ctx context.Context, technicianID string) ([]model.NDTSignature, error)
	ListRopeByTechnician(ctx context.Context, technicianID string) ([]model.RopeSignature, error)
	// StatusesByTechnician returns the status column of the technician's
	// NDT signature requests, for dashboard counting.
	StatusesByTechnician(ctx context.Context, technicianID string) ([]model.SignatureStatusRef, error)
	// GetNDTByToken / GetRopeByToken load a request for the public
	// verification page.
	GetNDTByToken(ctx context.Context, token string) (model.NDTSignature, error)
	GetRopeByToken(ctx context.Context, token string) (model.RopeSignature, error)
	// ConfirmNDTByToken / ConfirmRopeByToken move a Pending request to
	// Confirmed. ErrAlreadyConfirmed when the transition already happened,
	// ErrNotFound when the token is unknown.
	ConfirmNDTByToken(ctx context.Context, token string, when time.Time) error
	ConfirmRopeByToken(ctx context.Context, token string, when time.Time) error
}

// TokenStore persists refresh tokens and password reset tokens (hashes
// only).
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID, tokenHash string, exp time.Time) error
	// ValidateRefresh returns the owning userID if a non-revoked,
	// non-expired token exists.
	ValidateRefresh(ctx context.Context, tokenHash string) (string, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	StoreReset(ctx context.Context, userID, tokenHash string, exp time.Time) error
	// ConsumeReset validates a reset token hash, marks it used, and
	// returns the owning userID. ErrTokenExpired for stale or spent
	// tokens, ErrNotFound for unknown ones.
	ConsumeReset(ctx context.Context, tokenHash string) (string, error)
}

// Store bundles every interface so main can wire one value through the
// handlers regardless of strategy.
type Store struct {
	Users       UserStore
	Profiles    ProfileStore
	NDTEntries  NDTEntryStore
	RopeEntries RopeEntryStore
	Lookups     LookupStore
	Signatures  SignatureStore
	Tokens      TokenStore
}

// NewMySQLStore builds the production store over an open *sql.DB.
func NewMySQLStore(db *sql.DB) *Store {
	return &Store{
		Users:       NewUserRepo(db),
		Profiles:    NewProfileRepo(db),
		NDTEntries:  NewNDTEntryRepo(db),
		RopeEntries: NewRopeEntryRepo(db),
		Lookups:     NewLookupRepo(db),
		Signatures:  NewSignatureRepo(db),
		Tokens:      NewTokenRepo(db),
	}
}
