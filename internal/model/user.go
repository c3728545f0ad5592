package model

import "time"

// User represents an authentication identity as stored in the `users`
// table. The profile (display data, admin flag) lives in a separate
// `profiles` table sharing the same UUID primary key, so the auth
// identity and the application profile stay distinct records.
//
// Fields:
//  ID           – UUID primary key, shared with profiles.id.
//  Email        – unique login email, stored lower-cased.
//  PasswordHash – bcrypt hashed password.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           string    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Profile is the public-facing record for a technician. It is created
// exactly once at registration and is read-mostly afterwards. IsAdmin
// gates the admin-only surface of the API.
type Profile struct {
	ID        string    `json:"id"`         // profiles.id (= users.id)
	Username  string    `json:"username"`   // profiles.username (unique)
	FullName  string    `json:"full_name"`  // profiles.full_name
	IsAdmin   bool      `json:"is_admin"`   // profiles.is_admin
	CreatedAt time.Time `json:"created_at"` // profiles.created_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the raw token is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    string     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}

// PasswordReset models a single-use password reset token. As with
// refresh tokens only the hash is persisted; the raw token travels in
// the reset email.
type PasswordReset struct {
	ID        uint64     // password_resets.id
	UserID    string     // password_resets.user_id
	TokenHash string     // password_resets.token_hash
	ExpiresAt time.Time  // password_resets.expires_at
	UsedAt    *time.Time // password_resets.used_at (nullable)
	CreatedAt time.Time  // password_resets.created_at
}
