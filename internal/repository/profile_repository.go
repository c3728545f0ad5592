package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/ndtverified/hours-service/internal/model"
)

// ProfileRepo persists technician profiles in the 'profiles' table.
// The profile id equals the auth identity id.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

// Create inserts the profile row created during registration.
func (r *ProfileRepo) Create(ctx context.Context, p model.Profile) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO profiles (id, username, full_name, is_admin) VALUES (?,?,?,?)",
		p.ID, p.Username, p.FullName, p.IsAdmin)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrUsernameExists
	}
	return err
}

// GetByID fetches a profile by user id.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (model.Profile, error) {
	var p model.Profile
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,full_name,is_admin,created_at FROM profiles WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.Username, &p.FullName, &p.IsAdmin, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Profile{}, ErrNotFound
	}
	return p, err
}

// GetByUsername fetches a profile by its unique username. Registration
// uses this as the duplicate-username pre-check.
func (r *ProfileRepo) GetByUsername(ctx context.Context, username string) (model.Profile, error) {
	var p model.Profile
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,full_name,is_admin,created_at FROM profiles WHERE username=? LIMIT 1",
		strings.TrimSpace(username)).Scan(&p.ID, &p.Username, &p.FullName, &p.IsAdmin, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Profile{}, ErrNotFound
	}
	return p, err
}

// Update changes the caller's username and full name. The unique key on
// username turns collisions into ErrUsernameExists.
func (r *ProfileRepo) Update(ctx context.Context, id, username, fullName string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE profiles SET username=?, full_name=? WHERE id=?",
		username, fullName, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrUsernameExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Could also be an update to identical values; re-check existence.
		if _, gerr := r.GetByID(ctx, id); gerr != nil {
			return gerr
		}
	}
	return nil
}

// List returns every profile, newest first. Only the admin surface
// calls this.
func (r *ProfileRepo) List(ctx context.Context) ([]model.Profile, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,username,full_name,is_admin,created_at FROM profiles ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Profile, 0)
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.ID, &p.Username, &p.FullName, &p.IsAdmin, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
