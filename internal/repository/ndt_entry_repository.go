package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ndtverified/hours-service/internal/model"
)

// NDTEntryRepo persists NDT hours entries. Every query is scoped by
// user_id; ownership is enforced in SQL, not in handlers.
type NDTEntryRepo struct{ DB *sql.DB }

func NewNDTEntryRepo(db *sql.DB) *NDTEntryRepo { return &NDTEntryRepo{DB: db} }

const ndtEntryColumns = "id,user_id,DATE_FORMAT(entry_date,'%Y-%m-%d'),method,location,hours,company,supervisor,created_at,updated_at"

func scanNDTEntry(row interface{ Scan(...any) error }) (model.NDTEntry, error) {
	var e model.NDTEntry
	err := row.Scan(&e.ID, &e.UserID, &e.EntryDate, &e.Method, &e.Location,
		&e.Hours, &e.Company, &e.Supervisor, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// ListByUser returns the user's entries newest first by entry date.
func (r *NDTEntryRepo) ListByUser(ctx context.Context, userID string) ([]model.NDTEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+ndtEntryColumns+" FROM ndt_entries WHERE user_id=? ORDER BY entry_date DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.NDTEntry, 0)
	for rows.Next() {
		e, err := scanNDTEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetByIDAndOwner fetches one entry, returning ErrNotFound when it does
// not exist or belongs to someone else.
func (r *NDTEntryRepo) GetByIDAndOwner(ctx context.Context, id, userID string) (model.NDTEntry, error) {
	e, err := scanNDTEntry(r.DB.QueryRowContext(ctx,
		"SELECT "+ndtEntryColumns+" FROM ndt_entries WHERE id=? AND user_id=? LIMIT 1",
		id, userID))
	if err == sql.ErrNoRows {
		return model.NDTEntry{}, ErrNotFound
	}
	return e, err
}

// Create inserts an entry and returns it with the generated id.
func (r *NDTEntryRepo) Create(ctx context.Context, e model.NDTEntry) (model.NDTEntry, error) {
	e.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO ndt_entries (id, user_id, entry_date, method, location, hours, company, supervisor) VALUES (?,?,?,?,?,?,?,?)",
		e.ID, e.UserID, e.EntryDate, e.Method, e.Location, e.Hours, e.Company, e.Supervisor)
	if err != nil {
		return model.NDTEntry{}, err
	}
	return r.GetByIDAndOwner(ctx, e.ID, e.UserID)
}

// Update rewrites the mutable columns of an owned entry.
func (r *NDTEntryRepo) Update(ctx context.Context, e model.NDTEntry) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE ndt_entries SET entry_date=?, method=?, location=?, hours=?, company=?, supervisor=?, updated_at=NOW() WHERE id=? AND user_id=?",
		e.EntryDate, e.Method, e.Location, e.Hours, e.Company, e.Supervisor, e.ID, e.UserID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Identical values also report zero affected rows on MySQL.
		if _, gerr := r.GetByIDAndOwner(ctx, e.ID, e.UserID); gerr != nil {
			return gerr
		}
	}
	return nil
}

// Delete removes an owned entry.
func (r *NDTEntryRepo) Delete(ctx context.Context, id, userID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM ndt_entries WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
