package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ndtverified/hours-service/internal/model"
)

// RopeEntryRepo persists rope-access entries, owner-scoped like
// NDTEntryRepo.
type RopeEntryRepo struct{ DB *sql.DB }

func NewRopeEntryRepo(db *sql.DB) *RopeEntryRepo { return &RopeEntryRepo{DB: db} }

const ropeEntryColumns = "id,user_id,DATE_FORMAT(date_from,'%Y-%m-%d'),DATE_FORMAT(date_to,'%Y-%m-%d'),company,location,tasks,industry,details,supervisor,rope_hours,level,signature_hash,created_at"

func scanRopeEntry(row interface{ Scan(...any) error }) (model.RopeEntry, error) {
	var e model.RopeEntry
	err := row.Scan(&e.ID, &e.UserID, &e.DateFrom, &e.DateTo, &e.Company,
		&e.Location, &e.Tasks, &e.Industry, &e.Details, &e.Supervisor,
		&e.RopeHours, &e.Level, &e.SignatureHash, &e.CreatedAt)
	return e, err
}

// ListByUser returns the user's rope entries newest first.
func (r *RopeEntryRepo) ListByUser(ctx context.Context, userID string) ([]model.RopeEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+ropeEntryColumns+" FROM rope_entries WHERE user_id=? ORDER BY date_from DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.RopeEntry, 0)
	for rows.Next() {
		e, err := scanRopeEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetByIDAndOwner fetches one rope entry, enforcing ownership.
func (r *RopeEntryRepo) GetByIDAndOwner(ctx context.Context, id, userID string) (model.RopeEntry, error) {
	e, err := scanRopeEntry(r.DB.QueryRowContext(ctx,
		"SELECT "+ropeEntryColumns+" FROM rope_entries WHERE id=? AND user_id=? LIMIT 1",
		id, userID))
	if err == sql.ErrNoRows {
		return model.RopeEntry{}, ErrNotFound
	}
	return e, err
}

// Create inserts a rope entry and returns it with the generated id.
func (r *RopeEntryRepo) Create(ctx context.Context, e model.RopeEntry) (model.RopeEntry, error) {
	e.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO rope_entries (id, user_id, date_from, date_to, company, location, tasks, industry, details, supervisor, rope_hours, level) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)",
		e.ID, e.UserID, e.DateFrom, e.DateTo, e.Company, e.Location, e.Tasks,
		e.Industry, e.Details, e.Supervisor, e.RopeHours, e.Level)
	if err != nil {
		return model.RopeEntry{}, err
	}
	return r.GetByIDAndOwner(ctx, e.ID, e.UserID)
}

// Delete removes an owned rope entry.
func (r *RopeEntryRepo) Delete(ctx context.Context, id, userID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM rope_entries WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
