package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ndtverified/hours-service/internal/model"
)

// SignatureRepo persists supervisor sign-off requests for both entry
// variants. Status transitions are enforced in SQL: the confirm UPDATE
// only matches Pending rows, so the Pending -> Confirmed move is
// one-way regardless of how many confirmation clicks arrive.
type SignatureRepo struct{ DB *sql.DB }

func NewSignatureRepo(db *sql.DB) *SignatureRepo { return &SignatureRepo{DB: db} }

const ndtSignatureColumns = "id,entry_id,technician_id,technician_name,hours,method,supervisor_name,supervisor_email,company,token,status,auto_signature,verification_date,timestamp_hash,created_at,updated_at"

func scanNDTSignature(row interface{ Scan(...any) error }) (model.NDTSignature, error) {
	var (
		s        model.NDTSignature
		verified sql.NullTime
	)
	err := row.Scan(&s.ID, &s.EntryID, &s.TechnicianID, &s.TechnicianName,
		&s.Hours, &s.Method, &s.SupervisorName, &s.SupervisorEmail, &s.Company,
		&s.Token, &s.Status, &s.AutoSignature, &verified, &s.TimestampHash,
		&s.CreatedAt, &s.UpdatedAt)
	if verified.Valid {
		t := verified.Time
		s.VerificationDate = &t
	}
	return s, err
}

const ropeSignatureColumns = "id,entry_id,technician_id,technician_name,supervisor_name,supervisor_email,token,status,verification_date,timestamp_hash,created_at"

func scanRopeSignature(row interface{ Scan(...any) error }) (model.RopeSignature, error) {
	var (
		s        model.RopeSignature
		verified sql.NullTime
	)
	err := row.Scan(&s.ID, &s.EntryID, &s.TechnicianID, &s.TechnicianName,
		&s.SupervisorName, &s.SupervisorEmail, &s.Token, &s.Status,
		&verified, &s.TimestampHash, &s.CreatedAt)
	if verified.Valid {
		t := verified.Time
		s.VerificationDate = &t
	}
	return s, err
}

// CreateNDT inserts a Pending NDT signature request.
func (r *SignatureRepo) CreateNDT(ctx context.Context, s model.NDTSignature) (model.NDTSignature, error) {
	s.ID = uuid.NewString()
	s.Status = model.SignatureStatusPending
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO ndt_signatures (id, entry_id, technician_id, technician_name, hours, method, supervisor_name, supervisor_email, company, token, status, auto_signature) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)",
		s.ID, s.EntryID, s.TechnicianID, s.TechnicianName, s.Hours, s.Method,
		s.SupervisorName, s.SupervisorEmail, s.Company, s.Token, s.Status, s.AutoSignature)
	if err != nil {
		return model.NDTSignature{}, err
	}
	return r.GetNDTByToken(ctx, s.Token)
}

// CreateRope inserts a Pending rope signature request.
func (r *SignatureRepo) CreateRope(ctx context.Context, s model.RopeSignature) (model.RopeSignature, error) {
	s.ID = uuid.NewString()
	s.Status = model.SignatureStatusPending
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO rope_signatures (id, entry_id, technician_id, technician_name, supervisor_name, supervisor_email, token, status) VALUES (?,?,?,?,?,?,?,?)",
		s.ID, s.EntryID, s.TechnicianID, s.TechnicianName,
		s.SupervisorName, s.SupervisorEmail, s.Token, s.Status)
	if err != nil {
		return model.RopeSignature{}, err
	}
	return r.GetRopeByToken(ctx, s.Token)
}

// ListNDTByTechnician returns the technician's NDT requests newest first.
func (r *SignatureRepo) ListNDTByTechnician(ctx context.Context, technicianID string) ([]model.NDTSignature, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+ndtSignatureColumns+" FROM ndt_signatures WHERE technician_id=? ORDER BY created_at DESC",
		technicianID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.NDTSignature, 0)
	for rows.Next() {
		s, err := scanNDTSignature(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListRopeByTechnician returns the technician's rope requests newest first.
func (r *SignatureRepo) ListRopeByTechnician(ctx context.Context, technicianID string) ([]model.RopeSignature, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+ropeSignatureColumns+" FROM rope_signatures WHERE technician_id=? ORDER BY created_at DESC",
		technicianID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.RopeSignature, 0)
	for rows.Next() {
		s, err := scanRopeSignature(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// StatusesByTechnician fetches only the status column of the
// technician's NDT requests, the projection the dashboard counts over.
func (r *SignatureRepo) StatusesByTechnician(ctx context.Context, technicianID string) ([]model.SignatureStatusRef, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT status FROM ndt_signatures WHERE technician_id=?", technicianID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.SignatureStatusRef, 0)
	for rows.Next() {
		var s model.SignatureStatusRef
		if err := rows.Scan(&s.Status); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetNDTByToken loads a request for the verification page.
func (r *SignatureRepo) GetNDTByToken(ctx context.Context, token string) (model.NDTSignature, error) {
	s, err := scanNDTSignature(r.DB.QueryRowContext(ctx,
		"SELECT "+ndtSignatureColumns+" FROM ndt_signatures WHERE token=? LIMIT 1", token))
	if err == sql.ErrNoRows {
		return model.NDTSignature{}, ErrNotFound
	}
	return s, err
}

// GetRopeByToken loads a rope request for the verification page.
func (r *SignatureRepo) GetRopeByToken(ctx context.Context, token string) (model.RopeSignature, error) {
	s, err := scanRopeSignature(r.DB.QueryRowContext(ctx,
		"SELECT "+ropeSignatureColumns+" FROM rope_signatures WHERE token=? LIMIT 1", token))
	if err == sql.ErrNoRows {
		return model.RopeSignature{}, ErrNotFound
	}
	return s, err
}

// ConfirmNDTByToken moves a Pending NDT request to Confirmed.
func (r *SignatureRepo) ConfirmNDTByToken(ctx context.Context, token string, when time.Time) error {
	return r.confirm(ctx, "ndt_signatures", token, when, true)
}

// ConfirmRopeByToken moves a Pending rope request to Confirmed.
func (r *SignatureRepo) ConfirmRopeByToken(ctx context.Context, token string, when time.Time) error {
	return r.confirm(ctx, "rope_signatures", token, when, false)
}

func (r *SignatureRepo) confirm(ctx context.Context, table, token string, when time.Time, touchUpdatedAt bool) error {
	query := "UPDATE " + table + " SET status=?, verification_date=? WHERE token=? AND status=?"
	if touchUpdatedAt {
		query = "UPDATE " + table + " SET status=?, verification_date=?, updated_at=NOW() WHERE token=? AND status=?"
	}
	res, err := r.DB.ExecContext(ctx, query,
		model.SignatureStatusConfirmed, when, token, model.SignatureStatusPending)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish an unknown token from a replayed confirmation.
		var status string
		gerr := r.DB.QueryRowContext(ctx,
			"SELECT status FROM "+table+" WHERE token=? LIMIT 1", token).Scan(&status)
		if gerr == sql.ErrNoRows {
			return ErrNotFound
		}
		if gerr != nil {
			return gerr
		}
		return ErrAlreadyConfirmed
	}
	return nil
}
