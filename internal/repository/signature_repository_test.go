package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ndtverified/hours-service/internal/model"
)

func newSignatureRepo(t *testing.T) (*SignatureRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	return NewSignatureRepo(db), mock, func() { db.Close() }
}

func TestConfirmNDTByTokenMovesPending(t *testing.T) {
	repo, mock, done := newSignatureRepo(t)
	defer done()

	when := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE ndt_signatures SET status=").
		WithArgs(model.SignatureStatusConfirmed, when, "tok-1", model.SignatureStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ConfirmNDTByToken(context.Background(), "tok-1", when); err != nil {
		t.Fatalf("ConfirmNDTByToken() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestConfirmNDTByTokenReplayIsConflict(t *testing.T) {
	repo, mock, done := newSignatureRepo(t)
	defer done()

	when := time.Now().UTC()
	// The guarded UPDATE matches nothing because the row left Pending.
	mock.ExpectExec("UPDATE ndt_signatures SET status=").
		WithArgs(model.SignatureStatusConfirmed, when, "tok-1", model.SignatureStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status FROM ndt_signatures WHERE token=").
		WithArgs("tok-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.SignatureStatusConfirmed))

	if err := repo.ConfirmNDTByToken(context.Background(), "tok-1", when); err != ErrAlreadyConfirmed {
		t.Fatalf("expected ErrAlreadyConfirmed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestConfirmRopeByTokenUnknownToken(t *testing.T) {
	repo, mock, done := newSignatureRepo(t)
	defer done()

	when := time.Now().UTC()
	mock.ExpectExec("UPDATE rope_signatures SET status=").
		WithArgs(model.SignatureStatusConfirmed, when, "nope", model.SignatureStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status FROM rope_signatures WHERE token=").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	if err := repo.ConfirmRopeByToken(context.Background(), "nope", when); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestGetNDTByTokenNotFound(t *testing.T) {
	repo, mock, done := newSignatureRepo(t)
	defer done()

	mock.ExpectQuery("SELECT .+ FROM ndt_signatures WHERE token=").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetNDTByToken(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestCreateRopeInsertsPendingAndRereads(t *testing.T) {
	repo, mock, done := newSignatureRepo(t)
	defer done()

	created := time.Now().UTC()
	mock.ExpectExec("INSERT INTO rope_signatures").
		WithArgs(sqlmock.AnyArg(), "entry-1", "tech-1", "Jane Doe",
			"Sam Supervisor", "sam@example.com", "tok-9", model.SignatureStatusPending).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT .+ FROM rope_signatures WHERE token=").
		WithArgs("tok-9").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "entry_id", "technician_id", "technician_name",
			"supervisor_name", "supervisor_email", "token", "status",
			"verification_date", "timestamp_hash", "created_at",
		}).AddRow("sig-1", "entry-1", "tech-1", "Jane Doe",
			"Sam Supervisor", "sam@example.com", "tok-9", model.SignatureStatusPending,
			nil, nil, created))

	got, err := repo.CreateRope(context.Background(), model.RopeSignature{
		EntryID:         "entry-1",
		TechnicianID:    "tech-1",
		TechnicianName:  "Jane Doe",
		SupervisorName:  "Sam Supervisor",
		SupervisorEmail: "sam@example.com",
		Token:           "tok-9",
		// Status left blank on purpose: the repo forces Pending.
	})
	if err != nil {
		t.Fatalf("CreateRope() error: %v", err)
	}
	if got.Status != model.SignatureStatusPending {
		t.Fatalf("expected status %q, got %q", model.SignatureStatusPending, got.Status)
	}
	if got.VerificationDate != nil {
		t.Fatalf("new request must have no verification date, got %v", got.VerificationDate)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
