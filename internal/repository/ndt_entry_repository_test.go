package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ndtverified/hours-service/internal/model"
)

func newNDTEntryRepo(t *testing.T) (*NDTEntryRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	return NewNDTEntryRepo(db), mock, func() { db.Close() }
}

func ndtEntryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "entry_date", "method", "location",
		"hours", "company", "supervisor", "created_at", "updated_at",
	})
}

func TestNDTListByUserScopesToOwner(t *testing.T) {
	repo, mock, done := newNDTEntryRepo(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM ndt_entries WHERE user_id=").
		WithArgs("u1").
		WillReturnRows(ndtEntryRows().
			AddRow("e2", "u1", "2026-02-10", "UT", "Site B", 8.0, "AcmeNDT", "R. Boss", now, now).
			AddRow("e1", "u1", "2026-02-09", "MT", "Site A", 4.5, "AcmeNDT", "R. Boss", now, now))

	items, err := repo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByUser() error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(items))
	}
	if items[0].EntryDate != "2026-02-10" || items[0].Hours != 8.0 {
		t.Fatalf("unexpected first entry: %+v", items[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestNDTDeleteForeignEntryNotFound(t *testing.T) {
	repo, mock, done := newNDTEntryRepo(t)
	defer done()

	mock.ExpectExec("DELETE FROM ndt_entries WHERE id=").
		WithArgs("e1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "e1", "intruder"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestNDTUpdateUnchangedValuesStillSucceed(t *testing.T) {
	repo, mock, done := newNDTEntryRepo(t)
	defer done()

	e := model.NDTEntry{
		ID: "e1", UserID: "u1", EntryDate: "2026-02-10",
		Method: "UT", Location: "Site B", Hours: 8, Company: "AcmeNDT", Supervisor: "R. Boss",
	}
	now := time.Now().UTC()

	// MySQL reports zero affected rows when the values are identical;
	// the follow-up read tells that apart from a missing row.
	mock.ExpectExec("UPDATE ndt_entries SET entry_date=").
		WithArgs(e.EntryDate, e.Method, e.Location, e.Hours, e.Company, e.Supervisor, e.ID, e.UserID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .+ FROM ndt_entries WHERE id=").
		WithArgs(e.ID, e.UserID).
		WillReturnRows(ndtEntryRows().
			AddRow(e.ID, e.UserID, e.EntryDate, e.Method, e.Location, e.Hours, e.Company, e.Supervisor, now, now))

	if err := repo.Update(context.Background(), e); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
