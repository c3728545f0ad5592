package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newTokenRepo(t *testing.T) (*TokenRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	return NewTokenRepo(db), mock, func() { db.Close() }
}

func TestValidateRefreshRejectsRevoked(t *testing.T) {
	repo, mock, done := newTokenRepo(t)
	defer done()

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WithArgs("hash-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow("u1", time.Now().UTC().Add(time.Hour), time.Now().UTC()))

	if _, err := repo.ValidateRefresh(context.Background(), "hash-1"); err != sql.ErrNoRows {
		t.Fatalf("revoked token must not validate, got err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestValidateRefreshRejectsExpired(t *testing.T) {
	repo, mock, done := newTokenRepo(t)
	defer done()

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WithArgs("hash-2").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow("u1", time.Now().UTC().Add(-time.Minute), nil))

	if _, err := repo.ValidateRefresh(context.Background(), "hash-2"); err != sql.ErrNoRows {
		t.Fatalf("expired token must not validate, got err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestConsumeResetIsSingleUse(t *testing.T) {
	repo, mock, done := newTokenRepo(t)
	defer done()

	// The row exists but the guarded UPDATE matches nothing: the token
	// was already spent (or expired in the meantime).
	mock.ExpectQuery("SELECT user_id FROM password_resets WHERE token_hash=").
		WithArgs("hash-3").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u1"))
	mock.ExpectExec("UPDATE password_resets SET used_at=").
		WithArgs("hash-3").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := repo.ConsumeReset(context.Background(), "hash-3"); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestConsumeResetUnknownToken(t *testing.T) {
	repo, mock, done := newTokenRepo(t)
	defer done()

	mock.ExpectQuery("SELECT user_id FROM password_resets WHERE token_hash=").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.ConsumeReset(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestConsumeResetHappyPath(t *testing.T) {
	repo, mock, done := newTokenRepo(t)
	defer done()

	mock.ExpectQuery("SELECT user_id FROM password_resets WHERE token_hash=").
		WithArgs("hash-4").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u7"))
	mock.ExpectExec("UPDATE password_resets SET used_at=").
		WithArgs("hash-4").
		WillReturnResult(sqlmock.NewResult(0, 1))

	uid, err := repo.ConsumeReset(context.Background(), "hash-4")
	if err != nil {
		t.Fatalf("ConsumeReset() error: %v", err)
	}
	if uid != "u7" {
		t.Fatalf("expected user u7, got %q", uid)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
