package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestEnsureMethodDuplicateIsSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewLookupRepo(db)

	mock.ExpectExec("INSERT INTO methods").
		WithArgs(sqlmock.AnyArg(), "UT").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'UT' for key 'methods.name'"))

	if err := repo.EnsureMethod(context.Background(), "UT"); err != nil {
		t.Fatalf("duplicate insert must be treated as success, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestEnsureCompanyBlankNameIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewLookupRepo(db)

	if err := repo.EnsureCompany(context.Background(), "   "); err != nil {
		t.Fatalf("EnsureCompany() error: %v", err)
	}
	// No INSERT was expected; a blank name never reaches the database.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestListMethodsOrdersByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewLookupRepo(db)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id,name,created_at FROM methods ORDER BY name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow("m1", "MT", now).
			AddRow("m2", "UT", now))

	items, err := repo.ListMethods(context.Background())
	if err != nil {
		t.Fatalf("ListMethods() error: %v", err)
	}
	if len(items) != 2 || items[0].Name != "MT" || items[1].Name != "UT" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
