package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/ndtverified/hours-service/internal/model"
)

// LookupRepo manages the open-vocabulary 'methods' and 'companies'
// tables. Both are global lists, not owner-scoped, ordered by name.
type LookupRepo struct{ DB *sql.DB }

func NewLookupRepo(db *sql.DB) *LookupRepo { return &LookupRepo{DB: db} }

// ListMethods returns the known NDT methods ordered by name.
func (r *LookupRepo) ListMethods(ctx context.Context) ([]model.Method, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,created_at FROM methods ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Method, 0)
	for rows.Next() {
		var m model.Method
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListCompanies returns the known companies ordered by name.
func (r *LookupRepo) ListCompanies(ctx context.Context) ([]model.Company, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,created_at FROM companies ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Company, 0)
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// EnsureMethod inserts a method name if absent. Losing the race to a
// concurrent insert of the same name hits the unique key and is treated
// as success; the vocabulary only ever grows.
func (r *LookupRepo) EnsureMethod(ctx context.Context, name string) error {
	return r.ensure(ctx, "methods", name)
}

// EnsureCompany inserts a company name if absent, same semantics as
// EnsureMethod.
func (r *LookupRepo) EnsureCompany(ctx context.Context, name string) error {
	return r.ensure(ctx, "companies", name)
}

func (r *LookupRepo) ensure(ctx context.Context, table, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO "+table+" (id, name) VALUES (?,?)",
		uuid.NewString(), name)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return nil // already present
	}
	return err
}
