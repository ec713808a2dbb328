package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"helpdesk/internal/models"
)

const supervisorColumns = `id, sub, email, name, created_at, last_login_at`

func scanSupervisor(row pgx.Row) (*models.Supervisor, error) {
	var s models.Supervisor
	err := row.Scan(
		&s.ID,
		&s.Sub,
		&s.Email,
		&s.Name,
		&s.CreatedAt,
		&s.LastLoginAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSupervisorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpsertSupervisor creates or refreshes a supervisor record on OIDC login
// and stamps the login time.
func (d *DB) UpsertSupervisor(ctx context.Context, sub, email, name string) (*models.Supervisor, error) {
	query := `
		INSERT INTO supervisors (sub, email, name, last_login_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (sub) DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name, last_login_at = now()
		RETURNING ` + supervisorColumns

	return scanSupervisor(d.Pool.QueryRow(ctx, query, sub, email, name))
}

// GetSupervisorBySub fetches a supervisor by OIDC subject.
func (d *DB) GetSupervisorBySub(ctx context.Context, sub string) (*models.Supervisor, error) {
	query := `SELECT ` + supervisorColumns + ` FROM supervisors WHERE sub = $1`
	return scanSupervisor(d.Pool.QueryRow(ctx, query, sub))
}
