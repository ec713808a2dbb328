package db

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"helpdesk/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedDevKnowledge inserts a few knowledge entries for development. Skips
// questions that are already present.
func (d *DB) SeedDevKnowledge(ctx context.Context) error {
	entries := []struct {
		question string
		answer   string
	}{
		{"Do you offer gift cards?", "Yes, gift cards are available in any amount at the front desk."},
		{"Is parking available nearby?", "Free parking is available in the lot behind the building."},
		{"Do you color gray hair?", "Yes, we offer full gray coverage with our coloring services."},
	}

	query := `
		INSERT INTO knowledge_base (question, answer)
		SELECT $1, $2
		WHERE NOT EXISTS (SELECT 1 FROM knowledge_base WHERE question = $1)
	`

	for _, e := range entries {
		if _, err := d.Pool.Exec(ctx, query, e.question, e.answer); err != nil {
			return fmt.Errorf("failed to seed knowledge entry %q: %w", e.question, err)
		}
	}

	return nil
}
