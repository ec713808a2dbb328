package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"helpdesk/internal/models"
)

const customerColumns = `id, phone, name, created_at, last_contacted_at`

// scanCustomer scans a row into a Customer struct.
func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(
		&c.ID,
		&c.Phone,
		&c.Name,
		&c.CreatedAt,
		&c.LastContactedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateOrGetCustomer returns the customer with the given phone, creating it
// on first contact. Either way the last-contacted time is bumped to now and
// the display name refreshed to what the caller gave.
func (d *DB) CreateOrGetCustomer(ctx context.Context, phone, name string) (*models.Customer, error) {
	query := `
		INSERT INTO customers (phone, name, last_contacted_at)
		VALUES ($1, $2, now())
		ON CONFLICT (phone) DO UPDATE SET name = EXCLUDED.name, last_contacted_at = now()
		RETURNING ` + customerColumns

	return scanCustomer(d.Pool.QueryRow(ctx, query, phone, name))
}

// GetCustomerByID fetches a customer by id.
func (d *DB) GetCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return scanCustomer(d.Pool.QueryRow(ctx, query, id))
}

// GetCustomerByPhone fetches a customer by phone number.
func (d *DB) GetCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1`
	return scanCustomer(d.Pool.QueryRow(ctx, query, phone))
}

// TouchCustomer updates the customer's last-contacted time, keyed by phone.
// Called when a follow-up message is delivered.
func (d *DB) TouchCustomer(ctx context.Context, phone string) error {
	tag, err := d.Pool.Exec(ctx, `UPDATE customers SET last_contacted_at = now() WHERE phone = $1`, phone)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
