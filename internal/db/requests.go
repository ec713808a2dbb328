package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"helpdesk/internal/models"
)

const requestColumns = `id, customer_id, customer_phone, customer_name, question,
	status, created_at, resolved_at, supervisor_answer, supervisor_id, timeout_at`

// scanRequest scans a row into a HelpRequest struct.
func scanRequest(row pgx.Row) (*models.HelpRequest, error) {
	var r models.HelpRequest
	err := row.Scan(
		&r.ID,
		&r.CustomerID,
		&r.CustomerPhone,
		&r.CustomerName,
		&r.Question,
		&r.Status,
		&r.CreatedAt,
		&r.ResolvedAt,
		&r.SupervisorAnswer,
		&r.SupervisorID,
		&r.TimeoutAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// scanRequests scans multiple rows into a slice of HelpRequests.
func scanRequests(rows pgx.Rows) ([]models.HelpRequest, error) {
	defer rows.Close()

	var requests []models.HelpRequest
	for rows.Next() {
		var r models.HelpRequest
		if err := rows.Scan(
			&r.ID,
			&r.CustomerID,
			&r.CustomerPhone,
			&r.CustomerName,
			&r.Question,
			&r.Status,
			&r.CreatedAt,
			&r.ResolvedAt,
			&r.SupervisorAnswer,
			&r.SupervisorID,
			&r.TimeoutAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}

	return requests, rows.Err()
}

// CreateRequest creates a pending help request for the customer's question.
// The timeout deadline is exactly timeout after the creation time.
func (d *DB) CreateRequest(ctx context.Context, customer *models.Customer, question string, timeout time.Duration) (*models.HelpRequest, error) {
	createdAt := time.Now().UTC()
	timeoutAt := createdAt.Add(timeout)

	query := `
		INSERT INTO help_requests
			(customer_id, customer_phone, customer_name, question, status, created_at, timeout_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + requestColumns

	return scanRequest(d.Pool.QueryRow(ctx, query,
		customer.ID,
		customer.Phone,
		customer.Name,
		question,
		models.StatusPending,
		createdAt,
		timeoutAt,
	))
}

// GetRequestByID fetches a help request by id.
func (d *DB) GetRequestByID(ctx context.Context, id uuid.UUID) (*models.HelpRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM help_requests WHERE id = $1`
	return scanRequest(d.Pool.QueryRow(ctx, query, id))
}

// GetPendingRequests returns all pending requests, oldest first.
func (d *DB) GetPendingRequests(ctx context.Context) ([]models.HelpRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM help_requests WHERE status = $1 ORDER BY created_at ASC`
	rows, err := d.Pool.Query(ctx, query, models.StatusPending)
	if err != nil {
		return nil, err
	}
	return scanRequests(rows)
}

// GetAllRequests returns requests newest first, capped at limit.
func (d *DB) GetAllRequests(ctx context.Context, limit int) ([]models.HelpRequest, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + requestColumns + ` FROM help_requests ORDER BY created_at DESC LIMIT $1`
	rows, err := d.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return scanRequests(rows)
}

// ResolveRequest stamps the supervisor's answer on a request and marks it
// resolved. The write is unconditional on prior status: resolving an already
// terminal request overwrites the earlier resolution.
// Returns ErrRequestNotFound when the id is absent.
func (d *DB) ResolveRequest(ctx context.Context, id uuid.UUID, answer, supervisorID string) (*models.HelpRequest, error) {
	query := `
		UPDATE help_requests
		SET status = $2, resolved_at = now(), supervisor_answer = $3, supervisor_id = $4
		WHERE id = $1
		RETURNING ` + requestColumns

	return scanRequest(d.Pool.QueryRow(ctx, query, id, models.StatusResolved, answer, supervisorID))
}

// MarkRequestUnresolved marks a request unresolved and stamps the resolution
// time. Used by the timeout sweeper; no supervisor answer is recorded.
// Returns ErrRequestNotFound when the id is absent.
func (d *DB) MarkRequestUnresolved(ctx context.Context, id uuid.UUID) (*models.HelpRequest, error) {
	query := `
		UPDATE help_requests
		SET status = $2, resolved_at = now()
		WHERE id = $1
		RETURNING ` + requestColumns

	return scanRequest(d.Pool.QueryRow(ctx, query, id, models.StatusUnresolved))
}

// CountRequestsByStatus returns the number of requests per status. Used by
// the metrics collector.
func (d *DB) CountRequestsByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := d.Pool.Query(ctx, `SELECT status, count(*) FROM help_requests GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
