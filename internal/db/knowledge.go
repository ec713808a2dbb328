package db

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"helpdesk/internal/models"
)

const entryColumns = `id, question, answer, source_request_id, created_at, last_used_at, usage_count`

// scanEntry scans a row into a KnowledgeEntry struct.
func scanEntry(row pgx.Row) (*models.KnowledgeEntry, error) {
	var e models.KnowledgeEntry
	err := row.Scan(
		&e.ID,
		&e.Question,
		&e.Answer,
		&e.SourceRequestID,
		&e.CreatedAt,
		&e.LastUsedAt,
		&e.UsageCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// scanEntries scans multiple rows into a slice of KnowledgeEntries.
func scanEntries(rows pgx.Rows) ([]models.KnowledgeEntry, error) {
	defer rows.Close()

	var entries []models.KnowledgeEntry
	for rows.Next() {
		var e models.KnowledgeEntry
		if err := rows.Scan(
			&e.ID,
			&e.Question,
			&e.Answer,
			&e.SourceRequestID,
			&e.CreatedAt,
			&e.LastUsedAt,
			&e.UsageCount,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// AddKnowledgeEntry stores a learned question/answer pair, optionally tagged
// with the help request it came from. Usage count starts at zero.
func (d *DB) AddKnowledgeEntry(ctx context.Context, question, answer string, sourceRequestID *uuid.UUID) (*models.KnowledgeEntry, error) {
	query := `
		INSERT INTO knowledge_base (question, answer, source_request_id)
		VALUES ($1, $2, $3)
		RETURNING ` + entryColumns

	return scanEntry(d.Pool.QueryRow(ctx, query, question, answer, sourceRequestID))
}

// GetAllKnowledgeEntries returns all entries, newest first.
func (d *DB) GetAllKnowledgeEntries(ctx context.Context) ([]models.KnowledgeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM knowledge_base ORDER BY created_at DESC`
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// FindAnswer scans the knowledge base in storage order and returns the first
// entry whose question overlaps the query enough (see entryMatches). A hit
// increments the entry's usage count and stamps its last-used time. Returns
// ErrEntryNotFound when nothing matches.
func (d *DB) FindAnswer(ctx context.Context, question string) (*models.KnowledgeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM knowledge_base ORDER BY created_at ASC`
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if entryMatches(e.Question, question) {
			return d.IncrementUsage(ctx, e.ID)
		}
	}

	return nil, ErrEntryNotFound
}

// IncrementUsage bumps an entry's usage count and stamps its last-used time,
// returning the updated entry.
func (d *DB) IncrementUsage(ctx context.Context, id uuid.UUID) (*models.KnowledgeEntry, error) {
	query := `
		UPDATE knowledge_base
		SET usage_count = usage_count + 1, last_used_at = now()
		WHERE id = $1
		RETURNING ` + entryColumns

	return scanEntry(d.Pool.QueryRow(ctx, query, id))
}

// entryMatches reports whether a stored question and a query overlap enough
// to count as a match. Both are lowercased, trimmed, and split on whitespace;
// an entry token is covered when it contains, or is contained by, some query
// token. The entry matches when at least half of its tokens are covered,
// capped at two, so long stored questions still only need two overlapping
// tokens.
func entryMatches(entryQuestion, query string) bool {
	entryTokens := tokenize(entryQuestion)
	queryTokens := tokenize(query)
	if len(entryTokens) == 0 || len(queryTokens) == 0 {
		return false
	}

	covered := 0
	for _, w := range entryTokens {
		for _, qw := range queryTokens {
			if strings.Contains(w, qw) || strings.Contains(qw, w) {
				covered++
				break
			}
		}
	}

	threshold := (len(entryTokens) + 1) / 2
	if threshold > 2 {
		threshold = 2
	}
	return covered >= threshold
}

// tokenize lowercases, trims, and splits a question into whitespace tokens.
func tokenize(s string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(s)))
}
