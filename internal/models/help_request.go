package models

import (
	"time"

	"github.com/google/uuid"
)

// Request status values. Transitions only move forward: a pending request
// becomes resolved (supervisor answered) or unresolved (timed out).
const (
	StatusPending    = "pending"
	StatusResolved   = "resolved"
	StatusUnresolved = "unresolved"
)

// HelpRequest is one escalation event: a question the responder could not
// answer, waiting on (or answered by) a human supervisor.
type HelpRequest struct {
	ID               uuid.UUID  `json:"id"`
	CustomerID       uuid.UUID  `json:"customer_id"`
	CustomerPhone    string     `json:"customer_phone"`
	CustomerName     string     `json:"customer_name"`
	Question         string     `json:"question"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	ResolvedAt       *time.Time `json:"resolved_at"`
	SupervisorAnswer *string    `json:"supervisor_answer"`
	SupervisorID     *string    `json:"supervisor_id"`
	TimeoutAt        time.Time  `json:"timeout_at"`
}

// IsPending reports whether the request is still waiting on a supervisor.
func (r *HelpRequest) IsPending() bool {
	return r.Status == StatusPending
}

// Overdue reports whether the timeout deadline has strictly passed.
func (r *HelpRequest) Overdue(now time.Time) bool {
	return now.After(r.TimeoutAt)
}
