package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a caller, keyed by phone number.
// Customers are created on first contact and never deleted.
type Customer struct {
	ID              uuid.UUID  `json:"id"`
	Phone           string     `json:"phone"`
	Name            string     `json:"name"`
	CreatedAt       time.Time  `json:"created_at"`
	LastContactedAt *time.Time `json:"last_contacted_at"`
}
