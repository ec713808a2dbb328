package models

import (
	"time"

	"github.com/google/uuid"
)

// Supervisor is a human operator of the escalation panel, provisioned on
// first OIDC login.
type Supervisor struct {
	ID          uuid.UUID  `json:"id"`
	Sub         string     `json:"sub"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}
