package models

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeEntry is a learned question/answer pair. Entries are created when
// a supervisor resolves a help request (or seeded directly) and are never
// deleted; usage stats are updated in place on every lookup hit.
type KnowledgeEntry struct {
	ID              uuid.UUID  `json:"id"`
	Question        string     `json:"question"`
	Answer          string     `json:"answer"`
	SourceRequestID *uuid.UUID `json:"source_request_id"`
	CreatedAt       time.Time  `json:"created_at"`
	LastUsedAt      *time.Time `json:"last_used_at"`
	UsageCount      int64      `json:"usage_count"`
}
