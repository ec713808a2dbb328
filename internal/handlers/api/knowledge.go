package api

import (
	"github.com/gofiber/fiber/v3"

	"helpdesk/internal/db"
)

// KnowledgeHandler exposes the learned knowledge base via JSON API.
type KnowledgeHandler struct {
	db *db.DB
}

// NewKnowledgeHandler creates a new API knowledge handler.
func NewKnowledgeHandler(database *db.DB) *KnowledgeHandler {
	return &KnowledgeHandler{db: database}
}

// List returns all knowledge entries, newest first.
func (h *KnowledgeHandler) List(c fiber.Ctx) error {
	entries, err := h.db.GetAllKnowledgeEntries(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch knowledge base")
	}
	return jsonSuccess(c, entries)
}
