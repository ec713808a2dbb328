package api

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"helpdesk/internal/db"
)

// HealthHandler reports service health via JSON API.
type HealthHandler struct {
	db *db.DB
}

// NewHealthHandler creates a new API health handler.
func NewHealthHandler(database *db.DB) *HealthHandler {
	return &HealthHandler{db: database}
}

// Check reports whether the service and its database are reachable.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	if err := h.db.Pool.Ping(c.Context()); err != nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "database unreachable")
	}

	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
