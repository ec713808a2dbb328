package api

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"helpdesk/internal/agent"
	"helpdesk/internal/db"
	"helpdesk/internal/validation"
)

// maxRequestListLimit caps how many requests a single list call returns.
const maxRequestListLimit = 100

// RequestHandler handles help request operations via JSON API.
type RequestHandler struct {
	db    *db.DB
	agent *agent.Agent
}

// NewRequestHandler creates a new API request handler.
func NewRequestHandler(database *db.DB, a *agent.Agent) *RequestHandler {
	return &RequestHandler{db: database, agent: a}
}

// Pending returns all pending requests, oldest first.
func (h *RequestHandler) Pending(c fiber.Ctx) error {
	requests, err := h.db.GetPendingRequests(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch pending requests")
	}
	return jsonSuccess(c, requests)
}

// List returns requests newest first, capped by the limit query parameter
// (default 100).
func (h *RequestHandler) List(c fiber.Ctx) error {
	limit := maxRequestListLimit
	if raw := c.Query("limit", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return jsonError(c, fiber.StatusBadRequest, "invalid limit")
		}
		if n < limit {
			limit = n
		}
	}

	requests, err := h.db.GetAllRequests(c.Context(), limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch requests")
	}
	return jsonSuccess(c, requests)
}

// Get returns a single request by id.
func (h *RequestHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	request, err := h.db.GetRequestByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrRequestNotFound) {
			return jsonError(c, fiber.StatusNotFound, "request not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch request")
	}
	return jsonSuccess(c, request)
}

// Resolve applies a supervisor's answer to a request. On success the answer
// is memorized in the knowledge base and relayed to the customer.
func (h *RequestHandler) Resolve(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	var body struct {
		Answer       string `json:"answer"`
		SupervisorID string `json:"supervisor_id"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if !validation.ValidateAnswer(body.Answer) {
		return jsonError(c, fiber.StatusBadRequest, "answer is required")
	}

	request, err := h.agent.Resolve(c.Context(), id, body.Answer, body.SupervisorID)
	if err != nil {
		if errors.Is(err, db.ErrRequestNotFound) {
			return jsonError(c, fiber.StatusNotFound, "request not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to resolve request")
	}

	return jsonSuccess(c, fiber.Map{
		"request": request,
		"message": "Request resolved and customer notified",
	})
}
