package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"helpdesk/internal/agent"
	"helpdesk/internal/validation"
)

// CallHandler simulates inbound customer calls via JSON API.
type CallHandler struct {
	agent *agent.Agent
}

// NewCallHandler creates a new API call handler.
func NewCallHandler(a *agent.Agent) *CallHandler {
	return &CallHandler{agent: a}
}

// Simulate handles an inbound call: the caller's question is either answered
// immediately or escalated to a supervisor, returning an escalation receipt.
func (h *CallHandler) Simulate(c fiber.Ctx) error {
	var body struct {
		Phone    string `json:"phone"`
		Name     string `json:"name"`
		Question string `json:"question"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	body.Phone = validation.NormalizePhone(body.Phone)

	if body.Phone == "" || body.Name == "" || body.Question == "" {
		return jsonError(c, fiber.StatusBadRequest, "phone, name, and question are required")
	}
	if !validation.ValidatePhone(body.Phone) {
		return jsonError(c, fiber.StatusBadRequest, "invalid phone number")
	}
	if !validation.ValidateName(body.Name) {
		return jsonError(c, fiber.StatusBadRequest, "invalid name")
	}
	if !validation.ValidateQuestion(body.Question) {
		return jsonError(c, fiber.StatusBadRequest, "invalid question")
	}

	result, err := h.agent.HandleCall(c.Context(), body.Phone, body.Name, body.Question)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to process call")
	}

	if result.RespondedBy == agent.SourceEscalated {
		return jsonSuccess(c, fiber.Map{
			"responded_by": result.RespondedBy,
			"message":      "Checking with supervisor...",
			"request_id":   result.Request.ID,
			"customer":     result.Customer,
		})
	}

	return jsonSuccess(c, fiber.Map{
		"responded_by": result.RespondedBy,
		"answer":       result.Answer,
		"customer":     result.Customer,
	})
}
