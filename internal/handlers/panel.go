package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"helpdesk/internal/agent"
	"helpdesk/internal/db"
	"helpdesk/internal/models"
	"helpdesk/internal/validation"
)

// PanelHandler renders the supervisor panel.
type PanelHandler struct {
	db    *db.DB
	agent *agent.Agent
}

// NewPanelHandler creates a new panel handler.
func NewPanelHandler(database *db.DB, a *agent.Agent) *PanelHandler {
	return &PanelHandler{db: database, agent: a}
}

// supervisorID returns the attribution id for the logged-in supervisor, or
// empty when the panel runs without OIDC (the agent falls back to the
// configured default).
func supervisorID(c fiber.Ctx) string {
	if s, ok := c.Locals("supervisor").(*models.Supervisor); ok {
		return s.ID.String()
	}
	return ""
}

// Dashboard renders the pending queue and recent request history.
func (h *PanelHandler) Dashboard(c fiber.Ctx) error {
	pending, err := h.db.GetPendingRequests(c.Context())
	if err != nil {
		return err
	}

	recent, err := h.db.GetAllRequests(c.Context(), 20)
	if err != nil {
		return err
	}

	return c.Render("dashboard", fiber.Map{
		"Title":      "Dashboard",
		"Pending":    pending,
		"Recent":     recent,
		"Supervisor": c.Locals("supervisor"),
	})
}

// ShowRequest renders one request with its resolve form.
func (h *PanelHandler) ShowRequest(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
	}

	request, err := h.db.GetRequestByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrRequestNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "request not found")
		}
		return err
	}

	return c.Render("request", fiber.Map{
		"Title":      "Request",
		"Request":    request,
		"Supervisor": c.Locals("supervisor"),
	})
}

// ResolveRequest handles the resolve form submission.
func (h *PanelHandler) ResolveRequest(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
	}

	answer := c.FormValue("answer")
	if !validation.ValidateAnswer(answer) {
		return fiber.NewError(fiber.StatusBadRequest, "answer is required")
	}

	if _, err := h.agent.Resolve(c.Context(), id, answer, supervisorID(c)); err != nil {
		if errors.Is(err, db.ErrRequestNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "request not found")
		}
		return err
	}

	return c.Redirect().To("/")
}

// Knowledge renders the learned knowledge base.
func (h *PanelHandler) Knowledge(c fiber.Ctx) error {
	entries, err := h.db.GetAllKnowledgeEntries(c.Context())
	if err != nil {
		return err
	}

	return c.Render("knowledge", fiber.Map{
		"Title":      "Knowledge Base",
		"Entries":    entries,
		"Supervisor": c.Locals("supervisor"),
	})
}

// Login renders the login page.
func (h *PanelHandler) Login(c fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Title": "Login",
	})
}
