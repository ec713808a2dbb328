package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"helpdesk/internal/config"
	"helpdesk/internal/db"
)

// AuthMiddleware handles supervisor authentication via sessions.
type AuthMiddleware struct {
	db  *db.DB
	cfg *config.Config
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(database *db.DB, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{db: database, cfg: cfg}
}

// RequireSupervisor ensures a supervisor is logged in, redirecting to /login
// if not. When OIDC is not configured the panel is open and resolutions are
// attributed to the configured default supervisor id.
func (m *AuthMiddleware) RequireSupervisor(c fiber.Ctx) error {
	if !m.cfg.IsOIDCEnabled() {
		return c.Next()
	}

	sess := session.FromContext(c)
	if sess == nil {
		return c.Redirect().To("/login")
	}

	sub, ok := sess.Get("supervisor_sub").(string)
	if !ok || sub == "" {
		return c.Redirect().To("/login")
	}

	supervisor, err := m.db.GetSupervisorBySub(c.Context(), sub)
	if err != nil {
		sess.Destroy()
		return c.Redirect().To("/login")
	}

	c.Locals("supervisor", supervisor)
	return c.Next()
}
