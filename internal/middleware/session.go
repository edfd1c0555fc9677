package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hvmanh/ttms-web/internal/session"
)

const (
	localsSession   = "session"
	localsSessionID = "session_id"
)

// RequireSession gates the authenticated page tree. It resolves the session
// cookie against the store on every navigation and redirects to the login
// page when no live session exists. It performs no backend round-trip: token
// validity is only discovered reactively, by the first rejected call.
func RequireSession(store *session.Store, cookieName string, logger zerolog.Logger) fiber.Handler {
	gateLogger := logger.With().Str("component", "session_gate").Logger()

	return func(c *fiber.Ctx) error {
		id := c.Cookies(cookieName)

		sess, ok, err := store.Get(c.Context(), id)
		if err != nil {
			gateLogger.Error().Err(err).Msg("session lookup failed")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		if !ok {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		c.Locals(localsSession, sess)
		c.Locals(localsSessionID, id)
		return c.Next()
	}
}

// SessionFromCtx returns the session bound to the request by RequireSession.
func SessionFromCtx(c *fiber.Ctx) (session.Session, bool) {
	sess, ok := c.Locals(localsSession).(session.Session)
	return sess, ok
}

// SessionIDFromCtx returns the session id bound to the request.
func SessionIDFromCtx(c *fiber.Ctx) string {
	if id, ok := c.Locals(localsSessionID).(string); ok {
		return id
	}
	return ""
}
