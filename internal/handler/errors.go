package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hvmanh/ttms-web/internal/backend"
	"github.com/hvmanh/ttms-web/internal/middleware"
	"github.com/hvmanh/ttms-web/internal/session"
)

// NewErrorHandler builds the application-level error handler. Its one special
// case is session expiry reported by the backend client: the session is torn
// down and the browser is sent to the login page with a real navigation, so
// every page rebuilds from a clean state. Login failures never take this path;
// the login handler renders them inline.
func NewErrorHandler(store *session.Store, cookieName string, logger zerolog.Logger) fiber.ErrorHandler {
	errLogger := logger.With().Str("component", "error_handler").Logger()

	return func(c *fiber.Ctx, err error) error {
		if backend.IsSessionExpired(err) {
			if id := middleware.SessionIDFromCtx(c); id != "" {
				if destroyErr := store.Destroy(c.Context(), id); destroyErr != nil {
					errLogger.Warn().Err(destroyErr).Msg("failed to destroy expired session")
				}
			}
			clearSessionCookie(c, cookieName)
			errLogger.Info().Str("path", c.Path()).Msg("session rejected by backend, redirecting to login")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).SendString(fiberErr.Message)
		}

		errLogger.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		return c.Status(fiber.StatusInternalServerError).SendString("Đã có lỗi xảy ra")
	}
}
