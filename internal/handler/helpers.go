package handler

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/hvmanh/ttms-web/internal/backend"
	"github.com/hvmanh/ttms-web/internal/middleware"
	"github.com/hvmanh/ttms-web/internal/session"
)

// textPolicy strips all markup from user-entered free text before it is sent
// to the backend or echoed into a page.
var textPolicy = bluemonday.StrictPolicy()

func sanitizeText(input string) string {
	return strings.TrimSpace(textPolicy.Sanitize(input))
}

// apiContext binds the viewer's bearer token to the request's context so the
// backend client attaches it, and ties the call's lifetime to the page
// request: a closed connection cancels outstanding backend calls.
func apiContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if sess, ok := middleware.SessionFromCtx(c); ok {
		ctx = backend.WithToken(ctx, sess.Token)
	}
	return ctx
}

// pageData assembles the fields every layout render expects: title, active
// menu entry, viewer session and the pending flash banner, if any.
func pageData(c *fiber.Ctx, store *session.Store, title, active string) fiber.Map {
	data := fiber.Map{
		"Title":     title,
		"Active":    active,
		"StatsOpen": strings.HasPrefix(active, "thongke"),
	}

	if sess, ok := middleware.SessionFromCtx(c); ok {
		data["Session"] = sess
		data["IsAdmin"] = sess.Role == backend.RoleAdmin
		data["IsStaff"] = sess.Role == backend.RoleStaff
	}

	if store != nil {
		if id := middleware.SessionIDFromCtx(c); id != "" {
			if flash, ok := store.PopFlash(c.Context(), id); ok {
				data["Flash"] = flash
			}
		}
	}

	return data
}

// redirectWithFlash stores a one-shot banner and sends the browser on.
func redirectWithFlash(c *fiber.Ctx, store *session.Store, location string, flash session.Flash) error {
	if id := middleware.SessionIDFromCtx(c); id != "" {
		_ = store.PutFlash(c.Context(), id, flash)
	}
	return c.Redirect(location, fiber.StatusSeeOther)
}

func successFlash(message string) session.Flash {
	return session.Flash{Message: message, Kind: "success"}
}

func errorFlash(message string) session.Flash {
	return session.Flash{Message: message, Kind: "error"}
}

func clearSessionCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if correlation := middleware.GetCorrelationID(c); correlation != "" {
		logger = base.With().Str("correlation_id", correlation).Logger()
	}
	return &logger
}
