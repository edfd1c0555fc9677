package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hvmanh/ttms-web/internal/backend"
	"github.com/hvmanh/ttms-web/internal/session"
)

// DashboardHandler renders the landing page both roles share.
type DashboardHandler struct {
	api    *backend.Client
	store  *session.Store
	logger zerolog.Logger
}

func NewDashboardHandler(api *backend.Client, store *session.Store, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		api:    api,
		store:  store,
		logger: logger.With().Str("handler", "dashboard").Logger(),
	}
}

func (h *DashboardHandler) Register(admin fiber.Router) {
	admin.Get("/dashboard", h.show)
}

func (h *DashboardHandler) show(c *fiber.Ctx) error {
	data := pageData(c, h.store, "Tổng quan", "dashboard")

	stats, err := h.api.DashboardStats(apiContext(c))
	if err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		requestLogger(h.logger, c).Warn().Err(err).Msg("failed to load dashboard stats")
		data["Error"] = err.Error()
		return c.Render("dashboard", data, "layouts/main")
	}

	data["Stats"] = stats
	return c.Render("dashboard", data, "layouts/main")
}
