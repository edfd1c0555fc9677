package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hvmanh/ttms-web/internal/backend"
	"github.com/hvmanh/ttms-web/internal/session"
)

// StatsHandler serves the reporting pages.
type StatsHandler struct {
	api    *backend.Client
	store  *session.Store
	logger zerolog.Logger
}

func NewStatsHandler(api *backend.Client, store *session.Store, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		api:    api,
		store:  store,
		logger: logger.With().Str("handler", "stats").Logger(),
	}
}

func (h *StatsHandler) Register(admin fiber.Router) {
	admin.Get("/thongke/que-quan", h.byHometown)
	admin.Get("/thongke/thuong-tru", h.byResidence)
	admin.Get("/thongke/khoa-hoc", h.byCourse)
}

// provinceRow is a display row with a bar width scaled against the largest
// bucket.
type provinceRow struct {
	Name  string
	Count int
	Width int
}

func provinceRows(stats []backend.ProvinceStat) []provinceRow {
	max := 0
	for _, s := range stats {
		if s.Count > max {
			max = s.Count
		}
	}

	rows := make([]provinceRow, 0, len(stats))
	for _, s := range stats {
		width := 0
		if max > 0 {
			width = s.Count * 100 / max
		}
		rows = append(rows, provinceRow{Name: s.ProvinceName, Count: s.Count, Width: width})
	}
	return rows
}

func (h *StatsHandler) byHometown(c *fiber.Ctx) error {
	data := pageData(c, h.store, "Thống kê theo Quê quán", "thongke-que-quan")

	stats, err := h.api.StatsByHometown(apiContext(c))
	if err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		requestLogger(h.logger, c).Warn().Err(err).Msg("failed to load hometown stats")
		data["Flash"] = errorFlash(err.Error())
	}

	data["Heading"] = "Thống kê theo Quê quán"
	data["Rows"] = provinceRows(stats)
	return c.Render("stats_provinces", data, "layouts/main")
}

func (h *StatsHandler) byResidence(c *fiber.Ctx) error {
	data := pageData(c, h.store, "Thống kê theo Thường trú", "thongke-thuong-tru")

	stats, err := h.api.StatsByResidence(apiContext(c))
	if err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		requestLogger(h.logger, c).Warn().Err(err).Msg("failed to load residence stats")
		data["Flash"] = errorFlash(err.Error())
	}

	data["Heading"] = "Thống kê theo Thường trú"
	data["Rows"] = provinceRows(stats)
	return c.Render("stats_provinces", data, "layouts/main")
}

func (h *StatsHandler) byCourse(c *fiber.Ctx) error {
	data := pageData(c, h.store, "Thống kê theo Khóa học", "thongke-khoa-hoc")

	year := c.QueryInt("year", time.Now().Year())

	rows, err := h.api.StatsByCourse(apiContext(c), year)
	if err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		requestLogger(h.logger, c).Warn().Err(err).Int("year", year).Msg("failed to load course stats")
		data["Flash"] = errorFlash(err.Error())
	}

	for i := range rows {
		rows[i].StartDate = dateOnly(rows[i].StartDate)
	}

	data["Year"] = year
	data["Rows"] = rows
	return c.Render("stats_courses", data, "layouts/main")
}
