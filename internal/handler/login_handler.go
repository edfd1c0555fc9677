package handler

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hvmanh/ttms-web/internal/backend"
	"github.com/hvmanh/ttms-web/internal/config"
	"github.com/hvmanh/ttms-web/internal/middleware"
	"github.com/hvmanh/ttms-web/internal/session"
)

// LoginHandler serves the sign-in page and owns the session lifecycle
// endpoints.
type LoginHandler struct {
	api      *backend.Client
	store    *session.Store
	cfg      config.Config
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewLoginHandler(api *backend.Client, store *session.Store, cfg config.Config, validate *validator.Validate, logger zerolog.Logger) *LoginHandler {
	return &LoginHandler{
		api:      api,
		store:    store,
		cfg:      cfg,
		validate: validate,
		logger:   logger.With().Str("handler", "login").Logger(),
	}
}

// Register mounts the public login routes.
func (h *LoginHandler) Register(app fiber.Router) {
	app.Get("/login", h.showLogin)
	app.Post("/login", h.submitLogin)
}

// RegisterProtected mounts the routes that require a live session.
func (h *LoginHandler) RegisterProtected(admin fiber.Router) {
	admin.Post("/logout", h.logout)
}

type loginForm struct {
	Username string `form:"ten_dang_nhap" validate:"required"`
	Password string `form:"mat_khau" validate:"required"`
}

func (h *LoginHandler) showLogin(c *fiber.Ctx) error {
	// An already signed-in viewer has no business on the login page.
	if id := c.Cookies(h.cfg.CookieName); id != "" {
		if _, ok, err := h.store.Get(c.Context(), id); err == nil && ok {
			return c.Redirect("/admin/dashboard", fiber.StatusSeeOther)
		}
	}

	return c.Render("login", fiber.Map{"Username": ""})
}

func (h *LoginHandler) submitLogin(c *fiber.Ctx) error {
	var form loginForm
	if err := c.BodyParser(&form); err != nil {
		return c.Render("login", fiber.Map{"Error": "Đã có lỗi xảy ra", "Username": ""})
	}

	form.Username = sanitizeText(form.Username)
	if err := h.validate.Struct(form); err != nil {
		return c.Render("login", fiber.Map{
			"Error":    "Vui lòng nhập đầy đủ tên đăng nhập và mật khẩu.",
			"Username": form.Username,
		})
	}

	resp, err := h.api.Login(c.UserContext(), form.Username, form.Password)
	if err != nil {
		// Rejected credentials render inline; they never tear down anything.
		requestLogger(h.logger, c).Info().Str("username", form.Username).Msg("login rejected")
		return c.Render("login", fiber.Map{
			"Error":    err.Error(),
			"Username": form.Username,
		})
	}

	role, err := session.RoleFromToken(resp.Token)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("login token unusable")
		return c.Render("login", fiber.Map{
			"Error":    "Đã có lỗi xảy ra",
			"Username": form.Username,
		})
	}

	id, err := h.store.Create(c.Context(), session.Session{
		Token:    resp.Token,
		Role:     role,
		Username: form.Username,
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create session")
		return c.Render("login", fiber.Map{
			"Error":    "Đã có lỗi xảy ra",
			"Username": form.Username,
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.SessionTTL),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: "Lax",
	})

	requestLogger(h.logger, c).Info().Str("username", form.Username).Str("role", role).Msg("login succeeded")
	return c.Redirect("/admin/dashboard", fiber.StatusSeeOther)
}

func (h *LoginHandler) logout(c *fiber.Ctx) error {
	if id := middleware.SessionIDFromCtx(c); id != "" {
		if err := h.store.Destroy(c.Context(), id); err != nil {
			requestLogger(h.logger, c).Warn().Err(err).Msg("failed to destroy session on logout")
		}
	}
	clearSessionCookie(c, h.cfg.CookieName)
	return c.Redirect("/login", fiber.StatusSeeOther)
}
