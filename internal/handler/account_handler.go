package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hvmanh/ttms-web/internal/backend"
	"github.com/hvmanh/ttms-web/internal/session"
)

// AccountHandler serves the account administration page. Authorization is
// backend-side: a STAFF token listing accounts gets a 403 whose message is
// shown as an ordinary page error.
type AccountHandler struct {
	api      *backend.Client
	store    *session.Store
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewAccountHandler(api *backend.Client, store *session.Store, validate *validator.Validate, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		api:      api,
		store:    store,
		validate: validate,
		logger:   logger.With().Str("handler", "accounts").Logger(),
	}
}

func (h *AccountHandler) Register(admin fiber.Router) {
	admin.Get("/taikhoan", h.list)
	admin.Post("/taikhoan", h.create)
}

type accountForm struct {
	Username string `form:"ten_dang_nhap" validate:"required,min=3"`
	Password string `form:"mat_khau" validate:"required,min=6"`
}

func (h *AccountHandler) list(c *fiber.Ctx) error {
	data := pageData(c, h.store, "Quản lý tài khoản", "taikhoan")

	accounts, err := h.api.ListAccounts(apiContext(c))
	if err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		requestLogger(h.logger, c).Warn().Err(err).Msg("failed to load accounts")
		data["Flash"] = errorFlash(err.Error())
	}

	data["Accounts"] = accounts
	return c.Render("accounts", data, "layouts/main")
}

func (h *AccountHandler) create(c *fiber.Ctx) error {
	var form accountForm
	if err := c.BodyParser(&form); err != nil {
		return redirectWithFlash(c, h.store, "/admin/taikhoan", errorFlash("Đã có lỗi xảy ra"))
	}

	form.Username = sanitizeText(form.Username)
	if err := h.validate.Struct(form); err != nil {
		return redirectWithFlash(c, h.store, "/admin/taikhoan",
			errorFlash("Tên đăng nhập tối thiểu 3 ký tự, mật khẩu tối thiểu 6 ký tự."))
	}

	if err := h.api.CreateStaffAccount(apiContext(c), form.Username, form.Password); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		return redirectWithFlash(c, h.store, "/admin/taikhoan", errorFlash(err.Error()))
	}

	return redirectWithFlash(c, h.store, "/admin/taikhoan", successFlash("Tạo tài khoản thành công!"))
}
