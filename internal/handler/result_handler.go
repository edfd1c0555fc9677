package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hvmanh/ttms-web/internal/backend"
	"github.com/hvmanh/ttms-web/internal/session"
)

// ResultHandler serves result certification for students who completed a
// course's full curriculum.
type ResultHandler struct {
	api      *backend.Client
	store    *session.Store
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewResultHandler(api *backend.Client, store *session.Store, validate *validator.Validate, logger zerolog.Logger) *ResultHandler {
	return &ResultHandler{
		api:      api,
		store:    store,
		validate: validate,
		logger:   logger.With().Str("handler", "results").Logger(),
	}
}

func (h *ResultHandler) Register(admin fiber.Router) {
	admin.Get("/ketqua", h.show)
	admin.Post("/ketqua", h.certify)
}

type resultForm struct {
	StudentID string `form:"ma_hoc_vien" validate:"required"`
	CourseID  string `form:"ma_khoa_hoc" validate:"required"`
	Result    string `form:"ket_qua" validate:"required"`
}

func (h *ResultHandler) show(c *fiber.Ctx) error {
	data := pageData(c, h.store, "Cập nhật Kết quả", "ketqua")
	ctx := apiContext(c)
	selected := c.Query("khoahoc")

	courses, err := h.api.ListCourses(ctx)
	if err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		requestLogger(h.logger, c).Warn().Err(err).Msg("failed to load course list")
		data["Flash"] = errorFlash(err.Error())
	}

	data["Courses"] = courses
	data["SelectedCourse"] = selected

	if selected != "" {
		eligible, err := h.api.EligibleStudents(ctx, selected)
		if err != nil {
			if backend.IsSessionExpired(err) {
				return err
			}
			requestLogger(h.logger, c).Warn().Err(err).Str("course_id", selected).Msg("failed to load eligible students")
			data["Flash"] = errorFlash(err.Error())
		}
		data["Eligible"] = eligible
	}

	return c.Render("results", data, "layouts/main")
}

func (h *ResultHandler) certify(c *fiber.Ctx) error {
	var form resultForm
	if err := c.BodyParser(&form); err != nil {
		return redirectWithFlash(c, h.store, "/admin/ketqua", errorFlash("Đã có lỗi xảy ra"))
	}
	if err := h.validate.Struct(form); err != nil {
		return redirectWithFlash(c, h.store, "/admin/ketqua", errorFlash("Vui lòng chọn học viên và kết quả."))
	}

	self := "/admin/ketqua?khoahoc=" + form.CourseID

	// Only the two terminal outcomes are accepted from the form.
	if form.Result != backend.ResultPass && form.Result != backend.ResultFail {
		return redirectWithFlash(c, h.store, self, errorFlash("Kết quả không hợp lệ."))
	}

	if err := h.api.UpdateResult(apiContext(c), form.StudentID, form.CourseID, form.Result); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		return redirectWithFlash(c, h.store, self, errorFlash(err.Error()))
	}

	return redirectWithFlash(c, h.store, self, successFlash("Cập nhật kết quả thành công!"))
}
