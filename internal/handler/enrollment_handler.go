package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hvmanh/ttms-web/internal/backend"
	"github.com/hvmanh/ttms-web/internal/session"
)

// EnrollmentHandler serves the course registration page.
type EnrollmentHandler struct {
	api      *backend.Client
	store    *session.Store
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewEnrollmentHandler(api *backend.Client, store *session.Store, validate *validator.Validate, logger zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		api:      api,
		store:    store,
		validate: validate,
		logger:   logger.With().Str("handler", "enrollments").Logger(),
	}
}

func (h *EnrollmentHandler) Register(admin fiber.Router) {
	admin.Get("/dangky", h.show)
	admin.Post("/dangky", h.enroll)
}

type enrollForm struct {
	StudentID string `form:"ma_hoc_vien" validate:"required"`
	CourseID  string `form:"ma_khoa_hoc" validate:"required"`
}

func (h *EnrollmentHandler) show(c *fiber.Ctx) error {
	data := pageData(c, h.store, "Đăng ký khoá học", "dangky")
	ctx := apiContext(c)

	var (
		students []backend.Student
		courses  []backend.Course
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		students, err = h.api.ListStudents(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		courses, err = h.api.ListCourses(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		requestLogger(h.logger, c).Warn().Err(err).Msg("failed to load enrollment form data")
		data["Flash"] = errorFlash(err.Error())
	}

	data["Students"] = students
	data["Courses"] = courses
	return c.Render("enroll", data, "layouts/main")
}

func (h *EnrollmentHandler) enroll(c *fiber.Ctx) error {
	var form enrollForm
	if err := c.BodyParser(&form); err != nil {
		return redirectWithFlash(c, h.store, "/admin/dangky", errorFlash("Đã có lỗi xảy ra"))
	}
	if err := h.validate.Struct(form); err != nil {
		return redirectWithFlash(c, h.store, "/admin/dangky", errorFlash("Vui lòng chọn học viên và khóa học."))
	}

	if err := h.api.Enroll(apiContext(c), form.StudentID, form.CourseID); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		return redirectWithFlash(c, h.store, "/admin/dangky", errorFlash(err.Error()))
	}

	return redirectWithFlash(c, h.store, "/admin/dangky", successFlash("Đăng ký khóa học thành công!"))
}
