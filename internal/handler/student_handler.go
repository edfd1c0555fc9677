package handler

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hvmanh/ttms-web/internal/backend"
	"github.com/hvmanh/ttms-web/internal/session"
)

// StudentHandler serves the student roster and the per-student profile page.
type StudentHandler struct {
	api      *backend.Client
	store    *session.Store
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewStudentHandler(api *backend.Client, store *session.Store, validate *validator.Validate, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		api:      api,
		store:    store,
		validate: validate,
		logger:   logger.With().Str("handler", "students").Logger(),
	}
}

func (h *StudentHandler) Register(admin fiber.Router) {
	admin.Get("/hocvien", h.list)
	admin.Post("/hocvien", h.create)
	admin.Get("/hocvien/:id", h.detail)
	admin.Post("/hocvien/:id/capnhat", h.update)
	admin.Post("/hocvien/:id/xoa", h.remove)
}

type studentForm struct {
	FullName              string `form:"ho_ten" validate:"required"`
	BirthDate             string `form:"ngay_sinh" validate:"required"`
	HomeProvinceCode      string `form:"ma_tinh_que_quan" validate:"required"`
	ResidenceProvinceCode string `form:"ma_tinh_thuong_tru" validate:"required"`
}

// dateOnly trims a backend timestamp down to its date part for display and
// for the date input's value attribute.
func dateOnly(s string) string {
	if i := strings.IndexByte(s, 'T'); i > 0 {
		return s[:i]
	}
	return s
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	data := pageData(c, h.store, "Quản lý học viên", "hocvien")
	ctx := apiContext(c)
	query := sanitizeText(c.Query("q"))
	editID := c.Query("edit")

	var (
		students  []backend.Student
		provinces []backend.Province
		editing   backend.Student
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if query != "" {
			students, err = h.api.SearchStudents(gctx, query)
		} else {
			students, err = h.api.ListStudents(gctx)
		}
		return err
	})
	g.Go(func() error {
		var err error
		provinces, err = h.api.ListProvinces(gctx)
		return err
	})
	if editID != "" {
		g.Go(func() error {
			var err error
			editing, err = h.api.GetStudent(gctx, editID)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		requestLogger(h.logger, c).Warn().Err(err).Msg("failed to load student roster")
		data["Flash"] = errorFlash(err.Error())
	}

	for i := range students {
		students[i].BirthDate = dateOnly(students[i].BirthDate)
	}

	data["Students"] = students
	data["Provinces"] = provinces
	data["Query"] = query
	if editID != "" && editing.ID != "" {
		editing.BirthDate = dateOnly(editing.BirthDate)
		data["Editing"] = editing
	}

	return c.Render("students", data, "layouts/main")
}

func (h *StudentHandler) detail(c *fiber.Ctx) error {
	data := pageData(c, h.store, "Hồ sơ học viên", "hocvien")
	ctx := apiContext(c)
	id := c.Params("id")

	var (
		student backend.Student
		history []backend.CourseHistory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		student, err = h.api.GetStudent(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = h.api.CoursesByStudent(gctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		requestLogger(h.logger, c).Warn().Err(err).Str("student_id", id).Msg("failed to load student profile")
		return redirectWithFlash(c, h.store, "/admin/hocvien", errorFlash(err.Error()))
	}

	student.BirthDate = dateOnly(student.BirthDate)
	for i := range history {
		history[i].RegisteredAt = dateOnly(history[i].RegisteredAt)
	}

	data["Student"] = student
	data["History"] = history
	return c.Render("student_detail", data, "layouts/main")
}

func (h *StudentHandler) create(c *fiber.Ctx) error {
	form, err := h.parseForm(c)
	if err != nil {
		return redirectWithFlash(c, h.store, "/admin/hocvien", errorFlash("Vui lòng nhập đầy đủ thông tin học viên."))
	}

	if err := h.api.CreateStudent(apiContext(c), form); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		return redirectWithFlash(c, h.store, "/admin/hocvien", errorFlash(err.Error()))
	}

	return redirectWithFlash(c, h.store, "/admin/hocvien", successFlash("Thêm học viên thành công!"))
}

func (h *StudentHandler) update(c *fiber.Ctx) error {
	id := c.Params("id")

	form, err := h.parseForm(c)
	if err != nil {
		return redirectWithFlash(c, h.store, "/admin/hocvien?edit="+id, errorFlash("Vui lòng nhập đầy đủ thông tin học viên."))
	}

	if err := h.api.UpdateStudent(apiContext(c), id, form); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		return redirectWithFlash(c, h.store, "/admin/hocvien?edit="+id, errorFlash(err.Error()))
	}

	return redirectWithFlash(c, h.store, "/admin/hocvien", successFlash("Cập nhật học viên thành công!"))
}

func (h *StudentHandler) remove(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.api.DeleteStudent(apiContext(c), id); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		return redirectWithFlash(c, h.store, "/admin/hocvien", errorFlash(err.Error()))
	}

	return redirectWithFlash(c, h.store, "/admin/hocvien", successFlash("Xóa học viên thành công!"))
}

func (h *StudentHandler) parseForm(c *fiber.Ctx) (backend.StudentInput, error) {
	var form studentForm
	if err := c.BodyParser(&form); err != nil {
		return backend.StudentInput{}, err
	}

	form.FullName = sanitizeText(form.FullName)
	if err := h.validate.Struct(form); err != nil {
		return backend.StudentInput{}, err
	}

	return backend.StudentInput{
		FullName:              form.FullName,
		BirthDate:             form.BirthDate,
		HomeProvinceCode:      form.HomeProvinceCode,
		ResidenceProvinceCode: form.ResidenceProvinceCode,
	}, nil
}
