package handler

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hvmanh/ttms-web/internal/backend"
	"github.com/hvmanh/ttms-web/internal/session"
)

// CourseHandler serves the course catalog and the per-course curriculum page.
type CourseHandler struct {
	api      *backend.Client
	store    *session.Store
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewCourseHandler(api *backend.Client, store *session.Store, validate *validator.Validate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		api:      api,
		store:    store,
		validate: validate,
		logger:   logger.With().Str("handler", "courses").Logger(),
	}
}

func (h *CourseHandler) Register(admin fiber.Router) {
	admin.Get("/khoahoc", h.list)
	admin.Post("/khoahoc", h.create)
	admin.Get("/khoahoc/:id", h.detail)
	admin.Post("/khoahoc/:id/capnhat", h.update)
	admin.Post("/khoahoc/:id/xoa", h.remove)
	admin.Post("/khoahoc/:id/noidung", h.addModule)
	admin.Post("/khoahoc/:id/noidung/:mid/capnhat", h.updateModule)
	admin.Post("/khoahoc/:id/noidung/:mid/xoa", h.removeModule)
}

type courseForm struct {
	ID          string `form:"ma_khoa_hoc" validate:"required"`
	Name        string `form:"ten_khoa" validate:"required"`
	Description string `form:"noi_dung"`
	StartDate   string `form:"thoi_gian_bat_dau" validate:"required"`
	EndDate     string `form:"thoi_gian_ket_thuc"`
}

type moduleForm struct {
	Order       string `form:"thu_tu"`
	Name        string `form:"ten_noi_dung"`
	Description string `form:"mo_ta"`
}

func (h *CourseHandler) list(c *fiber.Ctx) error {
	data := pageData(c, h.store, "Quản lý khóa học", "khoahoc")
	editID := c.Query("edit")

	courses, err := h.api.ListCourses(apiContext(c))
	if err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		requestLogger(h.logger, c).Warn().Err(err).Msg("failed to load course catalog")
		data["Flash"] = errorFlash(err.Error())
	}

	for i := range courses {
		courses[i].StartDate = dateOnly(courses[i].StartDate)
		if courses[i].EndDate != nil {
			end := dateOnly(*courses[i].EndDate)
			courses[i].EndDate = &end
		}
	}

	data["Courses"] = courses
	if editID != "" {
		for _, course := range courses {
			if course.ID == editID {
				data["Editing"] = course
				break
			}
		}
	}

	return c.Render("courses", data, "layouts/main")
}

func (h *CourseHandler) detail(c *fiber.Ctx) error {
	data := pageData(c, h.store, "Chi tiết khóa học", "khoahoc")
	ctx := apiContext(c)
	id := c.Params("id")

	var (
		course      backend.Course
		modules     []backend.CourseModule
		enrollments []backend.Enrollment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		course, err = h.api.GetCourse(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		modules, err = h.api.ListModules(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		enrollments, err = h.api.EnrollmentsByCourse(gctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		requestLogger(h.logger, c).Warn().Err(err).Str("course_id", id).Msg("failed to load course detail")
		return redirectWithFlash(c, h.store, "/admin/khoahoc", errorFlash(err.Error()))
	}

	course.StartDate = dateOnly(course.StartDate)
	if course.EndDate != nil {
		end := dateOnly(*course.EndDate)
		course.EndDate = &end
	}
	for i := range enrollments {
		if enrollments[i].RegisteredAt != nil {
			at := dateOnly(*enrollments[i].RegisteredAt)
			enrollments[i].RegisteredAt = &at
		}
	}

	data["Course"] = course
	data["Modules"] = modules
	data["Enrollments"] = enrollments
	data["NextOrder"] = len(modules) + 1

	if editMID := c.Query("edit_module"); editMID != "" {
		if mid, err := strconv.Atoi(editMID); err == nil {
			for _, module := range modules {
				if module.ID == mid {
					data["EditingModule"] = module
					break
				}
			}
		}
	}

	return c.Render("course_detail", data, "layouts/main")
}

func (h *CourseHandler) create(c *fiber.Ctx) error {
	form, err := h.parseCourseForm(c)
	if err != nil {
		return redirectWithFlash(c, h.store, "/admin/khoahoc", errorFlash("Vui lòng nhập đầy đủ thông tin khóa học."))
	}

	if err := h.api.CreateCourse(apiContext(c), form); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		return redirectWithFlash(c, h.store, "/admin/khoahoc", errorFlash(err.Error()))
	}

	return redirectWithFlash(c, h.store, "/admin/khoahoc", successFlash("Thêm khóa học thành công!"))
}

func (h *CourseHandler) update(c *fiber.Ctx) error {
	id := c.Params("id")

	form, err := h.parseCourseForm(c)
	if err != nil {
		return redirectWithFlash(c, h.store, "/admin/khoahoc?edit="+id, errorFlash("Vui lòng nhập đầy đủ thông tin khóa học."))
	}

	if err := h.api.UpdateCourse(apiContext(c), id, form); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		return redirectWithFlash(c, h.store, "/admin/khoahoc?edit="+id, errorFlash(err.Error()))
	}

	return redirectWithFlash(c, h.store, "/admin/khoahoc", successFlash("Cập nhật khóa học thành công!"))
}

func (h *CourseHandler) remove(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.api.DeleteCourse(apiContext(c), id); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		return redirectWithFlash(c, h.store, "/admin/khoahoc", errorFlash(err.Error()))
	}

	return redirectWithFlash(c, h.store, "/admin/khoahoc", successFlash("Xóa khóa học thành công!"))
}

func (h *CourseHandler) addModule(c *fiber.Ctx) error {
	courseID := c.Params("id")
	self := "/admin/khoahoc/" + courseID

	input, err := h.parseModuleForm(c, courseID, 0)
	if err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		return redirectWithFlash(c, h.store, self, errorFlash(err.Error()))
	}

	if err := h.api.AddModule(apiContext(c), courseID, input); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		return redirectWithFlash(c, h.store, self, errorFlash(err.Error()))
	}

	return redirectWithFlash(c, h.store, self, successFlash("Thêm nội dung thành công!"))
}

func (h *CourseHandler) updateModule(c *fiber.Ctx) error {
	courseID := c.Params("id")
	self := "/admin/khoahoc/" + courseID

	moduleID, err := c.ParamsInt("mid")
	if err != nil {
		return redirectWithFlash(c, h.store, self, errorFlash("Nội dung không hợp lệ."))
	}

	input, err := h.parseModuleForm(c, courseID, moduleID)
	if err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		return redirectWithFlash(c, h.store, self+"?edit_module="+strconv.Itoa(moduleID), errorFlash(err.Error()))
	}

	if err := h.api.UpdateModule(apiContext(c), moduleID, input); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		return redirectWithFlash(c, h.store, self+"?edit_module="+strconv.Itoa(moduleID), errorFlash(err.Error()))
	}

	return redirectWithFlash(c, h.store, self, successFlash("Cập nhật nội dung thành công!"))
}

func (h *CourseHandler) removeModule(c *fiber.Ctx) error {
	courseID := c.Params("id")
	self := "/admin/khoahoc/" + courseID

	moduleID, err := c.ParamsInt("mid")
	if err != nil {
		return redirectWithFlash(c, h.store, self, errorFlash("Nội dung không hợp lệ."))
	}

	if err := h.api.DeleteModule(apiContext(c), moduleID); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		return redirectWithFlash(c, h.store, self, errorFlash(err.Error()))
	}

	return redirectWithFlash(c, h.store, self, successFlash("Xóa nội dung thành công!"))
}

func (h *CourseHandler) parseCourseForm(c *fiber.Ctx) (backend.CourseInput, error) {
	var form courseForm
	if err := c.BodyParser(&form); err != nil {
		return backend.CourseInput{}, err
	}

	form.ID = sanitizeText(form.ID)
	form.Name = sanitizeText(form.Name)
	form.Description = sanitizeText(form.Description)
	if err := h.validate.Struct(form); err != nil {
		return backend.CourseInput{}, err
	}

	return backend.CourseInput{
		ID:          form.ID,
		Name:        form.Name,
		Description: form.Description,
		StartDate:   form.StartDate,
		EndDate:     form.EndDate,
	}, nil
}

// parseModuleForm validates a module submission. The order index must be
// unique within the course, and the check runs before any write reaches the
// backend; currentID identifies the module being edited so its own slot does
// not count as a collision. A blank order falls back to the next free slot.
func (h *CourseHandler) parseModuleForm(c *fiber.Ctx, courseID string, currentID int) (backend.ModuleInput, error) {
	var form moduleForm
	if err := c.BodyParser(&form); err != nil {
		return backend.ModuleInput{}, fmt.Errorf("Đã có lỗi xảy ra")
	}

	form.Name = sanitizeText(form.Name)
	form.Description = sanitizeText(form.Description)
	if form.Name == "" {
		return backend.ModuleInput{}, fmt.Errorf("Vui lòng nhập tên nội dung!")
	}

	modules, err := h.api.ListModules(apiContext(c), courseID)
	if err != nil {
		return backend.ModuleInput{}, err
	}

	order := 0
	if form.Order != "" {
		order, err = strconv.Atoi(form.Order)
		if err != nil || order < 1 {
			return backend.ModuleInput{}, fmt.Errorf("Thứ tự không hợp lệ.")
		}
	}
	if order == 0 {
		order = len(modules) + 1
	}

	for _, module := range modules {
		if module.Order == order && module.ID != currentID {
			return backend.ModuleInput{}, fmt.Errorf("Thứ tự số %d đã tồn tại! Vui lòng chọn số khác.", order)
		}
	}

	return backend.ModuleInput{
		Name:        form.Name,
		Description: form.Description,
		Order:       order,
	}, nil
}
