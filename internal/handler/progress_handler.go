package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hvmanh/ttms-web/internal/backend"
	"github.com/hvmanh/ttms-web/internal/session"
)

// ProgressHandler serves the per-student module checklist for one course.
type ProgressHandler struct {
	api    *backend.Client
	store  *session.Store
	logger zerolog.Logger
}

func NewProgressHandler(api *backend.Client, store *session.Store, logger zerolog.Logger) *ProgressHandler {
	return &ProgressHandler{
		api:    api,
		store:  store,
		logger: logger.With().Str("handler", "progress").Logger(),
	}
}

func (h *ProgressHandler) Register(admin fiber.Router) {
	admin.Get("/hocvien/:sid/tiendo/:cid", h.show)
	admin.Post("/hocvien/:sid/tiendo/:cid", h.save)
}

func (h *ProgressHandler) show(c *fiber.Ctx) error {
	return h.render(c, "", nil)
}

// render loads the checklist page. When checked is non-nil the page reflects
// the submitted checkbox state instead of the stored one, so a failed save
// does not silently discard the operator's input.
func (h *ProgressHandler) render(c *fiber.Ctx, pageError string, checked map[int]bool) error {
	data := pageData(c, h.store, "Tiến độ học tập", "hocvien")
	ctx := apiContext(c)
	studentID := c.Params("sid")
	courseID := c.Params("cid")

	var (
		student backend.Student
		course  backend.Course
		modules []backend.CourseModule
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		student, err = h.api.GetStudent(gctx, studentID)
		return err
	})
	g.Go(func() error {
		var err error
		course, err = h.api.GetCourse(gctx, courseID)
		return err
	})
	g.Go(func() error {
		var err error
		modules, err = h.api.StudentProgress(gctx, courseID, studentID)
		return err
	})

	if err := g.Wait(); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		requestLogger(h.logger, c).Warn().Err(err).
			Str("student_id", studentID).
			Str("course_id", courseID).
			Msg("failed to load progress checklist")
		return redirectWithFlash(c, h.store, "/admin/hocvien/"+studentID, errorFlash(err.Error()))
	}

	if checked != nil {
		for i := range modules {
			if checked[modules[i].ID] {
				modules[i].Status = backend.ProgressDone
			} else {
				modules[i].Status = backend.ProgressNotDone
			}
		}
	}

	data["Student"] = student
	data["Course"] = course
	data["Modules"] = modules
	if pageError != "" {
		data["Error"] = pageError
	}
	return c.Render("progress", data, "layouts/main")
}

func (h *ProgressHandler) save(c *fiber.Ctx) error {
	studentID := c.Params("sid")
	courseID := c.Params("cid")

	all := formValues(c, "ids")
	was := toIntSet(formValues(c, "was"))
	done := toIntSet(formValues(c, "done"))

	// Only modules whose checkbox actually changed produce a write.
	var updates []backend.ProgressUpdate
	checked := make(map[int]bool, len(all))
	for _, raw := range all {
		id, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		checked[id] = done[id]
		if done[id] == was[id] {
			continue
		}
		status := backend.ProgressNotDone
		if done[id] {
			status = backend.ProgressDone
		}
		updates = append(updates, backend.ProgressUpdate{
			StudentID: studentID,
			ModuleID:  id,
			Status:    status,
		})
	}

	self := "/admin/hocvien/" + studentID + "/tiendo/" + courseID

	if len(updates) == 0 {
		return redirectWithFlash(c, h.store, self, successFlash("Không có thay đổi nào cần lưu."))
	}

	if err := h.api.UpdateManyProgress(apiContext(c), updates); err != nil {
		if backend.IsSessionExpired(err) {
			return err
		}
		requestLogger(h.logger, c).Warn().Err(err).
			Str("student_id", studentID).
			Str("course_id", courseID).
			Int("updates", len(updates)).
			Msg("progress save failed")
		return h.render(c, "Có lỗi xảy ra khi lưu dữ liệu.", checked)
	}

	return redirectWithFlash(c, h.store, self, successFlash("Cập nhật tiến độ thành công!"))
}

func formValues(c *fiber.Ctx, key string) []string {
	raw := c.Context().PostArgs().PeekMulti(key)
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		values = append(values, string(v))
	}
	return values
}

func toIntSet(values []string) map[int]bool {
	set := make(map[int]bool, len(values))
	for _, v := range values {
		if id, err := strconv.Atoi(v); err == nil {
			set[id] = true
		}
	}
	return set
}
