package backend

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// Course mirrors the backend's course record.
type Course struct {
	ID          string  `json:"ma_khoa_hoc"`
	Name        string  `json:"ten_khoa"`
	Description string  `json:"noi_dung"`
	StartDate   string  `json:"thoi_gian_bat_dau"`
	EndDate     *string `json:"thoi_gian_ket_thuc"`
	DeletedAt   *string `json:"deleted_at"`
}

// CourseInput is the create/update payload.
type CourseInput struct {
	ID          string `json:"ma_khoa_hoc"`
	Name        string `json:"ten_khoa"`
	Description string `json:"noi_dung"`
	StartDate   string `json:"thoi_gian_bat_dau"`
	EndDate     string `json:"thoi_gian_ket_thuc"`
}

// CourseModule is one lesson/chapter unit within a course. Status is only
// populated by the per-student progress endpoint.
type CourseModule struct {
	ID          int    `json:"id"`
	CourseID    string `json:"ma_khoa_hoc"`
	Name        string `json:"ten_noi_dung"`
	Description string `json:"mo_ta"`
	Order       int    `json:"thu_tu"`
	Status      string `json:"trang_thai,omitempty"`
}

// ModuleInput is the module create/update payload.
type ModuleInput struct {
	Name        string `json:"ten_noi_dung"`
	Description string `json:"mo_ta,omitempty"`
	Order       int    `json:"thu_tu,omitempty"`
}

// ProgressUpdate sets one student's completion status on one module.
type ProgressUpdate struct {
	StudentID string `json:"ma_hoc_vien"`
	ModuleID  int    `json:"id_noi_dung"`
	Status    string `json:"trang_thai"`
}

// ListCourses returns every non-deleted course.
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var out []Course
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/khoahoc")
	if err := c.check(resp, err, "Lỗi khi tải danh sách khóa học"); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCourse returns one course by id.
func (c *Client) GetCourse(ctx context.Context, id string) (Course, error) {
	var out Course
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetPathParam("id", id).
		Get("/khoahoc/{id}")
	if err := c.check(resp, err, "Lỗi khi tải chi tiết khóa học"); err != nil {
		return Course{}, err
	}
	return out, nil
}

// CreateCourse registers a new course.
func (c *Client) CreateCourse(ctx context.Context, in CourseInput) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		Post("/khoahoc")
	return c.check(resp, err, "Lỗi khi tạo khóa học")
}

// UpdateCourse replaces a course's editable fields.
func (c *Client) UpdateCourse(ctx context.Context, id string, in CourseInput) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetPathParam("id", id).
		Put("/khoahoc/{id}")
	return c.check(resp, err, "Lỗi khi cập nhật khóa học")
}

// DeleteCourse soft-deletes a course.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete("/khoahoc/{id}")
	return c.check(resp, err, "Lỗi khi xóa khóa học")
}

// ListModules returns a course's modules ordered by their index.
func (c *Client) ListModules(ctx context.Context, courseID string) ([]CourseModule, error) {
	var out []CourseModule
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetPathParam("id", courseID).
		Get("/khoahoc/{id}/noidung")
	if err := c.check(resp, err, "Lỗi khi tải nội dung khóa học"); err != nil {
		return nil, err
	}
	return out, nil
}

// AddModule appends a module to a course.
func (c *Client) AddModule(ctx context.Context, courseID string, in ModuleInput) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetPathParam("id", courseID).
		Post("/khoahoc/{id}/noidung")
	return c.check(resp, err, "Lỗi khi thêm nội dung")
}

// UpdateModule replaces a module's editable fields.
func (c *Client) UpdateModule(ctx context.Context, moduleID int, in ModuleInput) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetPathParam("id", strconv.Itoa(moduleID)).
		Put("/khoahoc/noidung/{id}")
	return c.check(resp, err, "Lỗi khi cập nhật nội dung")
}

// DeleteModule removes a module from its course.
func (c *Client) DeleteModule(ctx context.Context, moduleID int) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.Itoa(moduleID)).
		Delete("/khoahoc/noidung/{id}")
	return c.check(resp, err, "Lỗi khi xóa nội dung")
}

// StudentProgress returns a course's modules joined with one student's
// completion status.
func (c *Client) StudentProgress(ctx context.Context, courseID, studentID string) ([]CourseModule, error) {
	var out []CourseModule
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetQueryParams(map[string]string{
			"ma_khoa_hoc": courseID,
			"ma_hoc_vien": studentID,
		}).
		Get("/khoahoc/tiendo")
	if err := c.check(resp, err, "Lỗi khi tải tiến độ học tập"); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProgress writes one completion status.
func (c *Client) UpdateProgress(ctx context.Context, update ProgressUpdate) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(update).
		Post("/khoahoc/tiendo/capnhat")
	return c.check(resp, err, "Lỗi khi cập nhật tiến độ")
}

// UpdateManyProgress issues all updates of one save action concurrently and
// joins them, so total latency is bounded by the slowest call. A partial
// failure surfaces as a single error; applied updates are not rolled back.
func (c *Client) UpdateManyProgress(ctx context.Context, updates []ProgressUpdate) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, update := range updates {
		update := update
		g.Go(func() error {
			return c.UpdateProgress(ctx, update)
		})
	}
	return g.Wait()
}
