package backend

import "context"

// Enrollment is one student's row in a course's enrollment listing.
type Enrollment struct {
	StudentID    string  `json:"ma_hoc_vien"`
	FullName     string  `json:"ho_ten"`
	Result       string  `json:"ket_qua"`
	RegisteredAt *string `json:"ngay_dang_ky,omitempty"`
}

// CourseHistory is one course in a student's learning history, including the
// counts the progress bar is derived from.
type CourseHistory struct {
	CourseID         string  `json:"ma_khoa_hoc"`
	CourseName       string  `json:"ten_khoa"`
	StartDate        string  `json:"thoi_gian_bat_dau"`
	EndDate          *string `json:"thoi_gian_ket_thuc"`
	RegisteredAt     string  `json:"ngay_dang_ky"`
	Result           string  `json:"ket_qua"`
	CompletedModules int     `json:"so_bai_da_hoan_thanh"`
	TotalModules     int     `json:"tong_so_bai"`
}

type enrollRequest struct {
	StudentID string `json:"ma_hoc_vien"`
	CourseID  string `json:"ma_khoa_hoc"`
}

type resultRequest struct {
	StudentID string `json:"ma_hoc_vien"`
	CourseID  string `json:"ma_khoa_hoc"`
	Result    string `json:"ket_qua"`
}

// Enroll registers a student into a course. The backend enforces the one row
// per (student, course) rule and reports violations in the body message.
func (c *Client) Enroll(ctx context.Context, studentID, courseID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(enrollRequest{StudentID: studentID, CourseID: courseID}).
		Post("/dangky")
	return c.check(resp, err, "Lỗi khi đăng ký khóa học")
}

// UpdateResult certifies one enrollment's outcome.
func (c *Client) UpdateResult(ctx context.Context, studentID, courseID, result string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(resultRequest{StudentID: studentID, CourseID: courseID, Result: result}).
		Put("/dangky")
	return c.check(resp, err, "Lỗi khi cập nhật kết quả")
}

// EnrollmentsByCourse lists every student enrolled in a course.
func (c *Client) EnrollmentsByCourse(ctx context.Context, courseID string) ([]Enrollment, error) {
	var out []Enrollment
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetPathParam("id", courseID).
		Get("/dangky/khoahoc/{id}")
	if err := c.check(resp, err, "Lỗi tải danh sách"); err != nil {
		return nil, err
	}
	return out, nil
}

// EligibleStudents lists students who completed all of a course's modules and
// can therefore be certified. Filtering happens backend-side.
func (c *Client) EligibleStudents(ctx context.Context, courseID string) ([]Enrollment, error) {
	var out []Enrollment
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetPathParam("id", courseID).
		Get("/dangky/du-dieu-kien/{id}")
	if err := c.check(resp, err, "Lỗi tải danh sách đủ điều kiện"); err != nil {
		return nil, err
	}
	return out, nil
}

// CoursesByStudent lists a student's enrolled courses with progress counts.
func (c *Client) CoursesByStudent(ctx context.Context, studentID string) ([]CourseHistory, error) {
	var out []CourseHistory
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetPathParam("id", studentID).
		Get("/dangky/hocvien/{id}")
	if err := c.check(resp, err, "Lỗi khi tải lịch sử học tập"); err != nil {
		return nil, err
	}
	return out, nil
}
