package backend

import "context"

// Student mirrors the backend's student record. Province names are only
// populated on read endpoints that join the reference table.
type Student struct {
	ID                    string  `json:"ma_hoc_vien"`
	FullName              string  `json:"ho_ten"`
	BirthDate             string  `json:"ngay_sinh"`
	HomeProvinceCode      string  `json:"ma_tinh_que_quan"`
	ResidenceProvinceCode string  `json:"ma_tinh_thuong_tru"`
	DeletedAt             *string `json:"deleted_at"`
	HomeProvinceName      *string `json:"ten_tinh_que_quan"`
	ResidenceProvinceName *string `json:"ten_tinh_thuong_tru"`
}

// StudentInput is the create/update payload.
type StudentInput struct {
	FullName              string `json:"ho_ten"`
	BirthDate             string `json:"ngay_sinh"`
	HomeProvinceCode      string `json:"ma_tinh_que_quan"`
	ResidenceProvinceCode string `json:"ma_tinh_thuong_tru"`
}

// ListStudents returns every non-deleted student.
func (c *Client) ListStudents(ctx context.Context) ([]Student, error) {
	var out []Student
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/hocvien")
	if err := c.check(resp, err, "Lỗi khi tải danh sách học viên"); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStudent returns one student by id.
func (c *Client) GetStudent(ctx context.Context, id string) (Student, error) {
	var out Student
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetPathParam("id", id).
		Get("/hocvien/{id}")
	if err := c.check(resp, err, "Lỗi khi tải chi tiết học viên"); err != nil {
		return Student{}, err
	}
	return out, nil
}

// SearchStudents looks students up by free-text query.
func (c *Client) SearchStudents(ctx context.Context, query string) ([]Student, error) {
	var out []Student
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetQueryParam("q", query).
		Get("/hocvien/search")
	if err := c.check(resp, err, "Lỗi khi tìm kiếm học viên"); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateStudent registers a new student record.
func (c *Client) CreateStudent(ctx context.Context, in StudentInput) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		Post("/hocvien")
	return c.check(resp, err, "Lỗi khi tạo học viên")
}

// UpdateStudent replaces a student's editable fields.
func (c *Client) UpdateStudent(ctx context.Context, id string, in StudentInput) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetPathParam("id", id).
		Put("/hocvien/{id}")
	return c.check(resp, err, "Lỗi khi cập nhật học viên")
}

// DeleteStudent soft-deletes a student.
func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete("/hocvien/{id}")
	return c.check(resp, err, "Lỗi khi xóa học viên")
}
