package backend

import (
	"context"
	"strconv"
)

// DashboardStats are the three counters on the landing page.
type DashboardStats struct {
	TotalStudents    int `json:"totalHocVien"`
	TotalCourses     int `json:"totalKhoaHoc"`
	TotalEnrollments int `json:"totalDangKy"`
}

// ProvinceStat is one row of the hometown/residence breakdowns.
type ProvinceStat struct {
	HomeProvinceCode      string `json:"ma_tinh_que_quan,omitempty"`
	ResidenceProvinceCode string `json:"ma_tinh_thuong_tru,omitempty"`
	ProvinceName          string `json:"ten_tinh"`
	Count                 int    `json:"so_luong"`
}

// CourseStat is one row of the per-course result breakdown.
type CourseStat struct {
	CourseID     string `json:"ma_khoa_hoc"`
	CourseName   string `json:"ten_khoa"`
	StartDate    string `json:"thoi_gian_bat_dau"`
	StudentCount int    `json:"so_luong_hoc_vien"`
	PassCount    int    `json:"so_luong_dat"`
	FailCount    int    `json:"so_luong_khong_dat"`
}

// DashboardStats returns the aggregate counters.
func (c *Client) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var out DashboardStats
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/thongke/dashboard")
	if err := c.check(resp, err, "Lỗi khi tải thống kê dashboard"); err != nil {
		return DashboardStats{}, err
	}
	return out, nil
}

// StatsByHometown breaks the student population down by home province.
func (c *Client) StatsByHometown(ctx context.Context) ([]ProvinceStat, error) {
	var out []ProvinceStat
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/thongke/quequan")
	if err := c.check(resp, err, "Lỗi khi tải thống kê quê quán"); err != nil {
		return nil, err
	}
	return out, nil
}

// StatsByResidence breaks the student population down by residence province.
func (c *Client) StatsByResidence(ctx context.Context) ([]ProvinceStat, error) {
	var out []ProvinceStat
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/thongke/thuongtru")
	if err := c.check(resp, err, "Lỗi khi tải thống kê thường trú"); err != nil {
		return nil, err
	}
	return out, nil
}

// StatsByCourse returns per-course enrollment and result counts for one year.
func (c *Client) StatsByCourse(ctx context.Context, year int) ([]CourseStat, error) {
	var out []CourseStat
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetQueryParam("year", strconv.Itoa(year)).
		Get("/thongke/khoahoc")
	if err := c.check(resp, err, "Lỗi khi tải thống kê khóa học"); err != nil {
		return nil, err
	}
	return out, nil
}
