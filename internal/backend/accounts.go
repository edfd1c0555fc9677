package backend

import "context"

// Account is a login account for the admin application itself.
type Account struct {
	ID       int    `json:"id"`
	Username string `json:"ten_dang_nhap"`
	Role     string `json:"vai_tro"`
}

type createStaffRequest struct {
	Username string `json:"ten_dang_nhap"`
	Password string `json:"mat_khau"`
}

// ListAccounts returns every account. The backend restricts this to ADMIN
// callers; a STAFF token gets a 403 with a body message.
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	var out []Account
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/taikhoan")
	if err := c.check(resp, err, "Lỗi khi tải danh sách tài khoản"); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateStaffAccount creates a STAFF login. ADMIN accounts pre-exist and are
// never created through the UI.
func (c *Client) CreateStaffAccount(ctx context.Context, username, password string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(createStaffRequest{Username: username, Password: password}).
		Post("/taikhoan/staff")
	return c.check(resp, err, "Lỗi khi tạo tài khoản")
}
