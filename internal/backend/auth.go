package backend

import "context"

// LoginResponse is the payload returned by a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type loginRequest struct {
	Username string `json:"ten_dang_nhap"`
	Password string `json:"mat_khau"`
}

// Login exchanges credentials for a bearer token. A 401 here propagates as an
// ordinary credential error; the adapter's session-expiry handling does not
// apply to the login operation.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var out LoginResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(loginRequest{Username: username, Password: password}).
		SetResult(&out).
		Post(loginPath)
	if err := c.check(resp, err, "Đã có lỗi xảy ra"); err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}
