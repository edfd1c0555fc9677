package backend

import "context"

// Province is static reference data for the student address selects.
type Province struct {
	Code string `json:"ma_tinh"`
	Name string `json:"ten_tinh"`
}

// ListProvinces returns the full province reference list.
func (c *Client) ListProvinces(ctx context.Context) ([]Province, error) {
	var out []Province
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/tinhthanh")
	if err := c.check(resp, err, "Lỗi khi tải dữ liệu tỉnh thành"); err != nil {
		return nil, err
	}
	return out, nil
}
