package backend

// Viewer roles carried in the login token's "vai_tro" claim.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// Enrollment result values as the backend spells them.
const (
	ResultPass    = "ĐẠT"
	ResultFail    = "KHÔNG ĐẠT"
	ResultPending = "CHƯA CẬP NHẬT"
)

// Per-module completion status values.
const (
	ProgressDone    = "HOÀN THÀNH"
	ProgressNotDone = "CHƯA HOÀN THÀNH"
)
