package backend

import (
	"errors"
	"net/http"
)

// Kind classifies a failed backend call into the closed set of outcomes
// pages are expected to handle.
type Kind string

const (
	// KindConnectivity means no response was received at all.
	KindConnectivity Kind = "connectivity"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindBadRequest   Kind = "bad_request"
	KindServer       Kind = "server"
)

// MsgCannotReachServer is shown whenever the backend could not be reached.
const MsgCannotReachServer = "Không thể kết nối đến máy chủ."

// Error carries a display-ready message for a failed backend call.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ErrSessionExpired is returned for any 401 response outside the login
// operation. The web layer reacts by destroying the session and redirecting
// to the login page; it is never rendered as an in-page error.
var ErrSessionExpired = &Error{Kind: KindUnauthorized, Message: "Phiên đăng nhập đã hết hạn."}

// IsSessionExpired reports whether err demands a session teardown.
func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return KindBadRequest
	default:
		return KindServer
	}
}
