package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hvmanh/ttms-web/internal/backend"
	"github.com/hvmanh/ttms-web/internal/config"
	"github.com/hvmanh/ttms-web/internal/handler"
	"github.com/hvmanh/ttms-web/internal/middleware"
	"github.com/hvmanh/ttms-web/internal/router"
	"github.com/hvmanh/ttms-web/internal/session"
	"github.com/hvmanh/ttms-web/internal/view"
)

const cookieName = "ttms_session"

// harness wires a complete application against a stubbed backend API.
type harness struct {
	app   *fiber.App
	store *session.Store
}

func newHarness(t *testing.T, backendHandler http.Handler) *harness {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	store := session.NewStore(rdb, time.Hour, zerolog.Nop())

	server := httptest.NewServer(backendHandler)
	t.Cleanup(server.Close)

	api := backend.New(backend.Config{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	}, zerolog.Nop())

	cfg := config.Config{
		AppName:        "ttms-test",
		AppEnv:         "test",
		BackendURL:     server.URL,
		SessionTTL:     time.Hour,
		RequestTimeout: 2 * time.Second,
		CookieName:     cookieName,
	}

	logger := zerolog.Nop()
	validate := validator.New(validator.WithRequiredStructEnabled())

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		Views:        view.Engine(),
		ErrorHandler: handler.NewErrorHandler(store, cfg.CookieName, logger),
	})

	router.Register(app, cfg, router.Dependencies{
		LoginHandler:      handler.NewLoginHandler(api, store, cfg, validate, logger),
		DashboardHandler:  handler.NewDashboardHandler(api, store, logger),
		StudentHandler:    handler.NewStudentHandler(api, store, validate, logger),
		ProgressHandler:   handler.NewProgressHandler(api, store, logger),
		CourseHandler:     handler.NewCourseHandler(api, store, validate, logger),
		EnrollmentHandler: handler.NewEnrollmentHandler(api, store, validate, logger),
		ResultHandler:     handler.NewResultHandler(api, store, validate, logger),
		AccountHandler:    handler.NewAccountHandler(api, store, validate, logger),
		StatsHandler:      handler.NewStatsHandler(api, store, logger),
		SessionGate:       middleware.RequireSession(store, cfg.CookieName, logger),
	})

	return &harness{app: app, store: store}
}

// signIn creates a live session directly in the store and returns its cookie.
func (h *harness) signIn(t *testing.T, role, username string) (*http.Cookie, string) {
	t.Helper()
	id, err := h.store.Create(context.Background(), session.Session{
		Token:    "token-" + username,
		Role:     role,
		Username: username,
	})
	require.NoError(t, err)
	return &http.Cookie{Name: cookieName, Value: id}, id
}

func (h *harness) get(t *testing.T, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := h.app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func (h *harness) postForm(t *testing.T, path string, form url.Values, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := h.app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func (h *harness) popFlash(t *testing.T, sessionID string) session.Flash {
	t.Helper()
	flash, ok := h.store.PopFlash(context.Background(), sessionID)
	require.True(t, ok, "expected a pending flash")
	return flash
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return string(body)
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == cookieName {
			return cookie
		}
	}
	return nil
}

func loginToken(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"vai_tro": role,
		"sub":     "tester",
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}
