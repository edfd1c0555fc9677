package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hvmanh/ttms-web/internal/middleware"
	"github.com/hvmanh/ttms-web/internal/session"
)

const cookieName = "ttms_session"

func newGatedApp(t *testing.T) (*fiber.App, *session.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := session.NewStore(client, time.Hour, zerolog.Nop())

	app := fiber.New()
	admin := app.Group("/admin", middleware.RequireSession(store, cookieName, zerolog.Nop()))
	admin.Get("/dashboard", func(c *fiber.Ctx) error {
		sess, ok := middleware.SessionFromCtx(c)
		require.True(t, ok)
		return c.SendString(sess.Username)
	})

	return app, store
}

func TestRequireSessionRedirectsWithoutCookie(t *testing.T) {
	app, _ := newGatedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRequireSessionRedirectsOnUnknownID(t *testing.T) {
	app, _ := newGatedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "stale-id"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRequireSessionPassesWithLiveSession(t *testing.T) {
	app, store := newGatedApp(t)

	id, err := store.Create(context.Background(), session.Session{Token: "tok", Role: "STAFF", Username: "nv01"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: id})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
