package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hvmanh/ttms-web/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "TTMS Admin", cfg.AppName)
	require.Equal(t, ":3000", cfg.HTTPAddress())
	require.Equal(t, "http://localhost:8000", cfg.BackendURL)
	require.Equal(t, "ttms_session", cfg.CookieName)
	require.Equal(t, 12*time.Hour, cfg.SessionTTL)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.False(t, cfg.CookieSecure)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TTMS_APP_PORT", "8081")
	t.Setenv("TTMS_BACKEND_URL", "https://api.example.com/")
	t.Setenv("TTMS_SESSION_TTL", "30m")
	t.Setenv("TTMS_COOKIE_SECURE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, ":8081", cfg.HTTPAddress())
	require.Equal(t, "https://api.example.com", cfg.BackendURL)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.True(t, cfg.CookieSecure)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("TTMS_SESSION_TTL", "not-a-duration")

	_, err := config.Load()
	require.Error(t, err)
}
