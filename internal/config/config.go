package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the admin web frontend.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string
	BackendURL     string
	RedisURL       string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
	CookieName     string
	CookieSecure   bool
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TTMS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "TTMS Admin")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")
	v.SetDefault("backend.url", "http://localhost:8000")
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("session.ttl", "12h")
	v.SetDefault("request.timeout", "15s")
	v.SetDefault("cookie.name", "ttms_session")
	v.SetDefault("cookie.secure", false)

	ttl, err := time.ParseDuration(v.GetString("session.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl: %w", err)
	}

	timeout, err := time.ParseDuration(v.GetString("request.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid request timeout: %w", err)
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		AppPort:        v.GetString("app.port"),
		BackendURL:     strings.TrimRight(v.GetString("backend.url"), "/"),
		RedisURL:       v.GetString("redis.url"),
		SessionTTL:     ttl,
		RequestTimeout: timeout,
		CookieName:     v.GetString("cookie.name"),
		CookieSecure:   v.GetBool("cookie.secure"),
	}

	if cfg.BackendURL == "" {
		return Config{}, fmt.Errorf("backend url must be provided")
	}

	return cfg, nil
}
