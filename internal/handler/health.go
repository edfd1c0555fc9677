package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hvmanh/ttms-web/internal/config"
)

// HealthCheck reports liveness for deployment probes.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"app":    cfg.AppName,
			"env":    cfg.AppEnv,
		})
	}
}
