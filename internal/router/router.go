package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"github.com/hvmanh/ttms-web/internal/config"
	"github.com/hvmanh/ttms-web/internal/handler"
	"github.com/hvmanh/ttms-web/internal/observability"
	"github.com/hvmanh/ttms-web/internal/view"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	LoginHandler      *handler.LoginHandler
	DashboardHandler  *handler.DashboardHandler
	StudentHandler    *handler.StudentHandler
	ProgressHandler   *handler.ProgressHandler
	CourseHandler     *handler.CourseHandler
	EnrollmentHandler *handler.EnrollmentHandler
	ResultHandler     *handler.ResultHandler
	AccountHandler    *handler.AccountHandler
	StatsHandler      *handler.StatsHandler
	SessionGate       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/healthz", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   view.StaticFS(),
		MaxAge: 3600,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/login", fiber.StatusSeeOther)
	})

	if deps.LoginHandler != nil {
		deps.LoginHandler.Register(app)
	}

	// Use the provided session gate, or a no-op if nil.
	sessionGate := deps.SessionGate
	if sessionGate == nil {
		sessionGate = func(c *fiber.Ctx) error { return c.Next() }
	}

	admin := app.Group("/admin", sessionGate)
	admin.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/admin/dashboard", fiber.StatusSeeOther)
	})

	if deps.LoginHandler != nil {
		deps.LoginHandler.RegisterProtected(admin)
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(admin)
	}
	if deps.CourseHandler != nil {
		deps.CourseHandler.Register(admin)
	}
	if deps.EnrollmentHandler != nil {
		deps.EnrollmentHandler.Register(admin)
	}
	if deps.ResultHandler != nil {
		deps.ResultHandler.Register(admin)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.Register(admin)
	}
	if deps.StatsHandler != nil {
		deps.StatsHandler.Register(admin)
	}

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(admin)
	}
	if deps.ProgressHandler != nil {
		deps.ProgressHandler.Register(admin)
	}
}
