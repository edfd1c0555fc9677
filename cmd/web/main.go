package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hvmanh/ttms-web/internal/backend"
	"github.com/hvmanh/ttms-web/internal/config"
	"github.com/hvmanh/ttms-web/internal/handler"
	"github.com/hvmanh/ttms-web/internal/middleware"
	"github.com/hvmanh/ttms-web/internal/router"
	"github.com/hvmanh/ttms-web/internal/session"
	"github.com/hvmanh/ttms-web/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	redisClient, err := session.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	store := session.NewStore(redisClient, cfg.SessionTTL, logger)
	api := backend.New(backend.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.RequestTimeout,
	}, logger)
	validate := validator.New(validator.WithRequiredStructEnabled())

	loginHandler := handler.NewLoginHandler(api, store, cfg, validate, logger)
	dashboardHandler := handler.NewDashboardHandler(api, store, logger)
	studentHandler := handler.NewStudentHandler(api, store, validate, logger)
	progressHandler := handler.NewProgressHandler(api, store, logger)
	courseHandler := handler.NewCourseHandler(api, store, validate, logger)
	enrollmentHandler := handler.NewEnrollmentHandler(api, store, validate, logger)
	resultHandler := handler.NewResultHandler(api, store, validate, logger)
	accountHandler := handler.NewAccountHandler(api, store, validate, logger)
	statsHandler := handler.NewStatsHandler(api, store, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		Views:        view.Engine(),
		ErrorHandler: handler.NewErrorHandler(store, cfg.CookieName, logger),
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		LoginHandler:      loginHandler,
		DashboardHandler:  dashboardHandler,
		StudentHandler:    studentHandler,
		ProgressHandler:   progressHandler,
		CourseHandler:     courseHandler,
		EnrollmentHandler: enrollmentHandler,
		ResultHandler:     resultHandler,
		AccountHandler:    accountHandler,
		StatsHandler:      statsHandler,
		SessionGate:       middleware.RequireSession(store, cfg.CookieName, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
