package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/apps/articles"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/apps/games"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/events"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBDriver != "sqlite" && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.MigrateShared(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Reference tables must exist before any game is served.
	if err := catalog.Seed(database.DB); err != nil {
		slog.Error("catalog seed failed", "error", err)
		os.Exit(1)
	}
	cat, err := catalog.Load(database.DB)
	if err != nil {
		slog.Error("catalog load failed", "error", err)
		os.Exit(1)
	}

	// ERROR+ records also go to system_logs
	dbLogHandler := logging.NewDBHandler(database.DB, 5*time.Second)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		dbLogHandler,
	)))

	cleanup, err := logging.StartCleanup(database.DB, cfg.LogCleanupSchedule, cfg.LogRetentionDays)
	if err != nil {
		slog.Error("log cleanup not scheduled", "error", err)
		os.Exit(1)
	}

	// Events
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			slog.Error("nats unavailable, events disabled", "url", cfg.NATSURL, "error", err)
		} else {
			publisher = natsPublisher
			slog.Info("publishing events to nats", "url", cfg.NATSURL, "prefix", cfg.NATSSubject)
		}
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	commentService := services.NewCommentService(database.DB, publisher, cfg.CommentMaxLength)
	staffPolicy := services.NewStaffPolicy(cfg)

	// Handlers
	commentHandler := handlers.NewCommentHandler(commentService, cfg.LoginURL)
	h := routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Health:     handlers.NewHealthHandler(database.Ping, cat),
		Catalog:    handlers.NewCatalogHandler(cat),
		Comments:   commentHandler,
		Moderation: handlers.NewModerationHandler(commentService),
	}

	plugins := []apps.Plugin{
		games.New(cat, publisher, commentHandler),
		articles.New(commentHandler),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, database.DB, authService, staffPolicy, h, plugins)
	for _, p := range plugins {
		slog.Info("plugin registered", "plugin", p.ID())
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	<-cleanup.Stop().Done()
	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	publisher.Close()
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
