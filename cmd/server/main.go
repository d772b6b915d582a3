package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/ddka-tech/ddka-backend/internal/activity"
	"github.com/ddka-tech/ddka-backend/internal/config"
	"github.com/ddka-tech/ddka-backend/internal/database"
	"github.com/ddka-tech/ddka-backend/internal/geo"
	"github.com/ddka-tech/ddka-backend/internal/handlers"
	"github.com/ddka-tech/ddka-backend/internal/logging"
	"github.com/ddka-tech/ddka-backend/internal/mailer"
	"github.com/ddka-tech/ddka-backend/internal/middleware"
	"github.com/ddka-tech/ddka-backend/internal/routes"
	"github.com/ddka-tech/ddka-backend/internal/services"
	"github.com/ddka-tech/ddka-backend/internal/settings"
	"github.com/ddka-tech/ddka-backend/internal/uploads"
	"github.com/ddka-tech/ddka-backend/internal/verify"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewFanout(logging.StdoutHandler(), pgLogHandler)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Geolocation collaborators for the login activity trail
	locator := geo.OpenMaxMind(cfg.GeoIPDatabasePath)
	defer locator.Close()
	geocoder := geo.NewHTTPReverseGeocoder(cfg.ReverseGeocodeURL, cfg.GeoTimeout)
	recorder := activity.NewRecorder(activity.NewGormStore(database.DB), locator, geocoder)

	// Outbound collaborators
	notifier := mailer.NewNotifier(
		mailer.FromConfig(cfg.EmailEnabled, cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPass),
		cfg.FrontendURL,
	)
	uploader, err := uploads.NewCloudinaryUploader(cfg.CloudinaryURL)
	if err != nil {
		slog.Error("cloudinary init failed", "error", err)
		os.Exit(1)
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg, recorder)
	adminService := services.NewAdminService(database.DB, cfg, recorder)
	playerService := services.NewPlayerService(database.DB, cfg, uploader, notifier)
	institutionService := services.NewInstitutionService(database.DB, uploader, notifier)
	officialService := services.NewOfficialService(database.DB, cfg, uploader, notifier)
	donationService := services.NewDonationService(database.DB, uploader, notifier)
	bulkEmailService := services.NewBulkEmailService(database.DB, notifier)
	lookupService := verify.NewService(verify.NewStore(database.DB, cfg.RegistrationCodePrefix), cfg.RegistrationCodePrefix)
	settingsService := settings.NewService(settings.NewGormStore(database.DB), cfg.SettingsCacheTTL)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	routes.Setup(app, cfg, database.DB, &routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService, cfg),
		Admin:       handlers.NewAdminHandler(adminService),
		Player:      handlers.NewPlayerHandler(playerService),
		Institution: handlers.NewInstitutionHandler(institutionService),
		Official:    handlers.NewOfficialHandler(officialService),
		Donation:    handlers.NewDonationHandler(donationService),
		Verify:      handlers.NewVerifyHandler(lookupService),
		Content:     handlers.NewContentHandler(database.DB, uploader),
		Settings:    handlers.NewSettingsHandler(settingsService),
		BulkEmail:   handlers.NewBulkEmailHandler(bulkEmailService),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

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

	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
