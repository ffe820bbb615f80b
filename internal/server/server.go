package server

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/config"
	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/dto"
	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/logging"
	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/middleware"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// SetupObservability installs the JSON logger and, when SENTRY_DSN is set,
// Sentry error tracking. It reports whether Sentry is active.
func SetupObservability(cfg *config.Config, service string) bool {
	logging.Setup(cfg.LogLevel)

	if cfg.SentryDSN == "" {
		return false
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		EnableTracing:    true,
		TracesSampleRate: 0.2,
		Environment:      cfg.AppEnv,
		ServerName:       service,
	}); err != nil {
		slog.Error("sentry init failed", "error", err)
		return false
	}

	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewStdoutHandler(cfg.LogLevel),
		logging.NewSentryHandler(),
	)))
	return true
}

// CheckSealToken logs whether the Seal credential is present. It returns an
// error only when the deployment asked for a hard requirement.
func CheckSealToken(cfg *config.Config) error {
	if cfg.SealTokenConfigured() {
		slog.Info("SEAL_MERCHANT_TOKEN is configured")
		return nil
	}
	if cfg.SealRequireToken {
		_, err := cfg.SealCredential()
		return err
	}
	slog.Warn("SEAL_MERCHANT_TOKEN not found in environment; the server will start but Seal API calls will fail until it is set")
	return nil
}

func NewApp(sentryEnabled bool) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             1 * 1024 * 1024,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	if sentryEnabled {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.SecurityHeaders())
	return app
}

// ErrorHandler maps errors that escape a handler. 5xx details are logged,
// never returned.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}

// Run listens on cfg.Port until SIGINT/SIGTERM, then shuts down within
// cfg.ShutdownTimeout.
func Run(app *fiber.App, cfg *config.Config, service string) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "service", service, "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "service", service, "port", cfg.Port, "error", err)
			os.Exit(1)
		}
	}()

	sig := <-quit
	slog.Info("shutting down server...", "signal", sig.String())

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	sentry.Flush(2 * time.Second)

	slog.Info("server stopped", "service", service)
}
