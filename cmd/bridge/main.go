package main

import (
	"log/slog"
	"os"

	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/config"
	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/routes"
	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/server"
	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/services"
	"github.com/joho/godotenv"
)

const serviceName = "superfiliate-seal-bridge"

func main() {
	// .env never overrides variables already set by the process manager
	envErr := godotenv.Load()

	cfg := config.Load()
	sentryEnabled := server.SetupObservability(cfg, serviceName)
	if envErr != nil {
		slog.Debug("no .env file loaded", "error", envErr)
	}

	if err := server.CheckSealToken(cfg); err != nil {
		slog.Error("refusing to start", "error", err)
		os.Exit(1)
	}

	// Services
	sealClient := services.NewSealClient(cfg)
	subscriptionService := services.NewSubscriptionService(sealClient)

	// Handlers
	healthHandler := handlers.NewHealthHandler(serviceName, "Superfiliate → Seal bridge is running ✅", cfg)
	webhookHandler := handlers.NewWebhookHandler(subscriptionService)

	app := server.NewApp(sentryEnabled)
	routes.SetupBridge(app, healthHandler, webhookHandler)

	server.Run(app, cfg, serviceName)
}
