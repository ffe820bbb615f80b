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

const serviceName = "seal-proxy-api"

func main() {
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
	if cfg.BridgeBearer == "" {
		slog.Warn("BRIDGE_BEARER is not set; every /api request will be rejected with 401")
	}

	sealClient := services.NewSealClient(cfg)
	subscriptionService := services.NewSubscriptionService(sealClient)

	healthHandler := handlers.NewHealthHandler(serviceName, "Seal proxy API is running", cfg)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)

	app := server.NewApp(sentryEnabled)
	routes.SetupProxy(app, cfg, healthHandler, subscriptionHandler)

	server.Run(app, cfg, serviceName)
}
