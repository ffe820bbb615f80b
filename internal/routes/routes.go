package routes

import (
	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/config"
	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// SetupBridge mounts the webhook bridge routes.
func SetupBridge(
	app *fiber.App,
	healthHandler *handlers.HealthHandler,
	webhookHandler *handlers.WebhookHandler,
) {
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Check)

	// Webhooks are trusted as received (no signature scheme on the sender side)
	webhooks := app.Group("/webhooks")
	webhooks.Post("/superfiliate/customer_updated", webhookHandler.HandleCustomerUpdated)
}

// SetupProxy mounts the bearer-protected proxy API.
func SetupProxy(
	app *fiber.App,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
) {
	app.Get("/", healthHandler.Check)
	app.Get("/health", healthHandler.Check)

	api := app.Group("/api", middleware.CORS(cfg), middleware.BearerAuth(cfg.BridgeBearer))
	api.Get("/subscriptions", subscriptionHandler.List)
	api.Put("/subscription/:subscriptionId/skip/:attemptId", subscriptionHandler.SkipBillingAttempt)
	api.Put("/subscription/:id", subscriptionHandler.UpdateStatus)
}
