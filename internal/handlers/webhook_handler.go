package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/dto"
	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/services"
	"github.com/gofiber/fiber/v2"
)

type WebhookHandler struct {
	subscriptionService *services.SubscriptionService
}

func NewWebhookHandler(subscriptionService *services.SubscriptionService) *WebhookHandler {
	return &WebhookHandler{subscriptionService: subscriptionService}
}

// HandleCustomerUpdated applies a Superfiliate reward code to the customer's
// active Seal subscription. Payloads that cannot be acted on are acknowledged
// with 200 so the sender does not retry them.
func (h *WebhookHandler) HandleCustomerUpdated(c *fiber.Ctx) error {
	var event dto.CustomerUpdatedWebhook
	if err := c.BodyParser(&event); err != nil {
		slog.Warn("customer_updated payload could not be decoded", "error", err, "body", string(c.Body()))
		return c.SendStatus(fiber.StatusOK)
	}

	slog.Info("superfiliate webhook received", "topic", "customer_updated", "email", event.Email)

	if err := validate.Struct(event); err != nil {
		slog.Warn("missing email or reward code in webhook payload", "body", string(c.Body()))
		return c.SendStatus(fiber.StatusOK)
	}

	ctx := c.UserContext()
	subscriptionID, found := h.findActiveSubscription(c, event.Email)
	if !found {
		slog.Warn("no active seal subscription found, not applying code", "email", event.Email)
		return c.SendStatus(fiber.StatusOK)
	}

	if err := h.subscriptionService.ApplyDiscountCode(ctx, subscriptionID, event.RewardCode); err != nil {
		if services.IsConfigurationError(err) {
			slog.Error("configuration error while applying reward code", "error", err)
		} else {
			slog.Error("failed to apply reward code",
				"email", event.Email, "subscription_id", subscriptionID, "reward_code", event.RewardCode, "error", err)
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	slog.Info("reward code applied",
		"email", event.Email, "subscription_id", subscriptionID, "reward_code", event.RewardCode)
	return c.SendStatus(fiber.StatusOK)
}

// findActiveSubscription treats every lookup failure as "no subscription".
func (h *WebhookHandler) findActiveSubscription(c *fiber.Ctx, email string) (int64, bool) {
	id, found, err := h.subscriptionService.FindActiveSubscriptionID(c.UserContext(), email)
	if err != nil {
		if services.IsConfigurationError(err) {
			slog.Error("configuration error while looking up subscriptions", "error", err)
		} else {
			slog.Error("error fetching seal subscriptions", "email", email, "error", err)
		}
		return 0, false
	}
	slog.Info("seal subscription lookup", "email", email, "subscription_id", id, "found", found)
	return id, found
}
