package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/dto"
	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/services"
	"github.com/gofiber/fiber/v2"
)

// SubscriptionHandler serves the proxy API. Business failures are reported
// as HTTP 200 with an "error" object; callers inspect that field.
type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// List handles GET /api/subscriptions?email=...
func (h *SubscriptionHandler) List(c *fiber.Ctx) error {
	defer recoverBridgeException(c, true)

	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return c.JSON(dto.SubscriptionListResponse{
			Subscriptions: []dto.SubscriptionResponse{},
			Error:         &dto.ProxyError{Reason: dto.ReasonMissingEmail},
		})
	}

	subs, err := h.subscriptionService.ListByEmail(c.UserContext(), email)
	if err != nil {
		return c.JSON(dto.SubscriptionListResponse{
			Subscriptions: []dto.SubscriptionResponse{},
			Error:         proxyError(err, "list subscriptions"),
		})
	}
	return c.JSON(dto.SubscriptionListResponse{Subscriptions: subs})
}

// SkipBillingAttempt handles PUT /api/subscription/:subscriptionId/skip/:attemptId
func (h *SubscriptionHandler) SkipBillingAttempt(c *fiber.Ctx) error {
	defer recoverBridgeException(c, false)

	subscriptionID, ok := parsePositiveID(c.Params("subscriptionId"))
	if !ok {
		return badRequest(c, services.ErrInvalidSubscriptionID)
	}
	attemptID, ok := parsePositiveID(c.Params("attemptId"))
	if !ok {
		return badRequest(c, services.ErrInvalidBillingAttemptID)
	}

	result, err := h.subscriptionService.SkipBillingAttempt(c.UserContext(), subscriptionID, attemptID)
	if err != nil {
		return c.JSON(dto.ProxyErrorEnvelope{Error: proxyError(err, "skip billing attempt")})
	}

	return c.JSON(dto.SkipBillingAttemptResponse{
		OK:               true,
		SubscriptionID:   subscriptionID,
		BillingAttemptID: attemptID,
		Result:           result,
	})
}

// UpdateStatus handles PUT /api/subscription/:id with {"action": "..."}.
func (h *SubscriptionHandler) UpdateStatus(c *fiber.Ctx) error {
	defer recoverBridgeException(c, false)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		id = 0
	}

	var raw dto.StatusTransitionBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&raw); err != nil {
			raw = dto.StatusTransitionBody{}
		}
	}
	req := dto.StatusTransitionRequest{Action: strings.ToLower(actionText(raw.Action))}

	if id == 0 || req.Action == "" {
		return badRequest(c, services.ErrMissingIDOrAction)
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, services.ErrInvalidAction)
	}

	body, err := h.subscriptionService.TransitionStatus(c.UserContext(), id, req.Action)
	if err != nil {
		pe := proxyError(err, "update subscription status")
		if pe.Reason == dto.ReasonUpstreamError {
			var upErr *services.UpstreamError
			if errors.As(err, &upErr) {
				pe.AttemptedEndpoint = upErr.Endpoint
				pe.RequestPayload = upErr.Payload
			}
		}
		return c.JSON(dto.ProxyErrorEnvelope{Error: pe})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(body)
}

// actionText renders a loosely typed action: false, 0, null and missing
// are empty, other scalars use their text form.
func actionText(v any) string {
	switch a := v.(type) {
	case nil:
		return ""
	case string:
		return a
	case bool:
		if !a {
			return ""
		}
		return "true"
	case float64:
		if a == 0 {
			return ""
		}
		return strconv.FormatFloat(a, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(a))
		for _, elem := range a {
			switch e := elem.(type) {
			case nil:
				parts = append(parts, "")
			case bool:
				parts = append(parts, strconv.FormatBool(e))
			case float64:
				parts = append(parts, strconv.FormatFloat(e, 'f', -1, 64))
			case string:
				parts = append(parts, e)
			default:
				parts = append(parts, actionText(e))
			}
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

func parsePositiveID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.MessageError{Error: err.Error()})
}

func proxyError(err error, op string) *dto.ProxyError {
	var upErr *services.UpstreamError
	if errors.As(err, &upErr) {
		slog.Warn("seal returned an error", "op", op, "status", upErr.Status, "endpoint", upErr.Endpoint)
		return &dto.ProxyError{
			Reason: dto.ReasonUpstreamError,
			Status: upErr.Status,
			Body:   upErr.Body,
		}
	}

	if services.IsConfigurationError(err) {
		slog.Error("configuration error in proxy request", "op", op, "error", err)
	} else {
		slog.Error("proxy request failed", "op", op, "error", err)
	}
	return &dto.ProxyError{Reason: dto.ReasonBridgeException, Message: err.Error()}
}

// recoverBridgeException turns a panic into a 200 bridge_exception response.
func recoverBridgeException(c *fiber.Ctx, withSubscriptions bool) {
	r := recover()
	if r == nil {
		return
	}
	msg := fmt.Sprint(r)
	slog.Error("proxy handler panic", "path", c.Path(), "panic", msg)

	pe := &dto.ProxyError{Reason: dto.ReasonBridgeException, Message: msg}
	if withSubscriptions {
		_ = c.Status(fiber.StatusOK).JSON(dto.SubscriptionListResponse{
			Subscriptions: []dto.SubscriptionResponse{},
			Error:         pe,
		})
		return
	}
	_ = c.Status(fiber.StatusOK).JSON(dto.ProxyErrorEnvelope{Error: pe})
}
