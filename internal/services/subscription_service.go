package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/dto"
)

const (
	pathSubscriptions          = "/subscriptions"
	pathSubscription           = "/subscription"
	pathSubscriptionDiscount   = "/subscription-discount-code"
	pathSubscriptionBillingTry = "/subscription-billing-attempt"
)

type SubscriptionService struct {
	client *SealClient
	now    func() time.Time
}

func NewSubscriptionService(client *SealClient) *SubscriptionService {
	return &SubscriptionService{client: client, now: time.Now}
}

func (s *SubscriptionService) Endpoint(path string) string {
	return s.client.Endpoint(path)
}

func (s *SubscriptionService) search(ctx context.Context, email string, withDetails bool) (*Response, error) {
	q := url.Values{}
	q.Set("query", email)
	if withDetails {
		q.Set("with-items", "true")
		q.Set("with-billing-attempts", "true")
	}
	return s.client.Call(ctx, http.MethodGet, pathSubscriptions+"?"+q.Encode(), nil, nil)
}

// FindActiveSubscriptionID looks up subscriptions for email and returns the
// first ACTIVE one. found is false when there is none.
func (s *SubscriptionService) FindActiveSubscriptionID(ctx context.Context, email string) (id int64, found bool, err error) {
	resp, err := s.search(ctx, email, false)
	if err != nil {
		return 0, false, err
	}
	if !resp.OK {
		return 0, false, newUpstreamError(resp, s.Endpoint(pathSubscriptions), nil)
	}

	id, found = PickActiveSubscriptionID(ParseSubscriptions(resp.Body))
	return id, found, nil
}

func (s *SubscriptionService) ApplyDiscountCode(ctx context.Context, subscriptionID int64, code string) error {
	payload := map[string]any{
		"subscription_id": subscriptionID,
		"action":          "apply",
		"discount_code":   code,
	}
	resp, err := s.client.Call(ctx, http.MethodPut, pathSubscriptionDiscount, payload, nil)
	if err != nil {
		return err
	}
	if !resp.OK {
		return newUpstreamError(resp, s.Endpoint(pathSubscriptionDiscount), payload)
	}
	slog.Info("discount code applied", "subscription_id", subscriptionID, "discount_code", code, "status", resp.Status)
	return nil
}

// ListByEmail returns the public projection of every subscription matching email.
func (s *SubscriptionService) ListByEmail(ctx context.Context, email string) ([]dto.SubscriptionResponse, error) {
	resp, err := s.search(ctx, email, true)
	if err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, newUpstreamError(resp, s.Endpoint(pathSubscriptions), nil)
	}

	now := s.now()
	records := ParseSubscriptions(resp.Body)
	out := make([]dto.SubscriptionResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ProjectSubscription(r, now))
	}
	return out, nil
}

func (s *SubscriptionService) SkipBillingAttempt(ctx context.Context, subscriptionID, attemptID int64) (json.RawMessage, error) {
	payload := map[string]any{
		"id":              attemptID,
		"subscription_id": subscriptionID,
		"action":          "skip",
	}
	resp, err := s.client.Call(ctx, http.MethodPut, pathSubscriptionBillingTry, payload, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, newUpstreamError(resp, s.Endpoint(pathSubscriptionBillingTry), payload)
	}
	return resp.Body, nil
}

// TransitionStatus sends pause, resume, cancel or reactivate for a subscription.
func (s *SubscriptionService) TransitionStatus(ctx context.Context, id int64, action string) (json.RawMessage, error) {
	payload := dto.StatusTransitionPayload{ID: id, Action: action}
	resp, err := s.client.Call(ctx, http.MethodPut, pathSubscription, payload, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, newUpstreamError(resp, s.Endpoint(pathSubscription), payload)
	}
	return resp.Body, nil
}
