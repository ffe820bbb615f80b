package dto

import "encoding/json"

type SubscriptionResponse struct {
	ID                 int64               `json:"id"`
	SubscriptionID     int64               `json:"subscription_id"`
	Status             string              `json:"status"`
	Items              []SubscriptionItem  `json:"items"`
	Discounts          []json.RawMessage   `json:"discounts"`
	BillingAttempts    []BillingAttempt    `json:"billing_attempts"`
	NextBillingAttempt *NextBillingAttempt `json:"next_billing_attempt"`
}

type SubscriptionItem struct {
	Title string `json:"title"`
	Qty   int64  `json:"qty"`
	ID    int64  `json:"id"`
}

type BillingAttempt struct {
	ID          int64   `json:"id"`
	Date        *string `json:"date"`
	Status      *string `json:"status"`
	OrderID     *int64  `json:"order_id"`
	CompletedAt *string `json:"completed_at"`
}

type NextBillingAttempt struct {
	ID     int64   `json:"id"`
	Date   *string `json:"date"`
	Status string  `json:"status"`
}

type SubscriptionListResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
	Error         *ProxyError            `json:"error,omitempty"`
}

type SkipBillingAttemptResponse struct {
	OK               bool            `json:"ok"`
	SubscriptionID   int64           `json:"subscription_id"`
	BillingAttemptID int64           `json:"billing_attempt_id"`
	Result           json.RawMessage `json:"result"`
}

// StatusTransitionBody is the incoming body; action may arrive as any JSON type.
type StatusTransitionBody struct {
	Action any `json:"action"`
}

type StatusTransitionRequest struct {
	Action string `json:"action" validate:"required,oneof=pause resume cancel reactivate"`
}

// StatusTransitionPayload is the body sent to Seal's /subscription endpoint.
type StatusTransitionPayload struct {
	ID     int64  `json:"id"`
	Action string `json:"action"`
}
