package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// FlexID decodes a numeric identifier sent either as a JSON number or as a
// numeric string. Anything else decodes to zero.
type FlexID int64

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = FlexID(n)
		return nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexID(int64(n))
		return nil
	}
	*f = 0
	return nil
}

// FlexString decodes strings and tolerates null or scalar values.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(strings.Trim(string(data), `"`))
	return nil
}

// Subscription is a Seal subscription record reduced to the fields this
// service reads.
type Subscription struct {
	ID              FlexID             `json:"id"`
	Status          FlexString         `json:"status"`
	Items           []SubscriptionItem `json:"items"`
	DiscountCodes   []json.RawMessage  `json:"discount_codes"`
	BillingAttempts []BillingAttempt   `json:"billing_attempts"`
}

type SubscriptionItem struct {
	ID       FlexID     `json:"id"`
	Title    FlexString `json:"title"`
	Quantity FlexID     `json:"quantity"`
}

// BillingAttempt is a scheduled or completed charge. Seal has used several
// keys for the attempt timestamp; Date resolves them in priority order.
type BillingAttempt struct {
	ID          FlexID     `json:"id"`
	Status      FlexString `json:"status"`
	OrderID     FlexID     `json:"order_id"`
	CompletedAt FlexString `json:"completed_at"`

	RawDate     FlexString `json:"date"`
	DateTime    FlexString `json:"date_time"`
	Datetime    FlexString `json:"datetime"`
	ScheduledAt FlexString `json:"scheduled_at"`
}

func (b BillingAttempt) Date() string {
	for _, v := range []FlexString{b.RawDate, b.DateTime, b.Datetime, b.ScheduledAt} {
		if v != "" {
			return string(v)
		}
	}
	return ""
}

// subscriptionEnvelope covers the list shapes Seal has returned.
type subscriptionEnvelope struct {
	Payload       json.RawMessage `json:"payload"`
	Subscriptions json.RawMessage `json:"subscriptions"`
}

// ParseSubscriptions extracts the subscription list from a Seal response
// body. Accepted shapes, in order: payload.subscriptions[], subscriptions[],
// payload[]. Any other shape yields an empty list.
func ParseSubscriptions(body json.RawMessage) []Subscription {
	var env subscriptionEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return []Subscription{}
	}

	var nested struct {
		Subscriptions json.RawMessage `json:"subscriptions"`
	}
	if isJSONObject(env.Payload) && json.Unmarshal(env.Payload, &nested) == nil {
		if list, ok := decodeSubscriptionList(nested.Subscriptions); ok {
			return list
		}
	}
	if list, ok := decodeSubscriptionList(env.Subscriptions); ok {
		return list
	}
	if list, ok := decodeSubscriptionList(env.Payload); ok {
		return list
	}
	return []Subscription{}
}

func decodeSubscriptionList(raw json.RawMessage) ([]Subscription, bool) {
	if !isJSONArray(raw) {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}
	list := make([]Subscription, 0, len(elems))
	for _, elem := range elems {
		var sub Subscription
		if !isJSONObject(elem) {
			list = append(list, sub)
			continue
		}
		if err := json.Unmarshal(elem, &sub); err != nil {
			// A mistyped field leaves the rest of the record decoded.
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				sub = Subscription{}
			}
		}
		list = append(list, sub)
	}
	return list, true
}

func isJSONArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func isJSONObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// PickActiveSubscriptionID returns the id of the first subscription whose
// status is exactly "ACTIVE". A match without a usable id counts as none.
func PickActiveSubscriptionID(subs []Subscription) (int64, bool) {
	for _, sub := range subs {
		if sub.Status == "ACTIVE" {
			return int64(sub.ID), sub.ID != 0
		}
	}
	return 0, false
}
