package services

import (
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/dto"
)

var attemptTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseAttemptTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range attemptTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// isUpcoming: status blank or "pending" (case-insensitive), or a timestamp
// strictly after now.
func isUpcoming(a dto.BillingAttempt, now time.Time) bool {
	status := ""
	if a.Status != nil {
		status = strings.ToLower(strings.TrimSpace(*a.Status))
	}
	if status == "" || status == "pending" {
		return true
	}
	if a.Date == nil {
		return false
	}
	t, ok := parseAttemptTime(*a.Date)
	return ok && t.After(now)
}

// sortKey places attempts without a usable timestamp at the Unix epoch.
func sortKey(a dto.BillingAttempt) time.Time {
	if a.Date != nil {
		if t, ok := parseAttemptTime(*a.Date); ok {
			return t
		}
	}
	return time.Unix(0, 0).UTC()
}

// NextBillingAttempt picks the earliest upcoming attempt, or nil.
func NextBillingAttempt(attempts []dto.BillingAttempt, now time.Time) *dto.NextBillingAttempt {
	upcoming := make([]dto.BillingAttempt, 0, len(attempts))
	for _, a := range attempts {
		if isUpcoming(a, now) {
			upcoming = append(upcoming, a)
		}
	}
	if len(upcoming) == 0 {
		return nil
	}

	slices.SortStableFunc(upcoming, func(a, b dto.BillingAttempt) int {
		return sortKey(a).Compare(sortKey(b))
	})

	first := upcoming[0]
	status := "pending"
	if first.Status != nil && *first.Status != "" {
		status = *first.Status
	}
	return &dto.NextBillingAttempt{
		ID:     first.ID,
		Date:   first.Date,
		Status: status,
	}
}

func projectBillingAttempt(b BillingAttempt) dto.BillingAttempt {
	out := dto.BillingAttempt{ID: int64(b.ID)}
	if d := b.Date(); d != "" {
		out.Date = &d
	}
	if b.Status != "" {
		s := string(b.Status)
		out.Status = &s
	}
	if b.OrderID != 0 {
		id := int64(b.OrderID)
		out.OrderID = &id
	}
	if b.CompletedAt != "" {
		c := string(b.CompletedAt)
		out.CompletedAt = &c
	}
	return out
}

// ProjectSubscription maps a Seal record to the public proxy shape.
func ProjectSubscription(s Subscription, now time.Time) dto.SubscriptionResponse {
	items := make([]dto.SubscriptionItem, 0, len(s.Items))
	for _, i := range s.Items {
		items = append(items, dto.SubscriptionItem{
			Title: string(i.Title),
			Qty:   int64(i.Quantity),
			ID:    int64(i.ID),
		})
	}

	attempts := make([]dto.BillingAttempt, 0, len(s.BillingAttempts))
	for _, b := range s.BillingAttempts {
		attempts = append(attempts, projectBillingAttempt(b))
	}

	discounts := s.DiscountCodes
	if discounts == nil {
		discounts = []json.RawMessage{}
	}

	return dto.SubscriptionResponse{
		ID:                 int64(s.ID),
		SubscriptionID:     int64(s.ID),
		Status:             string(s.Status),
		Items:              items,
		Discounts:          discounts,
		BillingAttempts:    attempts,
		NextBillingAttempt: NextBillingAttempt(attempts, now),
	}
}
