package dto

// CustomerUpdatedWebhook is the Superfiliate "customer_updated" payload.
// Only the fields the bridge acts on are decoded; the rest is ignored.
type CustomerUpdatedWebhook struct {
	Email      string `json:"email" validate:"required"`
	RewardCode string `json:"reward_code" validate:"required"`
}
