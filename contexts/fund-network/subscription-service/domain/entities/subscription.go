package entities

import "time"

// SubscriptionStatus is the state machine position of a subscription.
type SubscriptionStatus string

const (
	SubscriptionPendingInvitation SubscriptionStatus = "pending_invitation"
	SubscriptionPendingRequest    SubscriptionStatus = "pending_request"
	SubscriptionActive            SubscriptionStatus = "active"
	SubscriptionDeclined          SubscriptionStatus = "declined"
)

// Subscription binds a subscriber organization to an asset. An active
// subscription implicitly grants view capability on the asset's data packets.
type Subscription struct {
	SubscriptionID     string             `json:"subscription_id"`
	AssetID            string             `json:"asset_id"`
	SubscriberID       string             `json:"subscriber_id"`
	Status             SubscriptionStatus `json:"status"`
	CommitmentAmount   *float64           `json:"commitment_amount,omitempty"`
	CommitmentCurrency string             `json:"commitment_currency,omitempty"`
	AccessLevel        string             `json:"access_level,omitempty"`
	CreatedBy          string             `json:"created_by"`
	CreatedAt          time.Time          `json:"created_at"`
	RespondedAt        *time.Time         `json:"responded_at,omitempty"`
}

// IsPending reports whether the subscription awaits a counterparty response.
func (s Subscription) IsPending() bool {
	return s.Status == SubscriptionPendingInvitation || s.Status == SubscriptionPendingRequest
}
