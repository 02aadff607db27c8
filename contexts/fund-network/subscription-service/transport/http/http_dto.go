package httptransport

import "time"

// InviteSubscriberRequest is issued by the asset's manager.
type InviteSubscriberRequest struct {
	AssetID            string   `json:"asset_id"`
	SubscriberID       string   `json:"subscriber_id"`
	CommitmentAmount   *float64 `json:"commitment_amount,omitempty"`
	CommitmentCurrency string   `json:"commitment_currency,omitempty"`
	AccessLevel        string   `json:"access_level,omitempty"`
}

// RequestAccessRequest is issued by a would-be subscriber.
type RequestAccessRequest struct {
	AssetID     string `json:"asset_id"`
	AccessLevel string `json:"access_level,omitempty"`
}

// RespondRequest accepts or declines a pending subscription.
type RespondRequest struct {
	Accept bool `json:"accept"`
}

// SubscriptionResponse describes one subscription.
type SubscriptionResponse struct {
	SubscriptionID     string     `json:"subscription_id"`
	AssetID            string     `json:"asset_id"`
	SubscriberID       string     `json:"subscriber_id"`
	Status             string     `json:"status"`
	CommitmentAmount   *float64   `json:"commitment_amount,omitempty"`
	CommitmentCurrency string     `json:"commitment_currency,omitempty"`
	AccessLevel        string     `json:"access_level,omitempty"`
	CreatedBy          string     `json:"created_by"`
	CreatedAt          time.Time  `json:"created_at"`
	RespondedAt        *time.Time `json:"responded_at,omitempty"`
}

type ListSubscriptionsResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
}

// ErrorResponse is the transport error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
