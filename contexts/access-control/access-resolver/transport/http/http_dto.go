package httptransport

import "time"

// CheckAccessResponse is the verdict for one (actor, asset, action) check.
type CheckAccessResponse struct {
	Allowed   bool      `json:"allowed"`
	Reason    string    `json:"reason"`
	CheckedAt time.Time `json:"checked_at"`
}

// VisibleSubscribersResponse lists the subscriber identities the actor may see.
type VisibleSubscribersResponse struct {
	AssetID     string   `json:"asset_id"`
	Subscribers []string `json:"subscribers"`
}

// ErrorResponse is the transport error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
