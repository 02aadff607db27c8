package entities

import "time"

// Action is the closed set of operations an access check can ask about.
type Action string

const (
	ActionPublish             Action = "publish"
	ActionViewData            Action = "view_data"
	ActionManageSubscriptions Action = "manage_subscriptions"
	ActionApproveDelegations  Action = "approve_delegations"
)

// IsValid reports whether the action is one of the known operations.
func (a Action) IsValid() bool {
	switch a {
	case ActionPublish, ActionViewData, ActionManageSubscriptions, ActionApproveDelegations:
		return true
	}
	return false
}

// Decision is the total outcome of an access check. Absence of access is a
// denial with a reason, never an error.
type Decision struct {
	Allowed   bool      `json:"allowed"`
	Reason    string    `json:"reason"`
	CheckedAt time.Time `json:"checked_at"`
}

// Deny reasons returned by the resolver. They describe the relationship (or
// lack of one) that produced the verdict.
const (
	ReasonPlatformAdmin      = "platform administrator"
	ReasonAssetManager       = "asset manager"
	ReasonActiveSubscription = "active subscription"
	ReasonDelegatedGrant     = "delegated grant"
	ReasonAssetNotFound      = "asset not found"
	ReasonNoRelationship     = "no matching grant or direct relationship"
	ReasonUnknownAction      = "unknown action"
)
