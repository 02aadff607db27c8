package httptransport

import "time"

// ScopeDTO is the wire form of a grant scope: all=true wins; otherwise the
// listed IDs form a specific set.
type ScopeDTO struct {
	All bool     `json:"all"`
	IDs []string `json:"ids,omitempty"`
}

// CapabilitiesDTO mirrors the four delegable capability flags.
type CapabilitiesDTO struct {
	CanPublish             bool `json:"can_publish"`
	CanViewData            bool `json:"can_view_data"`
	CanManageSubscriptions bool `json:"can_manage_subscriptions"`
	CanApproveDelegations  bool `json:"can_approve_delegations"`
}

// CreateGrantRequest creates a new access grant from the authenticated
// organization to the grantee.
type CreateGrantRequest struct {
	GranteeID    string          `json:"grantee_id"`
	AssetScope   ScopeDTO        `json:"asset_scope"`
	TypeScope    ScopeDTO        `json:"type_scope"`
	Capabilities CapabilitiesDTO `json:"capabilities"`
	ValidFrom    *time.Time      `json:"valid_from,omitempty"`
	ExpiresAt    *time.Time      `json:"expires_at,omitempty"`
}

// DecideGrantRequest approves or rejects a pending grant.
type DecideGrantRequest struct {
	Approve bool `json:"approve"`
}

// GrantResponse describes one access grant with its derived status.
type GrantResponse struct {
	GrantID      string          `json:"grant_id"`
	GrantorID    string          `json:"grantor_id"`
	GranteeID    string          `json:"grantee_id"`
	AssetScope   ScopeDTO        `json:"asset_scope"`
	TypeScope    ScopeDTO        `json:"type_scope"`
	Capabilities CapabilitiesDTO `json:"capabilities"`
	Status       string          `json:"status"`
	ValidFrom    time.Time       `json:"valid_from"`
	ExpiresAt    *time.Time      `json:"expires_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	ApprovedBy   *string         `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`
	RevokedAt    *time.Time      `json:"revoked_at,omitempty"`
}

type ListGrantsResponse struct {
	Grants []GrantResponse `json:"grants"`
}

// EffectiveCapabilitiesResponse carries the lazily evaluated capability set
// for a grant, optionally narrowed to one (asset, type) point.
type EffectiveCapabilitiesResponse struct {
	GrantID      string          `json:"grant_id"`
	AssetID      string          `json:"asset_id,omitempty"`
	TypeTag      string          `json:"type_tag,omitempty"`
	Capabilities CapabilitiesDTO `json:"capabilities"`
}

// ErrorResponse is the transport error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
