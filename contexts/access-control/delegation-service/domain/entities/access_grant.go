package entities

import "time"

// GrantStatus is the state machine position of an access grant. Expired is
// derived from ExpiresAt at query time, never stored.
type GrantStatus string

const (
	GrantPendingApproval GrantStatus = "pending_approval"
	GrantActive          GrantStatus = "active"
	GrantRejected        GrantStatus = "rejected"
	GrantRevoked         GrantStatus = "revoked"
	GrantExpired         GrantStatus = "expired"
)

// AccessGrant is the unifying delegation primitive: a scoped, capability
// flagged, time-bounded transfer of rights from grantor to grantee. Legacy
// Delegation and PublishingRight records normalize into this shape.
type AccessGrant struct {
	GrantID      string       `json:"grant_id"`
	GrantorID    string       `json:"grantor_id"`
	GranteeID    string       `json:"grantee_id"`
	AssetScope   Scope        `json:"asset_scope"`
	TypeScope    Scope        `json:"type_scope"`
	Capabilities Capabilities `json:"capabilities"`
	Status       GrantStatus  `json:"status"`
	ValidFrom    time.Time    `json:"valid_from"`
	ExpiresAt    *time.Time   `json:"expires_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	ApprovedBy   *string      `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time   `json:"approved_at,omitempty"`
	RevokedAt    *time.Time   `json:"revoked_at,omitempty"`
}

// IsLive reports whether the grant confers rights at the given instant.
// Expiry is recomputed on every read; no live verdict is cached.
func (g AccessGrant) IsLive(now time.Time) bool {
	if g.Status != GrantActive {
		return false
	}
	if now.Before(g.ValidFrom) {
		return false
	}
	if g.ExpiresAt != nil && !now.Before(*g.ExpiresAt) {
		return false
	}
	return true
}

// EffectiveStatus derives Expired for display; all other statuses pass through.
func (g AccessGrant) EffectiveStatus(now time.Time) GrantStatus {
	if g.Status == GrantActive && g.ExpiresAt != nil && !now.Before(*g.ExpiresAt) {
		return GrantExpired
	}
	return g.Status
}

// MatchesScope requires both the asset and the type tag to fall inside the
// grant's scopes. An unknown type tag simply does not match.
func (g AccessGrant) MatchesScope(assetID string, typeTag string) bool {
	return g.AssetScope.Contains(assetID) && g.TypeScope.Contains(typeTag)
}

// IsTerminal reports whether the status admits no further transition.
func (s GrantStatus) IsTerminal() bool {
	return s == GrantRejected || s == GrantRevoked || s == GrantExpired
}
