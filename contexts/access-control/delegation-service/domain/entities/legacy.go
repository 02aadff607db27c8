package entities

import "time"

// LegacyDelegation is the pre-unification delegation row: a view/manage grant
// over an explicit asset list, kept only for backward compatibility.
type LegacyDelegation struct {
	DelegationID string
	FromOrgID    string
	ToOrgID      string
	AssetIDs     []string
	IsActive     bool
	CreatedAt    time.Time
	ExpiresAt    *time.Time
}

// LegacyPublishingRight is the pre-unification publish grant for one asset and
// an explicit data-type list.
type LegacyPublishingRight struct {
	RightID   string
	GrantorID string
	ToOrgID   string
	AssetID   string
	DataTypes []string
	IsActive  bool
	CreatedAt time.Time
	ExpiresAt *time.Time
}

// FromLegacyDelegation normalizes a legacy delegation into the canonical
// AccessGrant shape. There is a single authorization path afterwards.
func FromLegacyDelegation(d LegacyDelegation) AccessGrant {
	status := GrantRevoked
	if d.IsActive {
		status = GrantActive
	}
	return AccessGrant{
		GrantID:    "legacy-delegation-" + d.DelegationID,
		GrantorID:  d.FromOrgID,
		GranteeID:  d.ToOrgID,
		AssetScope: SpecificScope(d.AssetIDs...),
		TypeScope:  AllScope(),
		Capabilities: Capabilities{
			CanViewData:            true,
			CanManageSubscriptions: true,
		},
		Status:    status,
		ValidFrom: d.CreatedAt,
		ExpiresAt: d.ExpiresAt,
		CreatedAt: d.CreatedAt,
	}
}

// FromLegacyPublishingRight normalizes a legacy publishing right into the
// canonical AccessGrant shape.
func FromLegacyPublishingRight(r LegacyPublishingRight) AccessGrant {
	status := GrantRevoked
	if r.IsActive {
		status = GrantActive
	}
	typeScope := AllScope()
	if len(r.DataTypes) > 0 {
		typeScope = SpecificScope(r.DataTypes...)
	}
	return AccessGrant{
		GrantID:      "legacy-right-" + r.RightID,
		GrantorID:    r.GrantorID,
		GranteeID:    r.ToOrgID,
		AssetScope:   SpecificScope(r.AssetID),
		TypeScope:    typeScope,
		Capabilities: Capabilities{CanPublish: true},
		Status:       status,
		ValidFrom:    r.CreatedAt,
		ExpiresAt:    r.ExpiresAt,
		CreatedAt:    r.CreatedAt,
	}
}
