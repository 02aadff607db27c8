package entities

import (
	"testing"
	"time"
)

func TestGrantIsLiveRespectsStatusAndWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(24 * time.Hour)

	grant := AccessGrant{
		Status:       GrantActive,
		ValidFrom:    now.Add(-time.Hour),
		ExpiresAt:    &expiry,
		Capabilities: ViewOnly(),
	}
	if !grant.IsLive(now) {
		t.Fatalf("expected active grant inside its window to be live")
	}
	if grant.IsLive(expiry) {
		t.Fatalf("expected grant to be dead at its expiry instant")
	}
	if grant.IsLive(now.Add(48 * time.Hour)) {
		t.Fatalf("expected grant to stay dead after expiry")
	}
	if grant.IsLive(now.Add(-2 * time.Hour)) {
		t.Fatalf("expected grant to be dead before valid_from")
	}

	grant.Status = GrantPendingApproval
	if grant.IsLive(now) {
		t.Fatalf("pending grant must confer nothing")
	}
	grant.Status = GrantRevoked
	if grant.IsLive(now) {
		t.Fatalf("revoked grant must confer nothing")
	}
}

func TestEffectiveStatusDerivesExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)

	grant := AccessGrant{Status: GrantActive, ExpiresAt: &past}
	if got := grant.EffectiveStatus(now); got != GrantExpired {
		t.Fatalf("expected derived expired status, got %s", got)
	}

	// Other statuses pass through even past expiry.
	grant.Status = GrantRevoked
	if got := grant.EffectiveStatus(now); got != GrantRevoked {
		t.Fatalf("expected revoked to pass through, got %s", got)
	}
}

func TestCapabilitiesIntersectNeverEscalates(t *testing.T) {
	granted := Capabilities{CanViewData: true, CanManageSubscriptions: true, CanPublish: true}
	held := Capabilities{CanViewData: true}

	effective := granted.Intersect(held)
	if !effective.CanViewData {
		t.Fatalf("expected shared view capability to survive")
	}
	if effective.CanPublish || effective.CanManageSubscriptions {
		t.Fatalf("intersection must drop capabilities the holder lacks, got %+v", effective)
	}
}

func TestScopeMembership(t *testing.T) {
	all := AllScope()
	if !all.Contains("asset-anything") {
		t.Fatalf("ALL scope must contain every identifier")
	}
	if all.IDs() != nil {
		t.Fatalf("ALL scope must not enumerate identifiers")
	}

	specific := SpecificScope("asset-1", "asset-2")
	if !specific.Contains("asset-1") || specific.Contains("asset-3") {
		t.Fatalf("specific scope membership is exact")
	}
	if SpecificScope().IsEmpty() != true {
		t.Fatalf("empty specific scope must report empty")
	}
}

func TestFromLegacyDelegationNormalizes(t *testing.T) {
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	grant := FromLegacyDelegation(LegacyDelegation{
		DelegationID: "d-7",
		FromOrgID:    "org-manager",
		ToOrgID:      "org-admin",
		AssetIDs:     []string{"asset-1", "asset-2"},
		IsActive:     true,
		CreatedAt:    created,
	})

	if grant.GrantID != "legacy-delegation-d-7" {
		t.Fatalf("unexpected grant id %s", grant.GrantID)
	}
	if grant.Status != GrantActive {
		t.Fatalf("active legacy delegation must normalize active, got %s", grant.Status)
	}
	if !grant.TypeScope.IsAll() {
		t.Fatalf("legacy delegations cover all packet types")
	}
	if !grant.Capabilities.CanViewData || !grant.Capabilities.CanManageSubscriptions {
		t.Fatalf("legacy delegation confers view and manage, got %+v", grant.Capabilities)
	}
	if grant.Capabilities.CanPublish || grant.Capabilities.CanApproveDelegations {
		t.Fatalf("legacy delegation must not confer publish or approve")
	}
	if !grant.AssetScope.Contains("asset-2") || grant.AssetScope.Contains("asset-3") {
		t.Fatalf("asset scope must be the explicit legacy list")
	}
}

func TestFromLegacyPublishingRightNormalizes(t *testing.T) {
	grant := FromLegacyPublishingRight(LegacyPublishingRight{
		RightID:   "r-3",
		GrantorID: "org-manager",
		ToOrgID:   "org-fund-admin",
		AssetID:   "asset-1",
		DataTypes: []string{"nav_update"},
		IsActive:  false,
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	if grant.Status != GrantRevoked {
		t.Fatalf("inactive legacy right must normalize revoked, got %s", grant.Status)
	}
	if !grant.Capabilities.CanPublish || grant.Capabilities.CanViewData {
		t.Fatalf("legacy right confers publish only, got %+v", grant.Capabilities)
	}
	if !grant.TypeScope.Contains("nav_update") || grant.TypeScope.Contains("capital_call") {
		t.Fatalf("type scope must be the explicit legacy list")
	}
	if !grant.AssetScope.Contains("asset-1") {
		t.Fatalf("asset scope must contain the single legacy asset")
	}
}
