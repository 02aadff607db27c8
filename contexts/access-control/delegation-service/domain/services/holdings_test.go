package services

import (
	"testing"
	"time"

	"meridian/contexts/access-control/delegation-service/domain/entities"
)

func fixedSource(managers map[string]string, subscribers map[string]bool, grants map[string][]entities.AccessGrant) HoldingsSource {
	return HoldingsSource{
		ManagerOf: func(assetID string) (string, bool, error) {
			managerID, ok := managers[assetID]
			return managerID, ok, nil
		},
		HasActiveSubscription: func(orgID string, assetID string) (bool, error) {
			return subscribers[orgID+"/"+assetID], nil
		},
		LiveGrantsFor: func(orgID string) ([]entities.AccessGrant, error) {
			return grants[orgID], nil
		},
	}
}

func liveGrant(grantor, grantee string, assetScope, typeScope entities.Scope, caps entities.Capabilities) entities.AccessGrant {
	return entities.AccessGrant{
		GrantID:      grantor + "->" + grantee,
		GrantorID:    grantor,
		GranteeID:    grantee,
		AssetScope:   assetScope,
		TypeScope:    typeScope,
		Capabilities: caps,
		Status:       entities.GrantActive,
		ValidFrom:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestManagerHoldsFullCapabilities(t *testing.T) {
	src := fixedSource(map[string]string{"asset-1": "org-manager"}, nil, nil)

	caps, err := OrganizationHoldings(src, "org-manager", "asset-1", "")
	if err != nil {
		t.Fatalf("holdings returned error: %v", err)
	}
	if caps != entities.FullCapabilities() {
		t.Fatalf("manager must hold full capabilities, got %+v", caps)
	}
}

func TestSubscriberHoldsViewOnly(t *testing.T) {
	src := fixedSource(
		map[string]string{"asset-1": "org-manager"},
		map[string]bool{"org-lp/asset-1": true},
		nil,
	)

	caps, err := OrganizationHoldings(src, "org-lp", "asset-1", "capital_call")
	if err != nil {
		t.Fatalf("holdings returned error: %v", err)
	}
	if caps != entities.ViewOnly() {
		t.Fatalf("subscriber must hold view only, got %+v", caps)
	}
}

func TestGrantIntersectsWithGrantorHoldings(t *testing.T) {
	// The grantor is a plain subscriber holding view only. The grant claims
	// publish and view; only view survives the intersection.
	src := fixedSource(
		map[string]string{"asset-1": "org-manager"},
		map[string]bool{"org-lp/asset-1": true},
		map[string][]entities.AccessGrant{
			"org-consultant": {liveGrant("org-lp", "org-consultant",
				entities.SpecificScope("asset-1"), entities.AllScope(),
				entities.Capabilities{CanPublish: true, CanViewData: true})},
		},
	)

	caps, err := OrganizationHoldings(src, "org-consultant", "asset-1", "")
	if err != nil {
		t.Fatalf("holdings returned error: %v", err)
	}
	if !caps.CanViewData {
		t.Fatalf("delegated view should survive, got %+v", caps)
	}
	if caps.CanPublish {
		t.Fatalf("grantee must not gain publish the grantor never held")
	}
}

func TestPassThroughStopsAfterOneIntermediary(t *testing.T) {
	// Manager delegates to A, A re-delegates to B, B re-delegates to C. B's
	// rights pass through the one allowed intermediary (A); C would need two.
	managers := map[string]string{"asset-1": "org-manager"}
	grants := map[string][]entities.AccessGrant{
		"org-a": {liveGrant("org-manager", "org-a",
			entities.SpecificScope("asset-1"), entities.AllScope(), entities.ViewOnly())},
		"org-b": {liveGrant("org-a", "org-b",
			entities.SpecificScope("asset-1"), entities.AllScope(), entities.ViewOnly())},
		"org-c": {liveGrant("org-b", "org-c",
			entities.SpecificScope("asset-1"), entities.AllScope(), entities.ViewOnly())},
	}
	src := fixedSource(managers, nil, grants)

	capsA, err := OrganizationHoldings(src, "org-a", "asset-1", "")
	if err != nil {
		t.Fatalf("holdings returned error: %v", err)
	}
	if !capsA.CanViewData {
		t.Fatalf("direct grantee must hold the delegated view, got %+v", capsA)
	}

	capsB, err := OrganizationHoldings(src, "org-b", "asset-1", "")
	if err != nil {
		t.Fatalf("holdings returned error: %v", err)
	}
	if !capsB.CanViewData {
		t.Fatalf("one pass-through intermediary is allowed, got %+v", capsB)
	}

	capsC, err := OrganizationHoldings(src, "org-c", "asset-1", "")
	if err != nil {
		t.Fatalf("holdings returned error: %v", err)
	}
	if !capsC.IsZero() {
		t.Fatalf("two intermediaries out must hold nothing, got %+v", capsC)
	}
}

func TestReGrantIntersectsDelegatedHoldings(t *testing.T) {
	// G holds {publish, view} through a live grant from the manager and
	// re-grants H {publish, manage}: only publish survives the intersection
	// with what G actually holds.
	managers := map[string]string{"asset-1": "org-manager"}
	grants := map[string][]entities.AccessGrant{
		"org-g": {liveGrant("org-manager", "org-g",
			entities.SpecificScope("asset-1"), entities.AllScope(),
			entities.Capabilities{CanPublish: true, CanViewData: true})},
		"org-h": {liveGrant("org-g", "org-h",
			entities.SpecificScope("asset-1"), entities.AllScope(),
			entities.Capabilities{CanPublish: true, CanManageSubscriptions: true})},
	}
	src := fixedSource(managers, nil, grants)

	caps, err := OrganizationHoldings(src, "org-h", "asset-1", "")
	if err != nil {
		t.Fatalf("holdings returned error: %v", err)
	}
	if !caps.CanPublish {
		t.Fatalf("publish held by the grantor must survive, got %+v", caps)
	}
	if caps.CanViewData || caps.CanManageSubscriptions {
		t.Fatalf("capabilities the grant or grantor lacks must not leak, got %+v", caps)
	}
}

func TestTypeScopeIsExact(t *testing.T) {
	src := fixedSource(
		map[string]string{"asset-1": "org-manager"},
		nil,
		map[string][]entities.AccessGrant{
			"org-tax": {liveGrant("org-manager", "org-tax",
				entities.SpecificScope("asset-1"), entities.SpecificScope("tax_document"),
				entities.ViewOnly())},
		},
	)

	caps, err := OrganizationHoldings(src, "org-tax", "asset-1", "tax_document")
	if err != nil {
		t.Fatalf("holdings returned error: %v", err)
	}
	if !caps.CanViewData {
		t.Fatalf("scoped type must be covered, got %+v", caps)
	}

	caps, err = OrganizationHoldings(src, "org-tax", "asset-1", "capital_call")
	if err != nil {
		t.Fatalf("holdings returned error: %v", err)
	}
	if !caps.IsZero() {
		t.Fatalf("type outside the scope must not be covered, got %+v", caps)
	}
}

func TestAssetScopeIsExact(t *testing.T) {
	src := fixedSource(
		map[string]string{"asset-1": "org-manager", "asset-2": "org-manager"},
		nil,
		map[string][]entities.AccessGrant{
			"org-a": {liveGrant("org-manager", "org-a",
				entities.SpecificScope("asset-1"), entities.AllScope(), entities.ViewOnly())},
		},
	)

	caps, err := OrganizationHoldings(src, "org-a", "asset-2", "")
	if err != nil {
		t.Fatalf("holdings returned error: %v", err)
	}
	if !caps.IsZero() {
		t.Fatalf("grant scoped to asset-1 must not cover asset-2, got %+v", caps)
	}
}
