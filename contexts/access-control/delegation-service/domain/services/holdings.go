package services

import "meridian/contexts/access-control/delegation-service/domain/entities"

// maxPassThroughHops bounds delegation chaining: a grantee's rights may pass
// through at most one intermediary before reaching a direct authority
// (manager or subscriber). Anything deeper requires a fresh grant.
const maxPassThroughHops = 1

// HoldingsSource supplies the facts the capability walk needs. Grants must
// already be filtered to live ones at the evaluation instant, so expiry is
// recomputed on every evaluation rather than cached.
type HoldingsSource struct {
	ManagerOf             func(assetID string) (string, bool, error)
	HasActiveSubscription func(orgID string, assetID string) (bool, error)
	LiveGrantsFor         func(orgID string) ([]entities.AccessGrant, error)
}

// OrganizationHoldings computes the capabilities an organization currently
// holds over (assetID, typeTag): full for the asset's manager, view for an
// active subscriber, and for each live matching grant the grant's flags
// intersected with the grantor's own holdings. An empty typeTag evaluates
// type-agnostically (used by aggregate capability queries).
func OrganizationHoldings(src HoldingsSource, orgID string, assetID string, typeTag string) (entities.Capabilities, error) {
	return holdings(src, orgID, assetID, typeTag, 0)
}

func holdings(src HoldingsSource, orgID string, assetID string, typeTag string, hop int) (entities.Capabilities, error) {
	managerID, found, err := src.ManagerOf(assetID)
	if err != nil {
		return entities.Capabilities{}, err
	}
	if found && managerID == orgID {
		return entities.FullCapabilities(), nil
	}

	caps := entities.Capabilities{}
	subscribed, err := src.HasActiveSubscription(orgID, assetID)
	if err != nil {
		return entities.Capabilities{}, err
	}
	if subscribed {
		caps = caps.Union(entities.ViewOnly())
	}

	// The walk scans grants for the grantee (hop 0) and for one intermediary
	// grantor (hop 1); a grantor two links out must hold rights directly.
	if hop > maxPassThroughHops {
		return caps, nil
	}

	grants, err := src.LiveGrantsFor(orgID)
	if err != nil {
		return entities.Capabilities{}, err
	}
	for _, grant := range grants {
		if !grant.AssetScope.Contains(assetID) {
			continue
		}
		if typeTag != "" && !grant.TypeScope.Contains(typeTag) {
			continue
		}
		upstream, err := holdings(src, grant.GrantorID, assetID, typeTag, hop+1)
		if err != nil {
			return entities.Capabilities{}, err
		}
		caps = caps.Union(grant.Capabilities.Intersect(upstream))
	}
	return caps, nil
}
