package entities

// Capabilities are the four independently revocable grant flags.
type Capabilities struct {
	CanPublish             bool `json:"can_publish"`
	CanViewData            bool `json:"can_view_data"`
	CanManageSubscriptions bool `json:"can_manage_subscriptions"`
	CanApproveDelegations  bool `json:"can_approve_delegations"`
}

// FullCapabilities is what an asset's manager holds over its own assets.
func FullCapabilities() Capabilities {
	return Capabilities{
		CanPublish:             true,
		CanViewData:            true,
		CanManageSubscriptions: true,
		CanApproveDelegations:  true,
	}
}

// ViewOnly is what an active subscription confers.
func ViewOnly() Capabilities {
	return Capabilities{CanViewData: true}
}

// Intersect keeps only flags held by both sets. A grantor can never pass on a
// capability it does not itself hold.
func (c Capabilities) Intersect(other Capabilities) Capabilities {
	return Capabilities{
		CanPublish:             c.CanPublish && other.CanPublish,
		CanViewData:            c.CanViewData && other.CanViewData,
		CanManageSubscriptions: c.CanManageSubscriptions && other.CanManageSubscriptions,
		CanApproveDelegations:  c.CanApproveDelegations && other.CanApproveDelegations,
	}
}

// Union merges flags from both sets.
func (c Capabilities) Union(other Capabilities) Capabilities {
	return Capabilities{
		CanPublish:             c.CanPublish || other.CanPublish,
		CanViewData:            c.CanViewData || other.CanViewData,
		CanManageSubscriptions: c.CanManageSubscriptions || other.CanManageSubscriptions,
		CanApproveDelegations:  c.CanApproveDelegations || other.CanApproveDelegations,
	}
}

func (c Capabilities) IsZero() bool {
	return !c.CanPublish && !c.CanViewData && !c.CanManageSubscriptions && !c.CanApproveDelegations
}
