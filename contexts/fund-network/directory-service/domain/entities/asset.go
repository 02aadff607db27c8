package entities

import "time"

// AssetKind classifies the vehicle a data packet is scoped to.
type AssetKind string

const (
	AssetFund         AssetKind = "fund"
	AssetSPV          AssetKind = "spv"
	AssetCoInvestment AssetKind = "co_investment"
	AssetPortfolio    AssetKind = "portfolio"
)

// Asset is a fund/SPV/co-investment entity. ParentID links an SPV under its
// fund; the parent chain forms a tree, never a cycle. The manager is the sole
// root authority for grants scoped to the asset.
type Asset struct {
	AssetID                              string    `json:"asset_id"`
	Name                                 string    `json:"name"`
	Kind                                 AssetKind `json:"kind"`
	ManagerID                            string    `json:"manager_id"`
	ParentID                             *string   `json:"parent_id,omitempty"`
	RequireManagerApprovalForDelegations bool      `json:"require_manager_approval_for_delegations"`
	IsActive                             bool      `json:"is_active"`
	CreatedAt                            time.Time `json:"created_at"`
}
