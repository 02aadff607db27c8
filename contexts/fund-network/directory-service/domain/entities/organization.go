package entities

import "time"

// OrganizationKind is immutable after creation and drives the role baseline.
type OrganizationKind string

const (
	KindAssetManager   OrganizationKind = "asset_manager"
	KindFundAdmin      OrganizationKind = "fund_admin"
	KindLimitedPartner OrganizationKind = "limited_partner"
	KindAuditor        OrganizationKind = "auditor"
	KindConsultant     OrganizationKind = "consultant"
	KindTaxAdvisor     OrganizationKind = "tax_advisor"
	KindPlatformAdmin  OrganizationKind = "platform_admin"
)

// Organization is a platform tenant: manager, subscriber or service provider.
type Organization struct {
	OrganizationID string           `json:"organization_id"`
	Name           string           `json:"name"`
	Kind           OrganizationKind `json:"kind"`
	IsActive       bool             `json:"is_active"`
	CreatedAt      time.Time        `json:"created_at"`
}
