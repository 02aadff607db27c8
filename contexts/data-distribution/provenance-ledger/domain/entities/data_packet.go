package entities

import (
	"encoding/json"
	"time"
)

// PacketType tags a data packet with its document category. The set is
// closed; unknown tags fail validation at publish time.
type PacketType string

const (
	PacketCapitalCall        PacketType = "capital_call"
	PacketDistribution       PacketType = "distribution"
	PacketNAVUpdate          PacketType = "nav_update"
	PacketFinancialStatement PacketType = "financial_statement"
	PacketTaxDocument        PacketType = "tax_document"
	PacketLegalNotice        PacketType = "legal_notice"
)

// IsValid reports whether the type is one of the known packet categories.
func (t PacketType) IsValid() bool {
	switch t {
	case PacketCapitalCall, PacketDistribution, PacketNAVUpdate,
		PacketFinancialStatement, PacketTaxDocument, PacketLegalNotice:
		return true
	}
	return false
}

// DataPacket is an immutable, hash-verified unit of published fund data.
// Corrections never mutate a packet; they append a new row with Version
// incremented and Parent pointing at the corrected one.
type DataPacket struct {
	PacketID       string          `json:"packet_id"`
	AssetID        string          `json:"asset_id"`
	PublisherID    string          `json:"publisher_id"`
	Type           PacketType      `json:"type"`
	PeriodLabel    string          `json:"period_label,omitempty"`
	Payload        json.RawMessage `json:"payload"`
	ContentHash    string          `json:"content_hash"`
	Version        int             `json:"version"`
	ParentID       *string         `json:"parent_id,omitempty"`
	CorrectionNote string          `json:"correction_note,omitempty"`
	PublishedAt    time.Time       `json:"published_at"`
}

// IsCorrection reports whether the packet supersedes a prior version.
func (p DataPacket) IsCorrection() bool {
	return p.ParentID != nil
}

// ReadReceipt marks one (reader, packet) pair as read. At most one exists per
// pair; re-marking is a no-op.
type ReadReceipt struct {
	PacketID string    `json:"packet_id"`
	ReaderID string    `json:"reader_id"`
	ReadAt   time.Time `json:"read_at"`
}
