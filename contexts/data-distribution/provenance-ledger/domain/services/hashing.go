package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"meridian/contexts/data-distribution/provenance-ledger/domain/entities"
)

// signedFields is the canonical serialization the content hash covers: every
// identity and metadata field of the packet except the hash itself, plus the
// payload decoded to generic values so JSON object keys marshal in sorted
// order regardless of the publisher's original key order.
type signedFields struct {
	PacketID       string  `json:"packet_id"`
	AssetID        string  `json:"asset_id"`
	PublisherID    string  `json:"publisher_id"`
	Type           string  `json:"type"`
	PeriodLabel    string  `json:"period_label"`
	Version        int     `json:"version"`
	ParentID       *string `json:"parent_id"`
	CorrectionNote string  `json:"correction_note"`
	Payload        any     `json:"payload"`
}

// ContentHash computes the lowercase hex SHA-256 digest over the packet's
// canonical serialization. The same packet always hashes to the same value;
// any change to a signed field or the payload changes the digest.
func ContentHash(packet entities.DataPacket) (string, error) {
	var payload any
	if len(packet.Payload) > 0 {
		if err := json.Unmarshal(packet.Payload, &payload); err != nil {
			return "", err
		}
	}
	canonical, err := json.Marshal(signedFields{
		PacketID:       packet.PacketID,
		AssetID:        packet.AssetID,
		PublisherID:    packet.PublisherID,
		Type:           string(packet.Type),
		PeriodLabel:    packet.PeriodLabel,
		Version:        packet.Version,
		ParentID:       packet.ParentID,
		CorrectionNote: packet.CorrectionNote,
		Payload:        payload,
	})
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256(canonical)
	return hex.EncodeToString(digest[:]), nil
}

// VerifyContentHash recomputes the hash and compares it to the stored value.
// A false result means the stored fields no longer match what was signed.
func VerifyContentHash(packet entities.DataPacket) (bool, error) {
	computed, err := ContentHash(packet)
	if err != nil {
		return false, err
	}
	return computed == packet.ContentHash, nil
}
