package httptransport

import (
	"encoding/json"
	"time"
)

// PublishPacketRequest publishes a new version-1 packet on an asset.
type PublishPacketRequest struct {
	AssetID     string          `json:"asset_id"`
	Type        string          `json:"type"`
	PeriodLabel string          `json:"period_label,omitempty"`
	Payload     json.RawMessage `json:"payload"`
}

// CorrectPacketRequest supersedes an existing packet with a new payload.
type CorrectPacketRequest struct {
	Payload        json.RawMessage `json:"payload"`
	CorrectionNote string          `json:"correction_note,omitempty"`
}

// PacketResponse describes one data packet.
type PacketResponse struct {
	PacketID       string          `json:"packet_id"`
	AssetID        string          `json:"asset_id"`
	PublisherID    string          `json:"publisher_id"`
	Type           string          `json:"type"`
	PeriodLabel    string          `json:"period_label,omitempty"`
	Payload        json.RawMessage `json:"payload"`
	ContentHash    string          `json:"content_hash"`
	Version        int             `json:"version"`
	ParentID       *string         `json:"parent_id,omitempty"`
	CorrectionNote string          `json:"correction_note,omitempty"`
	PublishedAt    time.Time       `json:"published_at"`
}

type ListPacketsResponse struct {
	Packets []PacketResponse `json:"packets"`
}

// VerifyPacketResponse reports the hash check verdict.
type VerifyPacketResponse struct {
	PacketID string `json:"packet_id"`
	Intact   bool   `json:"intact"`
}

// ReadReceiptResponse describes one read receipt.
type ReadReceiptResponse struct {
	PacketID string    `json:"packet_id"`
	ReaderID string    `json:"reader_id"`
	ReadAt   time.Time `json:"read_at"`
}

type ListReceiptsResponse struct {
	Receipts []ReadReceiptResponse `json:"receipts"`
}

// ErrorResponse is the transport error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
