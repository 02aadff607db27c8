package v1

import (
	"encoding/json"
	"time"
)

// Event types carried by the fund-data outbox relays. Consumers dispatch on
// these values, so they are part of the published contract.
const (
	EventGrantsChanged    = "grants.changed"
	EventPacketsPublished = "packets.published"
)

// Envelope is the canonical, versioned event envelope for cross-runtime use.
// Relays set EventID to the originating outbox row id and PartitionKey to the
// aggregate id named by PartitionKeyPath (grant_id, packet_id), so replays
// stay idempotent and per-aggregate ordering survives partitioning.
// This package is contract-only and must stay backward compatible.
type Envelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	OccurredAt       time.Time       `json:"occurred_at"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id"`
	SchemaVersion    int             `json:"schema_version"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	Data             json.RawMessage `json:"data"`
}
