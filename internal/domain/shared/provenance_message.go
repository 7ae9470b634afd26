package shared

import "time"

// ProvenanceMessage is the Kafka payload emitted for every appended provenance event
type ProvenanceMessage struct {
	EventID       string    `json:"event_id"`
	DocumentID    string    `json:"document_id"`
	DocumentHash  string    `json:"document_hash,omitempty"`
	Action        string    `json:"action"`
	Actor         string    `json:"actor"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}
