package transfer

import "time"

// Transfer is a directed, amount-bearing edge between two entities.
// The graph is many-to-many and not guaranteed acyclic.
type Transfer struct {
	ID           string     `json:"id"`
	FromEntityID string     `json:"from_entity_id"`
	ToEntityID   string     `json:"to_entity_id"`
	Amount       float64    `json:"amount"`
	EdgeType     string     `json:"edge_type"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
}

// Importance tiers a key transfer by amount.
type Importance string

const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceMedium   Importance = "medium"
)

// KeyTransfer is a transfer selected by the risk ranker, annotated with
// its importance tier and a human-readable reason.
type KeyTransfer struct {
	Transfer
	Importance Importance `json:"importance"`
	Reason     string     `json:"reason"`
}

// Record is the raw persistence shape of a transfer.
type Record struct {
	ID           string     `json:"id"`
	FromEntityID string     `json:"from_entity_id"`
	ToEntityID   string     `json:"to_entity_id"`
	Amount       *float64   `json:"amount,omitempty"`
	EdgeType     *string    `json:"edge_type,omitempty"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
}
