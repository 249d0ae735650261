package entity

import "encoding/json"

// Record is the raw, optional-heavy shape an entity arrives in from the
// persistence layer. Conversion to NetworkEntity happens once, in the
// normalizer, so downstream code never sees nil fields.
type Record struct {
	ID           string  `json:"id"`
	Label        string  `json:"label"`
	Type         string  `json:"type"`
	RiskScore    *int    `json:"risk_score,omitempty"`
	IsSuspect    *bool   `json:"is_suspect,omitempty"`
	IsVictim     *bool   `json:"is_victim,omitempty"`
	MetadataJSON *string `json:"metadata,omitempty"`
}

// Metadata is the decoded shape of Record.MetadataJSON.
type Metadata struct {
	RiskFactors []RiskFactor `json:"riskFactors"`
}

// DecodeMetadata parses the metadata blob attached to a record. Malformed
// or missing JSON yields an empty Metadata and reports ok=false so the
// caller can log it; it is never an error.
func DecodeMetadata(raw *string) (Metadata, bool) {
	if raw == nil || *raw == "" {
		return Metadata{}, true
	}
	var md Metadata
	if err := json.Unmarshal([]byte(*raw), &md); err != nil {
		return Metadata{}, false
	}
	return md, true
}
