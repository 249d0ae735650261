package intel

import (
	"time"

	"github.com/google/uuid"

	"github.com/casefusion/casefusion-backend/internal/domain/calls"
	"github.com/casefusion/casefusion-backend/internal/domain/crypto"
	"github.com/casefusion/casefusion-backend/internal/domain/entity"
	"github.com/casefusion/casefusion-backend/internal/domain/intel"
	"github.com/casefusion/casefusion-backend/internal/domain/location"
	"github.com/casefusion/casefusion-backend/internal/domain/transfer"
	"github.com/casefusion/casefusion-backend/internal/domain/values"
)

// Snapshot is the immutable, normalized view of one case's data that a
// single analysis run operates on. An absent domain is an empty slice,
// never nil-checked downstream. A refresh builds an entirely new Snapshot;
// there is no incremental merge.
type Snapshot struct {
	CaseID    string                 `json:"case_id"`
	Entities  []entity.NetworkEntity `json:"entities"`
	Transfers []transfer.Transfer    `json:"transfers"`
	Calls     []calls.Record         `json:"calls"`
	Wallets   []crypto.Wallet        `json:"wallets"`
	Activity  []crypto.Activity      `json:"activity"`
	Locations []location.Point       `json:"locations"`
}

// HasFinancial reports whether the financial transfer graph is present.
func (s Snapshot) HasFinancial() bool {
	return len(s.Entities) > 0 || len(s.Transfers) > 0
}

// HasCrypto reports whether any cryptocurrency data is present.
func (s Snapshot) HasCrypto() bool {
	return len(s.Wallets) > 0 || len(s.Activity) > 0
}

// HasCalls reports whether telephone call records are present.
func (s Snapshot) HasCalls() bool { return len(s.Calls) > 0 }

// HasLocation reports whether location telemetry is present.
func (s Snapshot) HasLocation() bool { return len(s.Locations) > 0 }

// SourceCount counts the non-empty domains among financial, crypto,
// calls and location.
func (s Snapshot) SourceCount() int {
	count := 0
	for _, present := range []bool{s.HasFinancial(), s.HasCrypto(), s.HasCalls(), s.HasLocation()} {
		if present {
			count++
		}
	}
	return count
}

// TotalItems is the combined record count across all domains.
func (s Snapshot) TotalItems() int {
	return len(s.Entities) + len(s.Transfers) + len(s.Calls) +
		len(s.Wallets) + len(s.Activity) + len(s.Locations)
}

// TotalTransferValue sums every transfer amount exactly.
func (s Snapshot) TotalTransferValue() values.Money {
	total := values.Zero(values.THB)
	for _, t := range s.Transfers {
		total = total.AddFloat(t.Amount)
	}
	return total
}

// GraphStats are the headline counts the report layer shows next to the
// money-flow graph.
type GraphStats struct {
	EntityCount   int          `json:"entity_count"`
	TransferCount int          `json:"transfer_count"`
	SuspectCount  int          `json:"suspect_count"`
	VictimCount   int          `json:"victim_count"`
	TotalAmount   values.Money `json:"total_amount"`
}

// Stats computes the headline graph statistics for the snapshot.
func (s Snapshot) Stats() GraphStats {
	stats := GraphStats{
		EntityCount:   len(s.Entities),
		TransferCount: len(s.Transfers),
		TotalAmount:   s.TotalTransferValue(),
	}
	for _, e := range s.Entities {
		if e.IsSuspect {
			stats.SuspectCount++
		}
		if e.IsVictim {
			stats.VictimCount++
		}
	}
	return stats
}

// Narrative is the per-domain and overall text rendered from one run.
type Narrative struct {
	Financial string `json:"financial"`
	Calls     string `json:"calls"`
	Crypto    string `json:"crypto"`
	Location  string `json:"location"`
	Overall   string `json:"overall"`
}

// AnalysisRun is the complete, immutable output of one engine pass over a
// snapshot for a given language. Runs are constructed once per
// (case, language) pair; recomputation means building a new run.
type AnalysisRun struct {
	ID          uuid.UUID `json:"id"`
	CaseID      string    `json:"case_id"`
	Language    string    `json:"language"`
	GeneratedAt time.Time `json:"generated_at"`

	Stats            GraphStats                 `json:"stats"`
	HighRiskEntities []entity.NetworkEntity     `json:"high_risk_entities"`
	KeyTransfers     []transfer.KeyTransfer     `json:"key_transfers"`
	RedFlags         []intel.RedFlag            `json:"red_flags"`
	Confidence       intel.ConfidenceAssessment `json:"confidence"`
	Recommendations  []intel.RecommendedAction  `json:"recommendations"`
	Gaps             []intel.IntelligenceGap    `json:"gaps"`
	Narrative        Narrative                  `json:"narrative"`
}
