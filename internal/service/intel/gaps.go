package intel

import (
	"fmt"

	"github.com/casefusion/casefusion-backend/internal/domain/entity"
	"github.com/casefusion/casefusion-backend/internal/domain/intel"
)

// AnalyzeGaps compares domain coverage against expectation and emits one
// finding per missing or insufficient domain, sorted critical-first.
func (e *Engine) AnalyzeGaps(snap Snapshot, highRisk []entity.NetworkEntity) []intel.IntelligenceGap {
	gaps := []intel.IntelligenceGap{}
	total := snap.TotalTransferValue()

	if !snap.HasFinancial() {
		gaps = append(gaps, intel.IntelligenceGap{
			Category:   "financial",
			Gap:        "No financial transfer data for this case",
			Impact:     intel.ImpactCritical,
			Suggestion: "Request account and transfer data from the financial-intelligence authority and the involved banks",
		})
	}

	if snap.HasFinancial() && total.GreaterThanOrEqual(e.thresholds.ExtendedHistoryTotal) && !snap.HasCrypto() {
		gaps = append(gaps, intel.IntelligenceGap{
			Category:   "crypto",
			Gap:        fmt.Sprintf("Transfers total %s but no cryptocurrency trail is present", total),
			Impact:     intel.ImpactSignificant,
			Suggestion: "Investigate whether proceeds were converted to cryptocurrency",
		})
	}

	if snap.HasFinancial() && !snap.HasCalls() {
		gaps = append(gaps, intel.IntelligenceGap{
			Category:   "calls",
			Gap:        "No telephone records accompany the financial graph",
			Impact:     intel.ImpactSignificant,
			Suggestion: "Request call detail records from the telecom operators",
		})
	}

	if !snap.HasLocation() {
		gaps = append(gaps, intel.IntelligenceGap{
			Category:   "location",
			Gap:        "No location telemetry for any subject",
			Impact:     intel.ImpactMinor,
			Suggestion: "Collect cell-tower, GPS and photo metadata from seized devices",
		})
	}

	if n := countUnidentified(highRisk); n > 0 {
		gaps = append(gaps, intel.IntelligenceGap{
			Category:   "identity",
			Gap:        fmt.Sprintf("%d high-risk entities remain unidentified", n),
			Impact:     intel.ImpactCritical,
			Suggestion: "Request KYC records for the unidentified accounts",
		})
	}

	if snap.HasFinancial() && total.GreaterThanOrEqual(e.thresholds.OriginTraceTotal) && originUnknown(snap) {
		gaps = append(gaps, intel.IntelligenceGap{
			Category:   "origin",
			Gap:        fmt.Sprintf("Source of %s in transfers cannot be established", total),
			Impact:     intel.ImpactSignificant,
			Suggestion: "Trace the transfer chain backward to the originating accounts",
		})
	}

	intel.SortGaps(gaps)
	return gaps
}

func countUnidentified(entities []entity.NetworkEntity) int {
	n := 0
	for _, e := range entities {
		if e.IsUnidentified() {
			n++
		}
	}
	return n
}

// originUnknown reports whether the ultimate source of the funds is
// unaccounted for: every root sender (an entity that sends but never
// receives) is unidentified, or the graph has no root senders at all.
func originUnknown(snap Snapshot) bool {
	if len(snap.Transfers) == 0 {
		return false
	}
	receives := map[string]bool{}
	for _, t := range snap.Transfers {
		receives[t.ToEntityID] = true
	}
	byID := map[string]entity.NetworkEntity{}
	for _, e := range snap.Entities {
		byID[e.ID] = e
	}

	roots := 0
	for _, t := range snap.Transfers {
		if receives[t.FromEntityID] {
			continue
		}
		roots++
		if sender, ok := byID[t.FromEntityID]; ok && !sender.IsUnidentified() {
			return false
		}
	}
	// No roots means the graph is cyclic, so the origin is untraceable.
	return true
}
