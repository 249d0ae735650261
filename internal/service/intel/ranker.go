package intel

import (
	"fmt"
	"sort"

	"github.com/casefusion/casefusion-backend/internal/domain/entity"
	"github.com/casefusion/casefusion-backend/internal/domain/transfer"
)

// RankEntities filters entities at or above the high-risk cutoff and
// returns the top N by descending risk score. The sort is stable: ties
// preserve discovery order.
func (e *Engine) RankEntities(snap Snapshot) []entity.NetworkEntity {
	ranked := make([]entity.NetworkEntity, 0, len(snap.Entities))
	for _, ent := range snap.Entities {
		if ent.RiskScore >= e.thresholds.HighRiskScore {
			ranked = append(ranked, ent)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RiskScore > ranked[j].RiskScore
	})
	if len(ranked) > e.thresholds.TopN {
		ranked = ranked[:e.thresholds.TopN]
	}
	return ranked
}

// RankTransfers filters transfers with a positive amount and returns the
// top N by descending amount, each annotated with its importance tier.
func (e *Engine) RankTransfers(snap Snapshot) []transfer.KeyTransfer {
	positive := make([]transfer.Transfer, 0, len(snap.Transfers))
	for _, t := range snap.Transfers {
		if t.Amount > 0 {
			positive = append(positive, t)
		}
	}
	sort.SliceStable(positive, func(i, j int) bool {
		return positive[i].Amount > positive[j].Amount
	})
	if len(positive) > e.thresholds.TopN {
		positive = positive[:e.thresholds.TopN]
	}

	key := make([]transfer.KeyTransfer, 0, len(positive))
	for _, t := range positive {
		key = append(key, transfer.KeyTransfer{
			Transfer:   t,
			Importance: e.classifyImportance(t.Amount),
			Reason:     fmt.Sprintf("transfer of %.2f from %s to %s", t.Amount, t.FromEntityID, t.ToEntityID),
		})
	}
	return key
}

func (e *Engine) classifyImportance(amount float64) transfer.Importance {
	switch {
	case amount >= e.thresholds.LargeTransaction:
		return transfer.ImportanceCritical
	case amount >= e.thresholds.HighImportance:
		return transfer.ImportanceHigh
	default:
		return transfer.ImportanceMedium
	}
}
