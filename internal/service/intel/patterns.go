package intel

import (
	"fmt"
	"strings"

	"github.com/casefusion/casefusion-backend/internal/domain/calls"
	"github.com/casefusion/casefusion-backend/internal/domain/entity"
	"github.com/casefusion/casefusion-backend/internal/domain/intel"
	"github.com/casefusion/casefusion-backend/internal/domain/transfer"
)

// DetectFlags applies the fixed battery of pattern checks. The checks are
// independent and order-insensitive; the returned list is sorted by
// severity, stable within a severity. These encode canonical laundering
// typologies (smurfing, layering, mixing, pass-through) as auditable
// thresholds so investigators can see exactly why a flag fired.
func (e *Engine) DetectFlags(snap Snapshot, highRisk []entity.NetworkEntity, keyTransfers []transfer.KeyTransfer) []intel.RedFlag {
	flags := []intel.RedFlag{}

	if f, ok := e.checkStructuring(keyTransfers); ok {
		flags = append(flags, f)
	}
	if f, ok := e.checkRapidMovement(highRisk); ok {
		flags = append(flags, f)
	}
	if f, ok := e.checkCryptoMixer(snap); ok {
		flags = append(flags, f)
	}
	if f, ok := e.checkHighRiskWallets(snap); ok {
		flags = append(flags, f)
	}
	if f, ok := e.checkLayering(snap, keyTransfers); ok {
		flags = append(flags, f)
	}
	if f, ok := e.checkSuspiciousCalls(snap); ok {
		flags = append(flags, f)
	}
	if f, ok := e.checkLargeTransactions(keyTransfers); ok {
		flags = append(flags, f)
	}

	intel.SortFlags(flags)
	return flags
}

// checkStructuring flags repeated key transfers sized just under the
// reporting threshold, the classic smurfing signature.
func (e *Engine) checkStructuring(keyTransfers []transfer.KeyTransfer) (intel.RedFlag, bool) {
	matches := 0
	for _, kt := range keyTransfers {
		if kt.Amount > e.thresholds.StructuringLow && kt.Amount < e.thresholds.StructuringHigh {
			matches++
		}
	}
	if matches < e.thresholds.StructuringMinCount {
		return intel.RedFlag{}, false
	}
	return intel.RedFlag{
		Type:        intel.FlagStructuring,
		Severity:    intel.SeverityCritical,
		Description: "Repeated transfers sized just below the reporting threshold",
		Evidence: fmt.Sprintf("%d transfers between %.0f and %.0f",
			matches, e.thresholds.StructuringLow, e.thresholds.StructuringHigh),
	}, true
}

// mentionsRapidMovement is the single free-text predicate for the
// rapid in/out flow behavioral signal. Upstream may later replace it with
// a structured boolean flag; only this function would change.
func mentionsRapidMovement(factor entity.RiskFactor) bool {
	return strings.Contains(strings.ToLower(factor.Factor), "rapid") ||
		strings.Contains(strings.ToLower(factor.Description), "rapid")
}

func (e *Engine) checkRapidMovement(highRisk []entity.NetworkEntity) (intel.RedFlag, bool) {
	matches := 0
	for _, ent := range highRisk {
		for _, factor := range ent.RiskFactors {
			if mentionsRapidMovement(factor) {
				matches++
				break
			}
		}
	}
	if matches == 0 {
		return intel.RedFlag{}, false
	}
	return intel.RedFlag{
		Type:        intel.FlagRapidMovement,
		Severity:    intel.SeverityHigh,
		Description: "Funds moved in and out of accounts with little dwell time",
		Evidence:    fmt.Sprintf("%d high-risk entities with rapid in/out flow indicators", matches),
	}, true
}

func (e *Engine) checkCryptoMixer(snap Snapshot) (intel.RedFlag, bool) {
	count := 0
	for _, w := range snap.Wallets {
		if w.IsMixer {
			count++
		}
	}
	for _, a := range snap.Activity {
		if a.RiskFlag.IsMixerRelated() {
			count++
		}
	}
	if count == 0 {
		return intel.RedFlag{}, false
	}
	return intel.RedFlag{
		Type:        intel.FlagCryptoMixer,
		Severity:    intel.SeverityCritical,
		Description: "Cryptocurrency mixing service detected in the flow",
		Evidence:    fmt.Sprintf("%d mixer-related wallets and transactions", count),
	}, true
}

func (e *Engine) checkHighRiskWallets(snap Snapshot) (intel.RedFlag, bool) {
	matches := 0
	examples := []string{}
	for _, w := range snap.Wallets {
		if w.RiskScore >= e.thresholds.HighRiskWalletScore {
			matches++
			if len(examples) < 2 {
				examples = append(examples, fmt.Sprintf("%s (%s)", w.Address, w.Blockchain))
			}
		}
	}
	if matches == 0 {
		return intel.RedFlag{}, false
	}
	return intel.RedFlag{
		Type:        intel.FlagHighRiskWallets,
		Severity:    intel.SeverityHigh,
		Description: "Wallets with elevated risk scores involved",
		Evidence:    fmt.Sprintf("%d wallets at or above score %d, e.g. %s", matches, e.thresholds.HighRiskWalletScore, strings.Join(examples, ", ")),
	}, true
}

// checkLayering estimates routing depth from graph size: enough entities
// and enough significant transfers imply intermediate layers.
func (e *Engine) checkLayering(snap Snapshot, keyTransfers []transfer.KeyTransfer) (intel.RedFlag, bool) {
	entities := len(snap.Entities)
	layers := entities / e.thresholds.LayeringDivisor
	if entities < e.thresholds.LayeringMinEntities ||
		len(keyTransfers) < e.thresholds.LayeringMinKeyTransfers ||
		layers < e.thresholds.LayeringMinLayers {
		return intel.RedFlag{}, false
	}
	return intel.RedFlag{
		Type:        intel.FlagLayering,
		Severity:    intel.SeverityHigh,
		Description: "Funds routed through many intermediaries to obscure origin",
		Evidence:    fmt.Sprintf("estimated %d layers across %d entities and %d key transfers", layers, entities, len(keyTransfers)),
	}, true
}

func (e *Engine) checkSuspiciousCalls(snap Snapshot) (intel.RedFlag, bool) {
	matches := 0
	for _, rec := range snap.Calls {
		if rec.RiskLevel == calls.RiskHigh {
			matches++
		}
	}
	if matches == 0 {
		return intel.RedFlag{}, false
	}
	return intel.RedFlag{
		Type:        intel.FlagSuspiciousCalls,
		Severity:    intel.SeverityMedium,
		Description: "High-risk telephone contacts in call records",
		Evidence:    fmt.Sprintf("%d high-risk call partners", matches),
	}, true
}

func (e *Engine) checkLargeTransactions(keyTransfers []transfer.KeyTransfer) (intel.RedFlag, bool) {
	matches := 0
	for _, kt := range keyTransfers {
		if kt.Amount >= e.thresholds.LargeTransaction {
			matches++
		}
	}
	if matches == 0 {
		return intel.RedFlag{}, false
	}
	return intel.RedFlag{
		Type:        intel.FlagLargeTransactions,
		Severity:    intel.SeverityMedium,
		Description: "Unusually large single transfers present",
		Evidence:    fmt.Sprintf("%d transfers at or above %.0f", matches, e.thresholds.LargeTransaction),
	}, true
}
