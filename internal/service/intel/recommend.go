package intel

import (
	"fmt"

	"github.com/casefusion/casefusion-backend/internal/domain/entity"
	"github.com/casefusion/casefusion-backend/internal/domain/intel"
)

// Recommend maps detected conditions to prioritized investigative actions.
// The output is sorted immediate-first; ties preserve insertion order. The
// fallback recommendation guarantees the list is never empty.
func (e *Engine) Recommend(snap Snapshot, highRisk []entity.NetworkEntity, flags []intel.RedFlag) []intel.RecommendedAction {
	actions := []intel.RecommendedAction{}

	if len(highRisk) > 0 {
		top := highRisk[0]
		actions = append(actions, intel.RecommendedAction{
			Priority: intel.PriorityHigh,
			Action:   fmt.Sprintf("Interview %s", top.Label),
			Reason:   fmt.Sprintf("Highest-risk entity in the network (score %d)", top.RiskScore),
		})
	}

	if hasFlag(flags, intel.FlagCryptoMixer) {
		actions = append(actions, intel.RecommendedAction{
			Priority: intel.PriorityImmediate,
			Action:   "Request KYC records from exchanges linked to the mixer flow",
			Reason:   "Mixer usage indicates deliberate obfuscation of crypto proceeds",
		})
	}

	if hasFlag(flags, intel.FlagStructuring) {
		actions = append(actions, intel.RecommendedAction{
			Priority: intel.PriorityImmediate,
			Action:   "Obtain a court order to freeze the accounts involved in structuring",
			Reason:   "Structured transfers evade the reporting threshold",
		})
	}

	if snap.TotalTransferValue().GreaterThanOrEqual(e.thresholds.ExtendedHistoryTotal) {
		actions = append(actions, intel.RecommendedAction{
			Priority: intel.PriorityHigh,
			Action:   "Request extended transaction history from the involved banks",
			Reason:   fmt.Sprintf("Total transfer value %s warrants a wider window", snap.TotalTransferValue()),
		})
	}

	if snap.HasCalls() {
		actions = append(actions, intel.RecommendedAction{
			Priority: intel.PriorityStandard,
			Action:   fmt.Sprintf("Identify the owner of %s", mostFrequentNumber(snap)),
			Reason:   "Most frequent call partner in the records",
		})
	}

	if snap.HasLocation() {
		actions = append(actions, intel.RecommendedAction{
			Priority: intel.PriorityStandard,
			Action:   fmt.Sprintf("Check CCTV and witness records at %s", mostFrequentLocation(snap)),
			Reason:   "Most frequent location in the telemetry",
		})
	}

	// Fallback, always present.
	actions = append(actions, intel.RecommendedAction{
		Priority: intel.PriorityStandard,
		Action:   "Gather additional evidence before prosecution",
		Reason:   "Current findings are heuristic indicators, not proof",
	})

	intel.SortActions(actions)
	return actions
}

// mostFrequentNumber returns the phone number with the highest total call
// count; ties resolve to the earliest record.
func mostFrequentNumber(snap Snapshot) string {
	best := snap.Calls[0]
	for _, rec := range snap.Calls[1:] {
		if rec.TotalCalls > best.TotalCalls {
			best = rec
		}
	}
	return best.PhoneNumber
}

// mostFrequentLocation returns the most recurring named location; points
// without a name fall back to coordinates.
func mostFrequentLocation(snap Snapshot) string {
	counts := map[string]int{}
	order := []string{}
	for _, p := range snap.Locations {
		name := p.LocationName
		if name == "" {
			name = fmt.Sprintf("%.5f,%.5f", p.Latitude, p.Longitude)
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}
	best := order[0]
	for _, name := range order[1:] {
		if counts[name] > counts[best] {
			best = name
		}
	}
	return best
}
