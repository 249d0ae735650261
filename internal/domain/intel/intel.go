package intel

import "sort"

// FlagType is the fixed vocabulary of red-flag patterns.
type FlagType string

const (
	FlagStructuring       FlagType = "structuring"
	FlagRapidMovement     FlagType = "rapid_movement"
	FlagCryptoMixer       FlagType = "crypto_mixer"
	FlagHighRiskWallets   FlagType = "high_risk_wallets"
	FlagLayering          FlagType = "layering"
	FlagSuspiciousCalls   FlagType = "suspicious_calls"
	FlagLargeTransactions FlagType = "large_transactions"
)

// Severity ranks a red flag. Critical sorts first.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
)

var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
}

// RedFlag is a named, severity-ranked pattern match with the evidence
// (counts, ids) that made it fire.
type RedFlag struct {
	Type        FlagType `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Evidence    string   `json:"evidence"`
}

// ConfidenceLevel buckets the confidence percentage.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// ConfidenceAssessment is an advisory 0-100 corroboration score, not a
// statistical certainty.
type ConfidenceAssessment struct {
	Level      ConfidenceLevel `json:"level"`
	Percentage int             `json:"percentage"`
	Factors    []string        `json:"factors"`
}

// Priority ranks a recommended action. Immediate sorts first.
type Priority string

const (
	PriorityImmediate Priority = "immediate"
	PriorityHigh      Priority = "high"
	PriorityStandard  Priority = "standard"
)

var priorityRank = map[Priority]int{
	PriorityImmediate: 0,
	PriorityHigh:      1,
	PriorityStandard:  2,
}

// RecommendedAction is a prioritized investigative step.
type RecommendedAction struct {
	Priority Priority `json:"priority"`
	Action   string   `json:"action"`
	Reason   string   `json:"reason"`
}

// GapImpact ranks an intelligence gap. Critical sorts first.
type GapImpact string

const (
	ImpactCritical    GapImpact = "critical"
	ImpactSignificant GapImpact = "significant"
	ImpactMinor       GapImpact = "minor"
)

var impactRank = map[GapImpact]int{
	ImpactCritical:    0,
	ImpactSignificant: 1,
	ImpactMinor:       2,
}

// IntelligenceGap is a missing-data finding with its remediation.
type IntelligenceGap struct {
	Category   string    `json:"category"`
	Gap        string    `json:"gap"`
	Impact     GapImpact `json:"impact"`
	Suggestion string    `json:"suggestion"`
}

// SortFlags orders flags critical-first, preserving discovery order within
// a severity. Re-sorting a sorted list is a no-op.
func SortFlags(flags []RedFlag) {
	sort.SliceStable(flags, func(i, j int) bool {
		return severityRank[flags[i].Severity] < severityRank[flags[j].Severity]
	})
}

// SortActions orders actions immediate-first, preserving insertion order
// within a priority.
func SortActions(actions []RecommendedAction) {
	sort.SliceStable(actions, func(i, j int) bool {
		return priorityRank[actions[i].Priority] < priorityRank[actions[j].Priority]
	})
}

// SortGaps orders gaps critical-first, preserving insertion order within
// an impact.
func SortGaps(gaps []IntelligenceGap) {
	sort.SliceStable(gaps, func(i, j int) bool {
		return impactRank[gaps[i].Impact] < impactRank[gaps[j].Impact]
	})
}
