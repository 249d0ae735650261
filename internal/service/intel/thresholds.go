package intel

// Thresholds is the single source of truth for every numeric cutoff the
// engine applies. The 500,000 large-transaction value is canonical for the
// critical importance tier, the large-transactions flag and the
// origin-unknown gap; 100,000 marks the high importance tier only.
type Thresholds struct {
	// Risk ranking
	HighRiskScore int // entity riskScore cutoff for the high-risk list
	TopN          int // bounded size of both ranked lists

	// Transfer importance tiers
	LargeTransaction float64 // critical importance, large-transactions flag
	HighImportance   float64 // high importance tier

	// Structuring: amounts strictly inside (StructuringLow, StructuringHigh)
	StructuringLow      float64
	StructuringHigh     float64
	StructuringMinCount int

	// High-risk wallets
	HighRiskWalletScore int

	// Layering topology
	LayeringMinEntities     int
	LayeringMinKeyTransfers int
	LayeringMinLayers       int
	LayeringDivisor         int

	// Aggregate totals
	ExtendedHistoryTotal float64 // extended bank-history recommendation + crypto gap
	OriginTraceTotal     float64 // origin-unknown gap
}

// DefaultThresholds returns the canonical threshold set.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighRiskScore:           40,
		TopN:                    10,
		LargeTransaction:        500_000,
		HighImportance:          100_000,
		StructuringLow:          40_000,
		StructuringHigh:         50_000,
		StructuringMinCount:     3,
		HighRiskWalletScore:     70,
		LayeringMinEntities:     10,
		LayeringMinKeyTransfers: 5,
		LayeringMinLayers:       3,
		LayeringDivisor:         3,
		ExtendedHistoryTotal:    1_000_000,
		OriginTraceTotal:        500_000,
	}
}
