package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortFlags_SeverityOrderStable(t *testing.T) {
	flags := []RedFlag{
		{Type: FlagSuspiciousCalls, Severity: SeverityMedium},
		{Type: FlagStructuring, Severity: SeverityCritical},
		{Type: FlagLargeTransactions, Severity: SeverityMedium},
		{Type: FlagLayering, Severity: SeverityHigh},
		{Type: FlagCryptoMixer, Severity: SeverityCritical},
	}

	SortFlags(flags)

	got := make([]FlagType, len(flags))
	for i, f := range flags {
		got[i] = f.Type
	}
	// Discovery order survives within each severity tier.
	assert.Equal(t, []FlagType{
		FlagStructuring, FlagCryptoMixer,
		FlagLayering,
		FlagSuspiciousCalls, FlagLargeTransactions,
	}, got)
}

func TestSortActions_PriorityOrderStable(t *testing.T) {
	actions := []RecommendedAction{
		{Action: "c", Priority: PriorityStandard},
		{Action: "a", Priority: PriorityImmediate},
		{Action: "d", Priority: PriorityStandard},
		{Action: "b", Priority: PriorityHigh},
	}

	SortActions(actions)

	got := make([]string, len(actions))
	for i, a := range actions {
		got[i] = a.Action
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}
