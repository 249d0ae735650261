package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefusion/casefusion-backend/internal/domain/entity"
	"github.com/casefusion/casefusion-backend/internal/domain/intel"
	"github.com/casefusion/casefusion-backend/internal/domain/location"
	"github.com/casefusion/casefusion-backend/internal/domain/transfer"
)

func TestAnalyzeGaps_FinancialOnlyLargeTotal(t *testing.T) {
	// A financial-only case with a 2,000,000 total misses crypto
	// (significant), calls (significant) and location (minor), in that
	// order after the impact sort.
	e := newTestEngine(t)

	snap := Snapshot{
		Entities: []entity.NetworkEntity{
			testEntity("a", 10),
			testEntity("b", 10),
		},
		Transfers: []transfer.Transfer{
			testTransfer("t1", "a", "b", 2_000_000),
		},
	}

	gaps := e.AnalyzeGaps(snap, nil)
	require.Len(t, gaps, 3)
	assert.Equal(t, "crypto", gaps[0].Category)
	assert.Equal(t, intel.ImpactSignificant, gaps[0].Impact)
	assert.Equal(t, "calls", gaps[1].Category)
	assert.Equal(t, intel.ImpactSignificant, gaps[1].Impact)
	assert.Equal(t, "location", gaps[2].Category)
	assert.Equal(t, intel.ImpactMinor, gaps[2].Impact)
}

func TestAnalyzeGaps_Empty(t *testing.T) {
	e := newTestEngine(t)

	gaps := e.AnalyzeGaps(Snapshot{}, nil)
	require.Len(t, gaps, 2)
	assert.Equal(t, "financial", gaps[0].Category)
	assert.Equal(t, intel.ImpactCritical, gaps[0].Impact)
	assert.Equal(t, "location", gaps[1].Category)
	assert.Equal(t, intel.ImpactMinor, gaps[1].Impact)
}

func TestAnalyzeGaps_UnidentifiedHighRisk(t *testing.T) {
	e := newTestEngine(t)

	anon := entity.NetworkEntity{ID: "acct-777", Label: "unknown", RiskScore: 95}
	named := testEntity("b", 80)
	snap := Snapshot{
		Entities:  []entity.NetworkEntity{anon, named},
		Locations: []location.Point{{Latitude: 1, Longitude: 1}},
	}

	gaps := e.AnalyzeGaps(snap, []entity.NetworkEntity{anon, named})
	require.Len(t, gaps, 2)
	// identity gap outranks the calls gap via the impact sort
	assert.Equal(t, "identity", gaps[0].Category)
	assert.Equal(t, intel.ImpactCritical, gaps[0].Impact)
	assert.Contains(t, gaps[0].Gap, "1 high-risk entities")
	assert.Equal(t, "calls", gaps[1].Category)
}

func TestAnalyzeGaps_BelowTotalsNoValueGaps(t *testing.T) {
	e := newTestEngine(t)

	// 300k is under both the 500k origin-trace and 1M extended-history
	// cutoffs, and the root sender is identified anyway.
	snap := Snapshot{
		Entities: []entity.NetworkEntity{
			testEntity("a", 10),
			testEntity("b", 10),
		},
		Transfers: []transfer.Transfer{
			testTransfer("t1", "a", "b", 300_000),
		},
	}

	gaps := e.AnalyzeGaps(snap, nil)
	for _, g := range gaps {
		assert.NotEqual(t, "crypto", g.Category)
		assert.NotEqual(t, "origin", g.Category)
	}
}

func TestOriginUnknown(t *testing.T) {
	anon := entity.NetworkEntity{ID: "acct-1", Label: "acct-1", RiskScore: 0}
	named := testEntity("acct-2", 0)

	tests := []struct {
		name string
		snap Snapshot
		want bool
	}{
		{
			name: "no transfers",
			snap: Snapshot{Entities: []entity.NetworkEntity{anon}},
			want: false,
		},
		{
			name: "identified root sender",
			snap: Snapshot{
				Entities:  []entity.NetworkEntity{named, anon},
				Transfers: []transfer.Transfer{testTransfer("t1", "acct-2", "acct-1", 100)},
			},
			want: false,
		},
		{
			name: "only unidentified root senders",
			snap: Snapshot{
				Entities:  []entity.NetworkEntity{anon, named},
				Transfers: []transfer.Transfer{testTransfer("t1", "acct-1", "acct-2", 100)},
			},
			want: true,
		},
		{
			name: "cycle has no roots",
			snap: Snapshot{
				Entities: []entity.NetworkEntity{named, anon},
				Transfers: []transfer.Transfer{
					testTransfer("t1", "acct-1", "acct-2", 100),
					testTransfer("t2", "acct-2", "acct-1", 100),
				},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, originUnknown(tt.snap))
		})
	}
}

func TestSortGapsIdempotent(t *testing.T) {
	gaps := []intel.IntelligenceGap{
		{Category: "a", Impact: intel.ImpactMinor},
		{Category: "b", Impact: intel.ImpactCritical},
		{Category: "c", Impact: intel.ImpactSignificant},
		{Category: "d", Impact: intel.ImpactCritical},
	}
	intel.SortGaps(gaps)
	require.Equal(t, []string{"b", "d", "c", "a"}, []string{
		gaps[0].Category, gaps[1].Category, gaps[2].Category, gaps[3].Category,
	})
	again := append([]intel.IntelligenceGap(nil), gaps...)
	intel.SortGaps(again)
	assert.Equal(t, gaps, again)
}
