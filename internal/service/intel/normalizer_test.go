package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefusion/casefusion-backend/internal/domain/calls"
	"github.com/casefusion/casefusion-backend/internal/domain/crypto"
	"github.com/casefusion/casefusion-backend/internal/domain/entity"
	"github.com/casefusion/casefusion-backend/internal/domain/transfer"
)

func intPtr(v int) *int         { return &v }
func boolPtr(v bool) *bool      { return &v }
func strPtr(v string) *string   { return &v }
func f64Ptr(v float64) *float64 { return &v }

func TestNormalize_EntityDefaults(t *testing.T) {
	tests := []struct {
		name string
		rec  entity.Record
		want entity.NetworkEntity
	}{
		{
			name: "all fields present",
			rec: entity.Record{
				ID:        "e1",
				Label:     "Somchai",
				Type:      "person",
				RiskScore: intPtr(73),
				IsSuspect: boolPtr(true),
			},
			want: entity.NetworkEntity{
				ID: "e1", Label: "Somchai", Type: entity.TypePerson,
				RiskScore: 73, IsSuspect: true,
				RiskFactors: []entity.RiskFactor{},
			},
		},
		{
			name: "missing optionals default",
			rec:  entity.Record{ID: "e2", Label: "acct"},
			want: entity.NetworkEntity{
				ID: "e2", Label: "acct", Type: entity.TypeUnknown,
				RiskFactors: []entity.RiskFactor{},
			},
		},
		{
			name: "score clamped above",
			rec:  entity.Record{ID: "e3", RiskScore: intPtr(250)},
			want: entity.NetworkEntity{
				ID: "e3", Type: entity.TypeUnknown, RiskScore: 100,
				RiskFactors: []entity.RiskFactor{},
			},
		},
		{
			name: "score clamped below",
			rec:  entity.Record{ID: "e4", RiskScore: intPtr(-10)},
			want: entity.NetworkEntity{
				ID: "e4", Type: entity.TypeUnknown, RiskScore: 0,
				RiskFactors: []entity.RiskFactor{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Normalize("case-1", fetched{entities: []entity.Record{tt.rec}}, nil)
			require.Len(t, snap.Entities, 1)
			assert.Equal(t, tt.want, snap.Entities[0])
		})
	}
}

func TestNormalize_EntityMetadata(t *testing.T) {
	good := `{"riskFactors":[{"factor":"velocity","score":30,"description":"rapid in/out"}]}`
	bad := `{"riskFactors": not json`

	snap := Normalize("case-1", fetched{entities: []entity.Record{
		{ID: "e1", MetadataJSON: strPtr(good)},
		{ID: "e2", MetadataJSON: strPtr(bad)},
		{ID: "e3"},
	}}, nil)

	require.Len(t, snap.Entities, 3)
	require.Len(t, snap.Entities[0].RiskFactors, 1)
	assert.Equal(t, "velocity", snap.Entities[0].RiskFactors[0].Factor)
	// Malformed metadata degrades to no factors, not an error.
	assert.Empty(t, snap.Entities[1].RiskFactors)
	assert.Empty(t, snap.Entities[2].RiskFactors)
}

func TestNormalize_TransferDefaults(t *testing.T) {
	snap := Normalize("case-1", fetched{transfers: []transfer.Record{
		{ID: "t1", FromEntityID: "a", ToEntityID: "b", Amount: f64Ptr(5000), EdgeType: strPtr("loan")},
		{ID: "t2", FromEntityID: "b", ToEntityID: "c"},
	}}, nil)

	require.Len(t, snap.Transfers, 2)
	assert.Equal(t, "loan", snap.Transfers[0].EdgeType)
	assert.Equal(t, 5000.0, snap.Transfers[0].Amount)
	assert.Equal(t, "transfer", snap.Transfers[1].EdgeType)
	assert.Equal(t, 0.0, snap.Transfers[1].Amount)
}

func TestNormalize_CallAndCryptoDefaults(t *testing.T) {
	snap := Normalize("case-1", fetched{
		calls: []calls.Record{
			{PhoneNumber: "+66811111111"},
			{PhoneNumber: "+66822222222", RiskLevel: calls.RiskHigh},
		},
		wallets: []crypto.Wallet{
			{Address: "0xaaa", RiskScore: 300},
		},
		activity: []crypto.Activity{
			{TxHash: "0x1", RiskScore: -5},
		},
	}, nil)

	assert.Equal(t, calls.RiskLow, snap.Calls[0].RiskLevel)
	assert.Equal(t, calls.RiskHigh, snap.Calls[1].RiskLevel)
	assert.Equal(t, 100, snap.Wallets[0].RiskScore)
	assert.Equal(t, crypto.FlagNone, snap.Activity[0].RiskFlag)
	assert.Equal(t, 0, snap.Activity[0].RiskScore)
}

func TestNormalize_EmptyFetchYieldsEmptySlices(t *testing.T) {
	snap := Normalize("case-9", fetched{}, nil)

	assert.Equal(t, "case-9", snap.CaseID)
	assert.NotNil(t, snap.Entities)
	assert.NotNil(t, snap.Transfers)
	assert.NotNil(t, snap.Calls)
	assert.NotNil(t, snap.Wallets)
	assert.NotNil(t, snap.Activity)
	assert.NotNil(t, snap.Locations)
	assert.Equal(t, 0, snap.TotalItems())
	assert.Equal(t, 0, snap.SourceCount())
}
