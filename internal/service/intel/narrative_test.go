package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefusion/casefusion-backend/internal/domain/calls"
	"github.com/casefusion/casefusion-backend/internal/domain/crypto"
	"github.com/casefusion/casefusion-backend/internal/domain/entity"
	"github.com/casefusion/casefusion-backend/internal/domain/location"
	"github.com/casefusion/casefusion-backend/internal/domain/transfer"
)

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"en", LangEnglish},
		{"th", LangThai},
		{"TH", LangThai},
		{"", LangEnglish},
		{"de", LangEnglish},
		{"thai", LangEnglish},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeLanguage(tt.in), "input %q", tt.in)
	}
}

func TestSummarize_EmptyCase(t *testing.T) {
	e := newTestEngine(t)
	run := e.Run(Snapshot{CaseID: "case-1"}, LangEnglish)

	n := run.Narrative
	assert.Equal(t, "No financial transfer data is available for this case.", n.Financial)
	assert.Equal(t, "No telephone records are available for this case.", n.Calls)
	assert.Equal(t, "No cryptocurrency data is available for this case.", n.Crypto)
	assert.Equal(t, "No location telemetry is available for this case.", n.Location)
	assert.Contains(t, n.Overall, "0 red flags")
	assert.Contains(t, n.Overall, "0% (low)")
}

func TestSummarize_PopulatedCase(t *testing.T) {
	e := newTestEngine(t)

	snap := Snapshot{
		CaseID: "case-2",
		Entities: []entity.NetworkEntity{
			testEntity("a", 90), testEntity("b", 20),
		},
		Transfers: []transfer.Transfer{
			testTransfer("t1", "a", "b", 250_000),
		},
		Calls: []calls.Record{
			{PhoneNumber: "+66811111111", RiskLevel: calls.RiskHigh},
			{PhoneNumber: "+66822222222", RiskLevel: calls.RiskLow},
		},
		Wallets: []crypto.Wallet{
			{Address: "bc1qmixer", Blockchain: "btc", IsMixer: true},
		},
		Locations: []location.Point{
			{Latitude: 13.75, Longitude: 100.5, Source: location.SourceCellTower},
		},
	}
	run := e.Run(snap, LangEnglish)

	n := run.Narrative
	assert.Contains(t, n.Financial, "2 entities and 1 transfers")
	assert.Contains(t, n.Financial, "250000.00 THB")
	assert.Contains(t, n.Calls, "2 partners, 1 of them rated high risk")
	assert.Contains(t, n.Crypto, "1 wallets and 0 on-chain transactions")
	assert.Contains(t, n.Crypto, "Mixer involvement was detected")
	assert.Contains(t, n.Location, "1 verified points")
}

func TestSummarize_Thai(t *testing.T) {
	e := newTestEngine(t)

	snap := Snapshot{
		CaseID:   "case-3",
		Entities: []entity.NetworkEntity{testEntity("a", 10)},
	}
	run := e.Run(snap, LangThai)

	require.Equal(t, LangThai, run.Language)
	assert.Contains(t, run.Narrative.Financial, "กราฟเส้นทางการเงิน")
	assert.Contains(t, run.Narrative.Calls, "ไม่มีข้อมูลการโทร")
	assert.Contains(t, run.Narrative.Overall, "ความเชื่อมั่น")
}

func TestSummarize_UnknownLanguageFallsBack(t *testing.T) {
	e := newTestEngine(t)
	run := e.Run(Snapshot{CaseID: "case-4"}, "xx")

	assert.Equal(t, LangEnglish, run.Language)
	assert.Contains(t, run.Narrative.Overall, "red flags")
}
