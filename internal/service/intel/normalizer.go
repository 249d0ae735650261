package intel

import (
	"log/slog"

	"github.com/casefusion/casefusion-backend/internal/domain/calls"
	"github.com/casefusion/casefusion-backend/internal/domain/crypto"
	"github.com/casefusion/casefusion-backend/internal/domain/entity"
	"github.com/casefusion/casefusion-backend/internal/domain/location"
	"github.com/casefusion/casefusion-backend/internal/domain/transfer"
)

// fetched holds the raw, possibly partially-failed results of one fan-out.
// Each failed domain arrives as a nil slice.
type fetched struct {
	entities  []entity.Record
	transfers []transfer.Record
	calls     []calls.Record
	wallets   []crypto.Wallet
	activity  []crypto.Activity
	locations []location.Point
}

// Normalize defaults the independently-fetched record sets into the
// canonical snapshot shapes. Any subset may be empty; partial fetch
// failure is never fatal. Deduplication is an upstream responsibility.
func Normalize(caseID string, raw fetched, logger *slog.Logger) Snapshot {
	snap := Snapshot{
		CaseID:    caseID,
		Entities:  make([]entity.NetworkEntity, 0, len(raw.entities)),
		Transfers: make([]transfer.Transfer, 0, len(raw.transfers)),
		Calls:     make([]calls.Record, 0, len(raw.calls)),
		Wallets:   make([]crypto.Wallet, 0, len(raw.wallets)),
		Activity:  make([]crypto.Activity, 0, len(raw.activity)),
		Locations: make([]location.Point, 0, len(raw.locations)),
	}

	for _, rec := range raw.entities {
		snap.Entities = append(snap.Entities, normalizeEntity(rec, logger))
	}
	for _, rec := range raw.transfers {
		snap.Transfers = append(snap.Transfers, normalizeTransfer(rec))
	}
	for _, rec := range raw.calls {
		if rec.RiskLevel == "" {
			rec.RiskLevel = calls.RiskLow
		}
		snap.Calls = append(snap.Calls, rec)
	}
	for _, w := range raw.wallets {
		w.RiskScore = clampScore(w.RiskScore)
		snap.Wallets = append(snap.Wallets, w)
	}
	for _, a := range raw.activity {
		if a.RiskFlag == "" {
			a.RiskFlag = crypto.FlagNone
		}
		a.RiskScore = clampScore(a.RiskScore)
		snap.Activity = append(snap.Activity, a)
	}
	snap.Locations = append(snap.Locations, raw.locations...)

	return snap
}

func normalizeEntity(rec entity.Record, logger *slog.Logger) entity.NetworkEntity {
	e := entity.NetworkEntity{
		ID:          rec.ID,
		Label:       rec.Label,
		Type:        entity.Type(rec.Type),
		RiskFactors: []entity.RiskFactor{},
	}
	if e.Type == "" {
		e.Type = entity.TypeUnknown
	}
	if rec.RiskScore != nil {
		e.RiskScore = clampScore(*rec.RiskScore)
	}
	if rec.IsSuspect != nil {
		e.IsSuspect = *rec.IsSuspect
	}
	if rec.IsVictim != nil {
		e.IsVictim = *rec.IsVictim
	}

	md, ok := entity.DecodeMetadata(rec.MetadataJSON)
	if !ok && logger != nil {
		// Malformed metadata defaults to empty; logged, never surfaced.
		logger.Warn("malformed entity metadata", "entity_id", rec.ID)
	}
	if md.RiskFactors != nil {
		e.RiskFactors = md.RiskFactors
	}
	return e
}

func normalizeTransfer(rec transfer.Record) transfer.Transfer {
	t := transfer.Transfer{
		ID:           rec.ID,
		FromEntityID: rec.FromEntityID,
		ToEntityID:   rec.ToEntityID,
		EdgeType:     "transfer",
		Timestamp:    rec.Timestamp,
	}
	if rec.Amount != nil {
		t.Amount = *rec.Amount
	}
	if rec.EdgeType != nil && *rec.EdgeType != "" {
		t.EdgeType = *rec.EdgeType
	}
	return t
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
