package intel

import (
	"context"

	"github.com/casefusion/casefusion-backend/internal/domain/calls"
	"github.com/casefusion/casefusion-backend/internal/domain/crypto"
	"github.com/casefusion/casefusion-backend/internal/domain/entity"
	"github.com/casefusion/casefusion-backend/internal/domain/location"
	"github.com/casefusion/casefusion-backend/internal/domain/transfer"
)

// Read contracts over the four forensic data domains. Implementations are
// side-effect-free reads; the service fans them out concurrently and treats
// any failure as an empty domain.

// EntityReader fetches raw money-flow nodes for a case.
type EntityReader interface {
	ListEntities(ctx context.Context, caseID string) ([]entity.Record, error)
}

// TransferReader fetches raw money-flow edges for a case.
type TransferReader interface {
	ListTransfers(ctx context.Context, caseID string) ([]transfer.Record, error)
}

// CallReader fetches aggregated call-partner records for a case.
type CallReader interface {
	ListCallRecords(ctx context.Context, caseID string) ([]calls.Record, error)
}

// CryptoReader fetches wallets and transaction-level activity for a case.
type CryptoReader interface {
	ListWallets(ctx context.Context, caseID string) ([]crypto.Wallet, error)
	ListActivity(ctx context.Context, caseID string) ([]crypto.Activity, error)
}

// LocationReader fetches verified location telemetry for a case.
type LocationReader interface {
	ListLocations(ctx context.Context, caseID string) ([]location.Point, error)
}

// Fetchers bundles the domain readers the service fans out over.
type Fetchers struct {
	Entities  EntityReader
	Transfers TransferReader
	Calls     CallReader
	Crypto    CryptoReader
	Locations LocationReader
}

// RunCache stores finished analysis runs keyed by (case, language).
type RunCache interface {
	Get(ctx context.Context, caseID, language string) (*AnalysisRun, error)
	Set(ctx context.Context, run *AnalysisRun) error
	Invalidate(ctx context.Context, caseID string) error
}
