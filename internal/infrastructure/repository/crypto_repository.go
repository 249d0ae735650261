package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casefusion/casefusion-backend/internal/domain/crypto"
	"github.com/casefusion/casefusion-backend/internal/service/intel"
)

type cryptoRepository struct {
	pool *pgxpool.Pool
}

// NewCryptoRepository creates a crypto reader over the shared pool.
func NewCryptoRepository(pool *pgxpool.Pool) intel.CryptoReader {
	return &cryptoRepository{pool: pool}
}

func (r *cryptoRepository) ListWallets(ctx context.Context, caseID string) ([]crypto.Wallet, error) {
	query := `
		SELECT address, blockchain, COALESCE(label, ''),
		       total_received, total_sent, risk_score, is_mixer, is_suspect
		FROM crypto_wallets
		WHERE case_id = $1
		ORDER BY risk_score DESC, address
	`

	rows, err := r.pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}
	defer rows.Close()

	wallets := []crypto.Wallet{}
	for rows.Next() {
		var w crypto.Wallet
		if err := rows.Scan(&w.Address, &w.Blockchain, &w.Label,
			&w.TotalReceived, &w.TotalSent, &w.RiskScore,
			&w.IsMixer, &w.IsSuspect); err != nil {
			return nil, fmt.Errorf("failed to scan wallet row: %w", err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wallet rows: %w", err)
	}
	return wallets, nil
}

func (r *cryptoRepository) ListActivity(ctx context.Context, caseID string) ([]crypto.Activity, error) {
	query := `
		SELECT tx_hash, blockchain, from_address, to_address,
		       amount, amount_usd, occurred_at, COALESCE(risk_flag, ''), risk_score
		FROM crypto_activity
		WHERE case_id = $1
		ORDER BY occurred_at NULLS LAST, tx_hash
	`

	rows, err := r.pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query crypto activity: %w", err)
	}
	defer rows.Close()

	activity := []crypto.Activity{}
	for rows.Next() {
		var a crypto.Activity
		var riskFlag string
		if err := rows.Scan(&a.TxHash, &a.Blockchain, &a.FromAddress, &a.ToAddress,
			&a.Amount, &a.AmountUSD, &a.Timestamp, &riskFlag, &a.RiskScore); err != nil {
			return nil, fmt.Errorf("failed to scan crypto activity row: %w", err)
		}
		a.RiskFlag = crypto.ActivityFlag(riskFlag)
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate crypto activity rows: %w", err)
	}
	return activity, nil
}
