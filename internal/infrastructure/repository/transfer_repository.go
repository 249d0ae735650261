package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casefusion/casefusion-backend/internal/domain/transfer"
	"github.com/casefusion/casefusion-backend/internal/service/intel"
)

type transferRepository struct {
	pool *pgxpool.Pool
}

// NewTransferRepository creates a transfer reader over the shared pool.
func NewTransferRepository(pool *pgxpool.Pool) intel.TransferReader {
	return &transferRepository{pool: pool}
}

func (r *transferRepository) ListTransfers(ctx context.Context, caseID string) ([]transfer.Record, error) {
	query := `
		SELECT id, from_entity_id, to_entity_id, amount, edge_type, occurred_at
		FROM transfers
		WHERE case_id = $1
		ORDER BY occurred_at NULLS LAST, id
	`

	rows, err := r.pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	records := []transfer.Record{}
	for rows.Next() {
		var rec transfer.Record
		if err := rows.Scan(&rec.ID, &rec.FromEntityID, &rec.ToEntityID,
			&rec.Amount, &rec.EdgeType, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan transfer row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfer rows: %w", err)
	}
	return records, nil
}
