package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casefusion/casefusion-backend/internal/domain/calls"
	"github.com/casefusion/casefusion-backend/internal/service/intel"
)

// callRepository reads call-partner aggregates produced by the upstream
// phone-extraction importer.
type callRepository struct {
	pool *pgxpool.Pool
}

// NewCallRepository creates a call-record reader over the shared pool.
func NewCallRepository(pool *pgxpool.Pool) intel.CallReader {
	return &callRepository{pool: pool}
}

func (r *callRepository) ListCallRecords(ctx context.Context, caseID string) ([]calls.Record, error) {
	query := `
		SELECT phone_number, COALESCE(label, ''), total_calls,
		       total_duration_seconds, COALESCE(risk_level, '')
		FROM call_records
		WHERE case_id = $1
		ORDER BY total_calls DESC, phone_number
	`

	rows, err := r.pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query call records: %w", err)
	}
	defer rows.Close()

	records := []calls.Record{}
	for rows.Next() {
		var rec calls.Record
		var riskLevel string
		if err := rows.Scan(&rec.PhoneNumber, &rec.Label, &rec.TotalCalls,
			&rec.TotalDurationSeconds, &riskLevel); err != nil {
			return nil, fmt.Errorf("failed to scan call record row: %w", err)
		}
		rec.RiskLevel = calls.RiskLevel(riskLevel)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate call record rows: %w", err)
	}
	return records, nil
}
