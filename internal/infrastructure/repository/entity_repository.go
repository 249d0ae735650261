package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casefusion/casefusion-backend/internal/domain/entity"
	"github.com/casefusion/casefusion-backend/internal/service/intel"
)

// entityRepository reads money-flow nodes from PostgreSQL. Optional columns
// surface as nil pointers on the record; defaulting is the normalizer's job.
type entityRepository struct {
	pool *pgxpool.Pool
}

// NewEntityRepository creates an entity reader over the shared pool.
func NewEntityRepository(pool *pgxpool.Pool) intel.EntityReader {
	return &entityRepository{pool: pool}
}

func (r *entityRepository) ListEntities(ctx context.Context, caseID string) ([]entity.Record, error) {
	query := `
		SELECT id, label, type, risk_score, is_suspect, is_victim, metadata
		FROM network_entities
		WHERE case_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	records := []entity.Record{}
	for rows.Next() {
		var rec entity.Record
		var label, typ *string
		if err := rows.Scan(&rec.ID, &label, &typ, &rec.RiskScore,
			&rec.IsSuspect, &rec.IsVictim, &rec.MetadataJSON); err != nil {
			return nil, fmt.Errorf("failed to scan entity row: %w", err)
		}
		if label != nil {
			rec.Label = *label
		}
		if typ != nil {
			rec.Type = *typ
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entity rows: %w", err)
	}
	return records, nil
}
