package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CaseRepository answers case existence checks for the API layer.
type CaseRepository interface {
	CaseExists(ctx context.Context, caseID string) (bool, error)
}

type caseRepository struct {
	pool *pgxpool.Pool
}

// NewCaseRepository creates a case repository over the shared pool.
func NewCaseRepository(pool *pgxpool.Pool) CaseRepository {
	return &caseRepository{pool: pool}
}

func (r *caseRepository) CaseExists(ctx context.Context, caseID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM cases WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, caseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check case existence: %w", err)
	}
	return exists, nil
}
