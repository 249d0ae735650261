package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casefusion/casefusion-backend/internal/domain/location"
	"github.com/casefusion/casefusion-backend/internal/service/intel"
)

// locationRepository reads verified location telemetry. Unverifiable
// sources are filtered at import time, so no filtering happens here.
type locationRepository struct {
	pool *pgxpool.Pool
}

// NewLocationRepository creates a location reader over the shared pool.
func NewLocationRepository(pool *pgxpool.Pool) intel.LocationReader {
	return &locationRepository{pool: pool}
}

func (r *locationRepository) ListLocations(ctx context.Context, caseID string) ([]location.Point, error) {
	query := `
		SELECT latitude, longitude, COALESCE(location_name, ''),
		       source, recorded_at, COALESCE(person_name, '')
		FROM location_points
		WHERE case_id = $1
		ORDER BY recorded_at NULLS LAST
	`

	rows, err := r.pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	points := []location.Point{}
	for rows.Next() {
		var p location.Point
		var source string
		if err := rows.Scan(&p.Latitude, &p.Longitude, &p.LocationName,
			&source, &p.Timestamp, &p.PersonName); err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		p.Source = location.Source(source)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate location rows: %w", err)
	}
	return points, nil
}
