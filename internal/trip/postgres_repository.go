package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
// The plan sections (route summary, duty logs, map data) are stored as
// JSONB, mirroring the upstream wire contract.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL trip repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create persists a newly planned trip.
func (r *PostgresRepository) Create(ctx context.Context, trip *Trip) error {
	summary, err := json.Marshal(trip.RouteSummary)
	if err != nil {
		return fmt.Errorf("marshaling route summary: %w", err)
	}
	logs, err := json.Marshal(trip.HosLogs)
	if err != nil {
		return fmt.Errorf("marshaling duty logs: %w", err)
	}
	mapData, err := json.Marshal(trip.MapData)
	if err != nil {
		return fmt.Errorf("marshaling map data: %w", err)
	}

	query := `
		INSERT INTO trips (
			id, created_by, current_location, pickup_location, dropoff_location,
			current_cycle_used, route_summary, hos_logs, map_data, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.pool.Exec(ctx, query,
		trip.ID,
		trip.CreatedBy,
		trip.CurrentLocation,
		trip.PickupLocation,
		trip.DropoffLocation,
		trip.CurrentCycleUsed,
		summary,
		logs,
		mapData,
		trip.CreatedAt,
		trip.UpdatedAt,
	)
	return err
}

const tripColumns = `
	id, created_by, current_location, pickup_location, dropoff_location,
	current_cycle_used, route_summary, hos_logs, map_data, created_at, updated_at
`

// GetByUserAndID retrieves a trip owned by the given user.
func (r *PostgresRepository) GetByUserAndID(ctx context.Context, userID, tripID string) (*Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 AND created_by = $2`

	trip, err := scanTrip(r.pool.QueryRow(ctx, query, tripID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return trip, nil
}

// ListByUser retrieves the user's trips, most recently created first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, opts ListOptions) ([]*Trip, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + tripColumns + ` FROM trips WHERE created_by = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*Trip, error) {
	var (
		t       Trip
		summary []byte
		logs    []byte
		mapData []byte
	)

	err := row.Scan(
		&t.ID,
		&t.CreatedBy,
		&t.CurrentLocation,
		&t.PickupLocation,
		&t.DropoffLocation,
		&t.CurrentCycleUsed,
		&summary,
		&logs,
		&mapData,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(summary, &t.RouteSummary); err != nil {
		return nil, fmt.Errorf("unmarshaling route summary: %w", err)
	}
	if err := json.Unmarshal(logs, &t.HosLogs); err != nil {
		return nil, fmt.Errorf("unmarshaling duty logs: %w", err)
	}
	if err := json.Unmarshal(mapData, &t.MapData); err != nil {
		return nil, fmt.Errorf("unmarshaling map data: %w", err)
	}

	return &t, nil
}
