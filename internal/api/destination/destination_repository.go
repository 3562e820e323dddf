package destination

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	database "github.com/FACorreiaa/go-trip-planner/app/db"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

type Repository interface {
	GetDestination(ctx context.Context, id uuid.UUID) (*types.Destination, error)
	ListDestinations(ctx context.Context) ([]types.Destination, error)
	GetPOIs(ctx context.Context, destinationID uuid.UUID) ([]types.POI, error)
	GetAccommodations(ctx context.Context, destinationID uuid.UUID) ([]types.Accommodation, error)
	GetDayRecords(ctx context.Context, destinationID uuid.UUID) ([]types.DayRecord, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool database.Pool
}

func NewRepository(pgpool database.Pool, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *RepositoryImpl) GetDestination(ctx context.Context, id uuid.UUID) (*types.Destination, error) {
	query := `
        SELECT id, name, country, currency, summary
        FROM destinations
        WHERE id = $1
    `
	var d types.Destination
	var summary []byte
	if err := r.pgpool.QueryRow(ctx, query, id).Scan(&d.ID, &d.Name, &d.Country, &d.Currency, &summary); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NotFound("destination %s not found", id)
		}
		return nil, fmt.Errorf("failed to find destination: %w", err)
	}
	if err := unmarshalJSONColumn(summary, &d.Summary); err != nil {
		return nil, fmt.Errorf("failed to decode destination summary: %w", err)
	}
	return &d, nil
}

func (r *RepositoryImpl) ListDestinations(ctx context.Context) ([]types.Destination, error) {
	query := `
        SELECT id, name, country, currency, summary
        FROM destinations
        ORDER BY name
    `
	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query destinations: %w", err)
	}
	defer rows.Close()

	destinations := []types.Destination{}
	for rows.Next() {
		var d types.Destination
		var summary []byte
		if err := rows.Scan(&d.ID, &d.Name, &d.Country, &d.Currency, &summary); err != nil {
			return nil, fmt.Errorf("failed to scan destination row: %w", err)
		}
		if err := unmarshalJSONColumn(summary, &d.Summary); err != nil {
			return nil, fmt.Errorf("failed to decode destination summary: %w", err)
		}
		destinations = append(destinations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating destination rows: %w", err)
	}
	return destinations, nil
}

func (r *RepositoryImpl) GetPOIs(ctx context.Context, destinationID uuid.UUID) ([]types.POI, error) {
	query := `
        SELECT id, name, category, costs, duration_minutes, tags, latitude, longitude
        FROM points_of_interest
        WHERE destination_id = $1
        ORDER BY position, id
    `
	rows, err := r.pgpool.Query(ctx, query, destinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query points of interest: %w", err)
	}
	defer rows.Close()

	pois := []types.POI{}
	for rows.Next() {
		var p types.POI
		var name, costs []byte
		if err := rows.Scan(&p.ID, &name, &p.Category, &costs, &p.DurationMinutes, &p.Tags,
			&p.Location.Latitude, &p.Location.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan point of interest row: %w", err)
		}
		if err := unmarshalJSONColumn(name, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to decode name of poi %s: %w", p.ID, err)
		}
		if err := unmarshalJSONColumn(costs, &p.Costs); err != nil {
			return nil, fmt.Errorf("failed to decode costs of poi %s: %w", p.ID, err)
		}
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating point of interest rows: %w", err)
	}
	return pois, nil
}

func (r *RepositoryImpl) GetAccommodations(ctx context.Context, destinationID uuid.UUID) ([]types.Accommodation, error) {
	query := `
        SELECT id, name, cost_per_night, category, amenities
        FROM accommodations
        WHERE destination_id = $1
        ORDER BY position, id
    `
	rows, err := r.pgpool.Query(ctx, query, destinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accommodations: %w", err)
	}
	defer rows.Close()

	accommodations := []types.Accommodation{}
	for rows.Next() {
		var a types.Accommodation
		var name []byte
		if err := rows.Scan(&a.ID, &name, &a.CostPerNight, &a.Category, &a.Amenities); err != nil {
			return nil, fmt.Errorf("failed to scan accommodation row: %w", err)
		}
		if err := unmarshalJSONColumn(name, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to decode name of accommodation %s: %w", a.ID, err)
		}
		accommodations = append(accommodations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accommodation rows: %w", err)
	}
	return accommodations, nil
}

func (r *RepositoryImpl) GetDayRecords(ctx context.Context, destinationID uuid.UUID) ([]types.DayRecord, error) {
	query := `
        SELECT day_number, record
        FROM day_records
        WHERE destination_id = $1
        ORDER BY day_number
    `
	rows, err := r.pgpool.Query(ctx, query, destinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query day records: %w", err)
	}
	defer rows.Close()

	records := []types.DayRecord{}
	for rows.Next() {
		var dayNumber int
		var raw []byte
		if err := rows.Scan(&dayNumber, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan day record row: %w", err)
		}
		var rec types.DayRecord
		if err := unmarshalJSONColumn(raw, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode day record %d: %w", dayNumber, err)
		}
		rec.DayNumber = dayNumber
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating day record rows: %w", err)
	}
	return records, nil
}

// unmarshalJSONColumn decodes a nullable jsonb column; NULL leaves dst untouched.
func unmarshalJSONColumn(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
