package itinerary

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

var _ Repository = (*PostgresRepository)(nil)

// PostgresRepository stores each itinerary as a JSONB document next to the
// columns it is queried by.
type PostgresRepository struct {
	logger *slog.Logger
	pgpool database.Pool
}

func NewPostgresRepository(pgpool database.Pool, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresRepository) Save(ctx context.Context, it *types.Itinerary) error {
	document, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("failed to encode itinerary: %w", err)
	}
	query := `
        INSERT INTO itineraries (id, user_id, destination_id, status, document, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO UPDATE SET
            status = EXCLUDED.status,
            document = EXCLUDED.document,
            updated_at = EXCLUDED.updated_at
    `
	if _, err := r.pgpool.Exec(ctx, query,
		it.ID, it.UserID, it.DestinationID, string(it.Status), document, it.CreatedAt, it.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to save itinerary: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*types.Itinerary, error) {
	query := `SELECT document FROM itineraries WHERE id = $1`
	var document []byte
	if err := r.pgpool.QueryRow(ctx, query, id).Scan(&document); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NotFound("itinerary %s not found", id)
		}
		return nil, fmt.Errorf("failed to find itinerary: %w", err)
	}
	var it types.Itinerary
	if err := json.Unmarshal(document, &it); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary %s: %w", id, err)
	}
	return &it, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]types.Itinerary, int, error) {
	var total int
	if err := r.pgpool.QueryRow(ctx, `SELECT COUNT(*) FROM itineraries WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count itineraries: %w", err)
	}

	query := `
        SELECT document
        FROM itineraries
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.pgpool.Query(ctx, query, userID, pageSize, offset(page, pageSize))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list itineraries: %w", err)
	}
	defer rows.Close()

	itineraries := []types.Itinerary{}
	for rows.Next() {
		var document []byte
		if err := rows.Scan(&document); err != nil {
			return nil, 0, fmt.Errorf("failed to scan itinerary: %w", err)
		}
		var it types.Itinerary
		if err := json.Unmarshal(document, &it); err != nil {
			r.logger.WarnContext(ctx, "Skipping undecodable itinerary document", slog.Any("error", err))
			continue
		}
		itineraries = append(itineraries, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating itineraries: %w", err)
	}
	return itineraries, total, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM itineraries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.NotFound("itinerary %s not found", id)
	}
	return nil
}
