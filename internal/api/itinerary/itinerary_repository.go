package itinerary

import (
	"context"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// Repository persists whole itinerary documents. Save is an upsert keyed by ID.
// Get and Delete report a missing itinerary as a not_found PlanError.
type Repository interface {
	Save(ctx context.Context, it *types.Itinerary) error
	Get(ctx context.Context, id uuid.UUID) (*types.Itinerary, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]types.Itinerary, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func offset(page, pageSize int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * pageSize
}
