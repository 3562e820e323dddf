package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type MockDestinationResolver struct {
	mock.Mock
}

func (m *MockDestinationResolver) GetDestination(ctx context.Context, id uuid.UUID) (*types.Destination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Destination), args.Error(1)
}

func floatPtr(f float64) *float64 { return &f }

func TestValidator_Validate(t *testing.T) {
	ctx := context.Background()
	destID := uuid.New()
	dest := &types.Destination{ID: destID, Name: "Goa"}

	t.Run("three inclusive days", func(t *testing.T) {
		resolver := new(MockDestinationResolver)
		resolver.On("GetDestination", ctx, destID).Return(dest, nil).Once()

		req, got, err := NewValidator(resolver).Validate(ctx, types.TripParams{
			DestinationID: destID.String(),
			StartDate:     "2025-01-01",
			EndDate:       "2025-01-03",
			Budget:        floatPtr(15000),
			TravelStyle:   "Budget",
			Interests:     []string{" Culture", "food", "culture"},
		})
		require.NoError(t, err)
		assert.Equal(t, dest, got)
		assert.Equal(t, 3, req.TotalDays)
		assert.Equal(t, 15000.0, req.Budget)
		assert.Equal(t, types.TravelStyleBudget, req.TravelStyle)
		assert.Equal(t, []string{"culture", "food"}, req.Interests)
		resolver.AssertExpectations(t)
	})

	t.Run("same start and end is one day", func(t *testing.T) {
		resolver := new(MockDestinationResolver)
		resolver.On("GetDestination", ctx, destID).Return(dest, nil).Once()

		req, _, err := NewValidator(resolver).Validate(ctx, types.TripParams{
			DestinationID: destID.String(),
			StartDate:     "2025-06-01",
			EndDate:       "2025-06-01T18:30:00Z",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, req.TotalDays)
		assert.Equal(t, 0.0, req.Budget)
		assert.Equal(t, types.TravelStyleBalanced, req.TravelStyle)
	})

	t.Run("unknown destination is not found", func(t *testing.T) {
		resolver := new(MockDestinationResolver)
		resolver.On("GetDestination", ctx, destID).Return(nil, types.NotFound("no such destination")).Once()

		_, _, err := NewValidator(resolver).Validate(ctx, types.TripParams{
			DestinationID: destID.String(),
			StartDate:     "2025-06-01",
			EndDate:       "2025-06-02",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrNotFound))
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		resolver := new(MockDestinationResolver)
		dbErr := errors.New("connection reset")
		resolver.On("GetDestination", ctx, destID).Return(nil, dbErr).Once()

		_, _, err := NewValidator(resolver).Validate(ctx, types.TripParams{
			DestinationID: destID.String(),
			StartDate:     "2025-06-01",
			EndDate:       "2025-06-02",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		_, isPlanErr := types.AsPlanError(err)
		assert.False(t, isPlanErr)
	})

	t.Run("malformed input never reaches the resolver", func(t *testing.T) {
		resolver := new(MockDestinationResolver)
		_, _, err := NewValidator(resolver).Validate(ctx, types.TripParams{DestinationID: "goa"})
		require.Error(t, err)
		resolver.AssertNotCalled(t, "GetDestination", mock.Anything, mock.Anything)
	})
}

func TestParseTripParams_Failures(t *testing.T) {
	valid := uuid.NewString()
	tests := []struct {
		name   string
		params types.TripParams
		reason string
	}{
		{"missing destination", types.TripParams{StartDate: "2025-01-01", EndDate: "2025-01-02"}, types.ReasonMissingField},
		{"bad destination", types.TripParams{DestinationID: "paris", StartDate: "2025-01-01", EndDate: "2025-01-02"}, types.ReasonBadDestination},
		{"missing start", types.TripParams{DestinationID: valid, EndDate: "2025-01-02"}, types.ReasonMissingField},
		{"missing end", types.TripParams{DestinationID: valid, StartDate: "2025-01-02"}, types.ReasonMissingField},
		{"unparsable start", types.TripParams{DestinationID: valid, StartDate: "01/02/2025", EndDate: "2025-01-02"}, types.ReasonBadDateRange},
		{"end before start", types.TripParams{DestinationID: valid, StartDate: "2025-01-05", EndDate: "2025-01-02"}, types.ReasonBadDateRange},
		{"negative budget", types.TripParams{DestinationID: valid, StartDate: "2025-01-01", EndDate: "2025-01-02", Budget: floatPtr(-1)}, types.ReasonBadBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTripParams(tt.params)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrInvalidRequest)
			pe, ok := types.AsPlanError(err)
			require.True(t, ok)
			assert.Equal(t, tt.reason, pe.Reason)
		})
	}
}

func TestTotalDays(t *testing.T) {
	start, err := types.ParseDate("2024-02-27")
	require.NoError(t, err)

	assert.Equal(t, 1, TotalDays(start, start))
	assert.Equal(t, 4, TotalDays(start, start.AddDays(3)))
	assert.Equal(t, 1, TotalDays(start, start.AddDays(-2)))
}
