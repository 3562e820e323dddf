package destination

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func newMockRepository(t *testing.T) (pgxmock.PgxPoolIface, *RepositoryImpl) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewRepository(mock, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRepository_GetDestination(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		mock, repo := newMockRepository(t)
		mock.ExpectQuery("FROM destinations").
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "country", "currency", "summary"}).
				AddRow(id, "Goa", "India", "INR", []byte(`{"en":"Beaches and forts"}`)))

		d, err := repo.GetDestination(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Goa", d.Name)
		assert.Equal(t, "Beaches and forts", d.Summary.Default())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing maps to not found", func(t *testing.T) {
		mock, repo := newMockRepository(t)
		mock.ExpectQuery("FROM destinations").WithArgs(id).WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetDestination(ctx, id)
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver errors are wrapped", func(t *testing.T) {
		mock, repo := newMockRepository(t)
		dbErr := errors.New("connection refused")
		mock.ExpectQuery("FROM destinations").WithArgs(id).WillReturnError(dbErr)

		_, err := repo.GetDestination(ctx, id)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, types.ErrNotFound)
	})
}

func TestRepository_CatalogQueries(t *testing.T) {
	ctx := context.Background()
	destID := uuid.New()

	t.Run("points of interest", func(t *testing.T) {
		mock, repo := newMockRepository(t)
		mock.ExpectQuery("FROM points_of_interest").
			WithArgs(destID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "category", "costs", "duration_minutes", "tags", "latitude", "longitude"}).
				AddRow("fort", []byte(`{"en":"Aguada Fort"}`), "history", []byte(`[{"label":"entry","amount":50}]`), 90, []string{"views"}, 15.49, 73.77).
				AddRow("beach", []byte(`{"en":"Baga Beach"}`), "nature", []byte(`[]`), 180, []string{}, 15.55, 73.75))

		pois, err := repo.GetPOIs(ctx, destID)
		require.NoError(t, err)
		require.Len(t, pois, 2)
		assert.Equal(t, "Aguada Fort", pois[0].Name.Default())
		assert.Equal(t, 50.0, pois[0].VisitCost())
		assert.Equal(t, 0.0, pois[1].VisitCost())
		assert.Equal(t, 15.49, pois[0].Location.Latitude)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("accommodations", func(t *testing.T) {
		mock, repo := newMockRepository(t)
		mock.ExpectQuery("FROM accommodations").
			WithArgs(destID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "cost_per_night", "category", "amenities"}).
				AddRow("hostel", []byte(`{"en":"Zostel"}`), 1800.0, "hostel", []string{"wifi"}))

		accs, err := repo.GetAccommodations(ctx, destID)
		require.NoError(t, err)
		require.Len(t, accs, 1)
		assert.Equal(t, 1800.0, accs[0].CostPerNight)
		assert.Equal(t, []string{"wifi"}, accs[0].Amenities)
	})

	t.Run("day records", func(t *testing.T) {
		mock, repo := newMockRepository(t)
		mock.ExpectQuery("FROM day_records").
			WithArgs(destID).
			WillReturnRows(pgxmock.NewRows([]string{"day_number", "record"}).
				AddRow(1, []byte(`{"activities":[{"poi_id":"fort","cost":50,"category":"history"}],"accommodation_id":"hostel","accommodation_cost":1800,"transport_mode":"bus","transport_cost":120}`)))

		records, err := repo.GetDayRecords(ctx, destID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 1, records[0].DayNumber)
		assert.Equal(t, "fort", records[0].Activities[0].PoiID)
		assert.Equal(t, 120.0, records[0].TransportCost)
	})

	t.Run("corrupt json column", func(t *testing.T) {
		mock, repo := newMockRepository(t)
		mock.ExpectQuery("FROM day_records").
			WithArgs(destID).
			WillReturnRows(pgxmock.NewRows([]string{"day_number", "record"}).AddRow(1, []byte(`{"activities":`)))

		_, err := repo.GetDayRecords(ctx, destID)
		assert.Error(t, err)
	})
}
