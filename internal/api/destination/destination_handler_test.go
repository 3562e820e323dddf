package destination

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) GetDestination(ctx context.Context, id uuid.UUID) (*types.Destination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Destination), args.Error(1)
}

func (m *MockService) ListDestinations(ctx context.Context) ([]types.Destination, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Destination), args.Error(1)
}

func (m *MockService) GetCatalog(ctx context.Context, id uuid.UUID) (types.Catalog, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.Catalog), args.Error(1)
}

func (m *MockService) GetFilteredCatalog(ctx context.Context, id uuid.UUID, style types.TravelStyle) (types.Catalog, error) {
	args := m.Called(ctx, id, style)
	return args.Get(0).(types.Catalog), args.Error(1)
}

func newTestRouter(h *HandlerImpl) http.Handler {
	r := chi.NewRouter()
	r.Get("/destinations", h.ListDestinations)
	r.Get("/destinations/{id}/catalog", h.GetCatalog)
	return r
}

func TestHandler_GetCatalog(t *testing.T) {
	id := uuid.New()

	t.Run("style query is applied", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetFilteredCatalog", mock.Anything, id, types.TravelStyleLuxury).
			Return(types.Catalog{Destination: types.Destination{ID: id, Name: "Goa"}}, nil).Once()

		rr := httptest.NewRecorder()
		newTestRouter(NewHandler(svc, testLogger())).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/destinations/"+id.String()+"/catalog?style=luxury", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var got types.Catalog
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "Goa", got.Destination.Name)
		svc.AssertExpectations(t)
	})

	t.Run("unknown style falls back to balanced", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetFilteredCatalog", mock.Anything, id, types.TravelStyleBalanced).Return(types.Catalog{}, nil).Once()

		rr := httptest.NewRecorder()
		newTestRouter(NewHandler(svc, testLogger())).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/destinations/"+id.String()+"/catalog?style=glamping", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("bad id", func(t *testing.T) {
		svc := new(MockService)
		rr := httptest.NewRecorder()
		newTestRouter(NewHandler(svc, testLogger())).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/destinations/goa/catalog", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "invalid_request", body["kind"])
		assert.Equal(t, "bad-destination", body["reason"])
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetFilteredCatalog", mock.Anything, id, types.TravelStyleBalanced).
			Return(types.Catalog{}, types.NotFound("destination %s not found", id)).Once()

		rr := httptest.NewRecorder()
		newTestRouter(NewHandler(svc, testLogger())).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/destinations/"+id.String()+"/catalog", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHandler_ListDestinations(t *testing.T) {
	svc := new(MockService)
	svc.On("ListDestinations", mock.Anything).Return([]types.Destination{{Name: "Goa"}, {Name: "Lisbon"}}, nil).Once()

	rr := httptest.NewRecorder()
	newTestRouter(NewHandler(svc, testLogger())).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/destinations", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var got []types.Destination
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}
