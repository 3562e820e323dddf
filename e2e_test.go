package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/FACorreiaa/go-trip-planner/config"
	"github.com/FACorreiaa/go-trip-planner/internal/api/auth"
	"github.com/FACorreiaa/go-trip-planner/internal/api/destination"
	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-planner/internal/api/planner"
	"github.com/FACorreiaa/go-trip-planner/internal/router"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var goaID = uuid.MustParse("0b6f7c1e-3a52-4d8e-9a71-5c2f0d4e8a11")

// memoryCatalog serves one destination from memory.
type memoryCatalog struct {
	catalog types.Catalog
}

func (m *memoryCatalog) GetDestination(_ context.Context, id uuid.UUID) (*types.Destination, error) {
	if id != m.catalog.Destination.ID {
		return nil, types.NotFound("destination %s not found", id)
	}
	d := m.catalog.Destination
	return &d, nil
}

func (m *memoryCatalog) ListDestinations(context.Context) ([]types.Destination, error) {
	return []types.Destination{m.catalog.Destination}, nil
}

func (m *memoryCatalog) GetPOIs(context.Context, uuid.UUID) ([]types.POI, error) {
	return m.catalog.POIs, nil
}

func (m *memoryCatalog) GetAccommodations(context.Context, uuid.UUID) ([]types.Accommodation, error) {
	return m.catalog.Accommodations, nil
}

func (m *memoryCatalog) GetDayRecords(context.Context, uuid.UUID) ([]types.DayRecord, error) {
	return m.catalog.DayRecords, nil
}

// memoryItineraries is a map-backed itinerary.Repository.
type memoryItineraries struct {
	mu    sync.Mutex
	items map[uuid.UUID]types.Itinerary
}

func newMemoryItineraries() *memoryItineraries {
	return &memoryItineraries{items: map[uuid.UUID]types.Itinerary{}}
}

func (m *memoryItineraries) Save(_ context.Context, it *types.Itinerary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[it.ID] = *it
	return nil
}

func (m *memoryItineraries) Get(_ context.Context, id uuid.UUID) (*types.Itinerary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, types.NotFound("itinerary %s not found", id)
	}
	return &it, nil
}

func (m *memoryItineraries) ListByUser(_ context.Context, userID uuid.UUID, page, pageSize int) ([]types.Itinerary, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var owned []types.Itinerary
	for _, it := range m.items {
		if it.UserID == userID {
			owned = append(owned, it)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].CreatedAt.After(owned[j].CreatedAt) })
	start := (page - 1) * pageSize
	if start > len(owned) {
		start = len(owned)
	}
	end := start + pageSize
	if end > len(owned) {
		end = len(owned)
	}
	return owned[start:end], len(owned), nil
}

func (m *memoryItineraries) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return types.NotFound("itinerary %s not found", id)
	}
	delete(m.items, id)
	return nil
}

func goaCatalog() types.Catalog {
	return types.Catalog{
		Destination: types.Destination{ID: goaID, Name: "Goa", Country: "India", Currency: "INR"},
		POIs: []types.POI{
			{ID: "goa-fort-aguada", Name: types.LocalizedText{"en": "Fort Aguada"}, Category: "history",
				Costs: []types.CostEntry{{Label: "entry", Amount: 50}}, Tags: []string{"history"}},
			{ID: "goa-calangute-beach", Name: types.LocalizedText{"en": "Calangute Beach"}, Category: "beach",
				Tags: []string{"beach"}},
			{ID: "goa-dudhsagar-falls", Name: types.LocalizedText{"en": "Dudhsagar Falls"}, Category: "nature",
				Costs: []types.CostEntry{{Label: "jeep", Amount: 800}}, Tags: []string{"nature"}},
		},
		Accommodations: []types.Accommodation{
			{ID: "goa-sea-breeze-inn", Name: types.LocalizedText{"en": "Sea Breeze Inn"}, CostPerNight: 2500, Category: "budget"},
			{ID: "goa-taj-exotica", Name: types.LocalizedText{"en": "Taj Exotica"}, CostPerNight: 18000, Category: "luxury"},
		},
		DayRecords: []types.DayRecord{
			{DayNumber: 1, Activities: []types.DayActivity{{PoiID: "goa-fort-aguada", Name: "Fort Aguada", Category: "history", Cost: 50}},
				AccommodationID: "goa-sea-breeze-inn", AccommodationCost: 2500, TransportMode: "scooter", TransportCost: 300},
			{DayNumber: 2, Activities: []types.DayActivity{{PoiID: "goa-calangute-beach", Name: "Calangute Beach", Category: "beach"}},
				AccommodationID: "goa-sea-breeze-inn", AccommodationCost: 2500, TransportMode: "scooter", TransportCost: 300},
		},
	}
}

// E2ETestSuite drives complete itinerary workflows through the HTTP stack.
type E2ETestSuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	jwt       config.JWTConfig
	authToken string
	userID    string
}

func (suite *E2ETestSuite) SetupSuite() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.jwt = config.JWTConfig{SecretKey: "e2e-secret", Issuer: "trip-planner-auth", Audience: "trip-planner-api"}

	destinationService := destination.NewService(&memoryCatalog{catalog: goaCatalog()}, time.Minute, logger)
	arbitrator := itinerary.NewArbitrator(nil, itinerary.NewFixtureStore(""),
		planner.NewNormalizer(logger, time.Now), nil, "INR", logger)
	itineraryService := itinerary.NewService(newMemoryItineraries(), destinationService, arbitrator,
		planner.NewStrategies(planner.DefaultOptions()), planner.StrategyGreedy, logger)

	api := router.SetupRouter(&router.Config{
		DestinationHandler:     destination.NewHandler(destinationService, logger),
		ItineraryHandler:       itinerary.NewHandler(itineraryService, logger),
		AuthenticateMiddleware: auth.Authenticate(logger, suite.jwt),
	})
	suite.server = httptest.NewServer(newHTTPHandler(api, logger, 30*time.Second))
	suite.client = &http.Client{Timeout: 30 * time.Second}

	suite.userID = uuid.NewString()
	token, err := auth.IssueToken(suite.jwt, suite.userID, time.Hour)
	suite.Require().NoError(err)
	suite.authToken = token
}

func (suite *E2ETestSuite) TearDownSuite() {
	if suite.server != nil {
		suite.server.Close()
	}
}

func (suite *E2ETestSuite) do(method, path, token string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, suite.server.URL+path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := suite.client.Do(req)
	suite.Require().NoError(err)
	return resp
}

func (suite *E2ETestSuite) decode(resp *http.Response, dst any) {
	defer resp.Body.Close()
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(dst))
}

func tripParams(start, end string) map[string]any {
	return map[string]any{
		"destination_id": goaID.String(),
		"start_date":     start,
		"end_date":       end,
		"budget":         20000,
		"travel_style":   "budget",
	}
}

func (suite *E2ETestSuite) TestPing() {
	resp := suite.do(http.MethodGet, "/ping", "", nil)
	defer resp.Body.Close()
	suite.Equal(http.StatusOK, resp.StatusCode)
}

func (suite *E2ETestSuite) TestRequiresAuthentication() {
	resp := suite.do(http.MethodGet, "/api/v1/itineraries", "", nil)
	defer resp.Body.Close()
	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (suite *E2ETestSuite) TestDestinationCatalog() {
	resp := suite.do(http.MethodGet, "/api/v1/destinations/"+goaID.String()+"/catalog?style=luxury", suite.authToken, nil)
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	var catalog types.Catalog
	suite.decode(resp, &catalog)
	suite.Equal("Goa", catalog.Destination.Name)
	suite.Require().Len(catalog.Accommodations, 1)
	suite.Equal("goa-taj-exotica", catalog.Accommodations[0].ID)
}

func (suite *E2ETestSuite) TestInvalidTripRequest() {
	resp := suite.do(http.MethodPost, "/api/v1/itineraries", suite.authToken, tripParams("2025-05-03", "2025-05-01"))
	suite.Require().Equal(http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	suite.decode(resp, &body)
	suite.Equal(string(types.KindInvalidRequest), body["kind"])
	suite.Equal(types.ReasonBadDateRange, body["reason"])
	suite.NotEmpty(body["request_id"])
}

func (suite *E2ETestSuite) TestUnknownDestination() {
	params := tripParams("2025-05-01", "2025-05-02")
	params["destination_id"] = uuid.NewString()
	resp := suite.do(http.MethodPost, "/api/v1/itineraries/generate", suite.authToken, params)
	defer resp.Body.Close()
	suite.Equal(http.StatusNotFound, resp.StatusCode)
}

func (suite *E2ETestSuite) TestGenerateFromFixtureThenFinalize() {
	resp := suite.do(http.MethodPost, "/api/v1/itineraries/generate", suite.authToken, tripParams("2025-05-01", "2025-05-02"))
	suite.Require().Equal(http.StatusCreated, resp.StatusCode)

	var generated itinerary.GenerateResponse
	suite.decode(resp, &generated)
	suite.Equal(types.SourceFixture, generated.Source)
	suite.Equal("unavailable", generated.AIFailure)

	it := generated.Itinerary
	suite.Equal(suite.userID, it.UserID.String())
	suite.Equal(2, it.TotalDays)
	suite.Require().Len(it.DailyPlan, 2)
	suite.Equal("2025-05-01", it.DailyPlan[0].Date.String())
	suite.Equal("2025-05-02", it.DailyPlan[1].Date.String())
	suite.Equal(types.CostBreakdown{
		Transport: 400, Accommodation: 5000, Activities: 350, Total: 5750, Currency: "INR",
	}, it.CostBreakdown)

	path := "/api/v1/itineraries/" + it.ID.String()

	resp = suite.do(http.MethodPatch, path, suite.authToken, map[string]any{"trip_name": "Long Weekend"})
	suite.Require().Equal(http.StatusOK, resp.StatusCode)
	var updated types.Itinerary
	suite.decode(resp, &updated)
	suite.Equal("Long Weekend", updated.TripName)
	suite.Equal(it.CostBreakdown, updated.CostBreakdown)

	resp = suite.do(http.MethodPost, path+"/finalize", suite.authToken, nil)
	suite.Require().Equal(http.StatusOK, resp.StatusCode)
	var final types.Itinerary
	suite.decode(resp, &final)
	suite.Equal(types.StatusFinal, final.Status)

	resp = suite.do(http.MethodPatch, path, suite.authToken, map[string]any{"trip_name": "Too Late"})
	defer resp.Body.Close()
	suite.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (suite *E2ETestSuite) TestDraftPlanListDelete() {
	resp := suite.do(http.MethodPost, "/api/v1/itineraries", suite.authToken, tripParams("2025-06-10", "2025-06-12"))
	suite.Require().Equal(http.StatusCreated, resp.StatusCode)
	var draft types.Itinerary
	suite.decode(resp, &draft)
	suite.Equal(types.StatusDraft, draft.Status)
	path := "/api/v1/itineraries/" + draft.ID.String()

	resp = suite.do(http.MethodPost, path+"/plan", suite.authToken, map[string]any{"strategy": "round_robin"})
	suite.Require().Equal(http.StatusOK, resp.StatusCode)
	var planned itinerary.PlanResponse
	suite.decode(resp, &planned)
	suite.Equal(planner.StrategyRoundRobin, planned.Strategy)
	suite.Equal(types.StatusConfirmed, planned.Itinerary.Status)
	suite.Equal(types.SourceLocal, planned.Itinerary.Source)
	suite.Require().Len(planned.Itinerary.DailyPlan, 3)
	b := planned.Itinerary.CostBreakdown
	suite.InDelta(b.Transport+b.Accommodation+b.Activities, b.Total, 1e-9)

	resp = suite.do(http.MethodPost, path+"/plan", suite.authToken, map[string]any{"strategy": "simulated_annealing"})
	resp.Body.Close()
	suite.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = suite.do(http.MethodGet, "/api/v1/itineraries?page=1&page_size=50", suite.authToken, nil)
	suite.Require().Equal(http.StatusOK, resp.StatusCode)
	var page types.PaginatedItineraries
	suite.decode(resp, &page)
	found := false
	for _, it := range page.Itineraries {
		found = found || it.ID == draft.ID
	}
	suite.True(found)

	resp = suite.do(http.MethodDelete, path, suite.authToken, nil)
	resp.Body.Close()
	suite.Equal(http.StatusNoContent, resp.StatusCode)

	resp = suite.do(http.MethodGet, path, suite.authToken, nil)
	resp.Body.Close()
	suite.Equal(http.StatusNotFound, resp.StatusCode)
}

func (suite *E2ETestSuite) TestOtherUsersCannotReadItinerary() {
	resp := suite.do(http.MethodPost, "/api/v1/itineraries", suite.authToken, tripParams("2025-07-01", "2025-07-01"))
	suite.Require().Equal(http.StatusCreated, resp.StatusCode)
	var draft types.Itinerary
	suite.decode(resp, &draft)

	other, err := auth.IssueToken(suite.jwt, uuid.NewString(), time.Hour)
	suite.Require().NoError(err)

	resp = suite.do(http.MethodGet, "/api/v1/itineraries/"+draft.ID.String(), other, nil)
	resp.Body.Close()
	suite.Equal(http.StatusForbidden, resp.StatusCode)
}

func TestE2ETestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end tests in short mode")
	}
	suite.Run(t, new(E2ETestSuite))
}

func TestNewHTTPHandler_StripsSlashes(t *testing.T) {
	api := router.SetupRouter(&router.Config{
		AuthenticateMiddleware: func(next http.Handler) http.Handler { return next },
	})
	srv := httptest.NewServer(newHTTPHandler(api, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Second))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ping/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
