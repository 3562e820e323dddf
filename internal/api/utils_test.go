package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind types.ErrorKind
		want int
	}{
		{types.KindInvalidRequest, http.StatusBadRequest},
		{types.KindNotFound, http.StatusNotFound},
		{types.KindUnauthorized, http.StatusForbidden},
		{types.KindExternalServiceFailure, http.StatusBadGateway},
		{types.KindNormalizationFailure, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForKind(tt.kind))
		})
	}
}

func TestWritePlanError(t *testing.T) {
	serve := func(err error) (*httptest.ResponseRecorder, ErrorBody) {
		var body ErrorBody
		rec := httptest.NewRecorder()
		h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			WritePlanError(w, r, discardLogger(), err)
		}))
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return rec, body
	}

	t.Run("plan errors keep kind and reason", func(t *testing.T) {
		rec, body := serve(types.InvalidRequest(types.ReasonBadBudget, "budget must be a non-negative number"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, string(types.KindInvalidRequest), body.Kind)
		assert.Equal(t, types.ReasonBadBudget, body.Reason)
		assert.Equal(t, "budget must be a non-negative number", body.Error)
		assert.NotEmpty(t, body.RequestID)
	})

	t.Run("wrapped plan errors are unwrapped", func(t *testing.T) {
		rec, body := serve(errors.Join(errors.New("context"), types.NotFound("itinerary missing")))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, string(types.KindNotFound), body.Kind)
	})

	t.Run("other errors are hidden", func(t *testing.T) {
		rec, body := serve(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", body.Error)
		assert.Empty(t, body.Kind)
	})
}

func TestDecodeJSONBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	decode := func(body string) error {
		var dst payload
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		return DecodeJSONBody(httptest.NewRecorder(), r, &dst)
	}

	assert.NoError(t, decode(`{"name": "goa"}`))

	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", ``, "must not be empty"},
		{"syntax", `{"name": }`, "badly-formed JSON"},
		{"truncated", `{"name": "goa"`, "badly-formed JSON"},
		{"wrong type", `{"name": 7}`, `incorrect JSON type for field "name"`},
		{"unknown key", `{"city": "goa"}`, `unknown key "city"`},
		{"two values", `{"name": "a"}{"name": "b"}`, "single JSON value"},
		{"too large", `{"name": "` + strings.Repeat("x", maxBodyBytes) + `"}`, "must not be larger than"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, decode(tt.body), tt.want)
		})
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", 1, DefaultPageSize},
		{"page=3&page_size=5", 3, 5},
		{"page=-1&page_size=0", 1, DefaultPageSize},
		{"page=abc&page_size=500", 1, MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			page, size := ParsePagination(httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil))
			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.pageSize, size)
		})
	}
}

func TestVerifyAudience(t *testing.T) {
	assert.True(t, VerifyAudience(nil, ""))
	assert.True(t, VerifyAudience(jwt.ClaimStrings{"web", "trip-planner-api"}, "trip-planner-api"))
	assert.False(t, VerifyAudience(jwt.ClaimStrings{"web"}, "trip-planner-api"))
	assert.False(t, VerifyAudience(nil, "trip-planner-api"))
}
