package itinerary

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/api/auth"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service: service,
		logger:  logger,
	}
}

func (h *HandlerImpl) start(r *http.Request, op, route string) (*http.Request, trace.Span) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), op, trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String(route),
	))
	return r.WithContext(ctx), span
}

func itineraryID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, types.NotFound("itinerary %q not found", raw)
	}
	return id, nil
}

// CreateItinerary godoc
// @Summary      Create Draft Itinerary
// @Description  Validates a trip request and stores an empty draft itinerary for it.
// @Tags         Itineraries
// @Accept       json
// @Produce      json
// @Param        request body types.TripParams true "Trip request"
// @Success      201 {object} types.Itinerary
// @Failure      400 {object} api.ErrorBody "Invalid trip request"
// @Failure      404 {object} api.ErrorBody "Destination not found"
// @Failure      500 {object} api.ErrorBody "Internal Server Error"
// @Security     BearerAuth
// @Router       /itineraries [post]
func (h *HandlerImpl) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	r, span := h.start(r, "CreateItinerary", "/api/v1/itineraries")
	defer span.End()
	l := h.logger.With(slog.String("handler", "CreateItinerary"))

	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		api.WritePlanError(w, r, l, err)
		return
	}
	var params types.TripParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.WritePlanError(w, r, l, types.InvalidRequest(types.ReasonMalformedBody, "%s", err.Error()))
		return
	}

	it, err := h.service.CreateDraft(r.Context(), userID, params)
	if err != nil {
		span.RecordError(err)
		api.WritePlanError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, it)
}

// GenerateItinerary godoc
// @Summary      Generate Itinerary
// @Description  Plans a trip with the AI model, falling back to a curated fixture or an empty draft. The response names the source used.
// @Tags         Itineraries
// @Accept       json
// @Produce      json
// @Param        request body types.TripParams true "Trip request"
// @Success      201 {object} GenerateResponse
// @Failure      400 {object} api.ErrorBody "Invalid trip request"
// @Failure      404 {object} api.ErrorBody "Destination not found"
// @Failure      500 {object} api.ErrorBody "Internal Server Error"
// @Security     BearerAuth
// @Router       /itineraries/generate [post]
func (h *HandlerImpl) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	r, span := h.start(r, "GenerateItinerary", "/api/v1/itineraries/generate")
	defer span.End()
	l := h.logger.With(slog.String("handler", "GenerateItinerary"))

	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		api.WritePlanError(w, r, l, err)
		return
	}
	var params types.TripParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.WritePlanError(w, r, l, types.InvalidRequest(types.ReasonMalformedBody, "%s", err.Error()))
		return
	}

	resp, err := h.service.Generate(r.Context(), userID, params)
	if err != nil {
		span.RecordError(err)
		api.WritePlanError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, resp)
}

// ListItineraries godoc
// @Summary      List Itineraries
// @Description  Lists the caller's itineraries, newest first.
// @Tags         Itineraries
// @Produce      json
// @Param        page      query int false "Page number (default 1)"
// @Param        page_size query int false "Page size (default 20, max 100)"
// @Success      200 {object} types.PaginatedItineraries
// @Failure      403 {object} api.ErrorBody "Unauthorized"
// @Failure      500 {object} api.ErrorBody "Internal Server Error"
// @Security     BearerAuth
// @Router       /itineraries [get]
func (h *HandlerImpl) ListItineraries(w http.ResponseWriter, r *http.Request) {
	r, span := h.start(r, "ListItineraries", "/api/v1/itineraries")
	defer span.End()
	l := h.logger.With(slog.String("handler", "ListItineraries"))

	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		api.WritePlanError(w, r, l, err)
		return
	}
	page, pageSize := api.ParsePagination(r)
	result, err := h.service.List(r.Context(), userID, page, pageSize)
	if err != nil {
		span.RecordError(err)
		api.WritePlanError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// GetItinerary godoc
// @Summary      Get Itinerary
// @Tags         Itineraries
// @Produce      json
// @Param        id path string true "Itinerary ID"
// @Success      200 {object} types.Itinerary
// @Failure      403 {object} api.ErrorBody "Itinerary belongs to another user"
// @Failure      404 {object} api.ErrorBody "Itinerary not found"
// @Security     BearerAuth
// @Router       /itineraries/{id} [get]
func (h *HandlerImpl) GetItinerary(w http.ResponseWriter, r *http.Request) {
	r, span := h.start(r, "GetItinerary", "/api/v1/itineraries/{id}")
	defer span.End()
	l := h.logger.With(slog.String("handler", "GetItinerary"))

	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		api.WritePlanError(w, r, l, err)
		return
	}
	id, err := itineraryID(r)
	if err != nil {
		api.WritePlanError(w, r, l, err)
		return
	}
	it, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		span.RecordError(err)
		api.WritePlanError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// UpdateItinerary godoc
// @Summary      Update Itinerary
// @Description  Partially updates trip_name, start_date, end_date, budget, travel_style, daily_plan or status. The cost breakdown is always recomputed.
// @Tags         Itineraries
// @Accept       json
// @Produce      json
// @Param        id      path string true "Itinerary ID"
// @Param        request body object true "Fields to update"
// @Success      200 {object} types.Itinerary
// @Failure      400 {object} api.ErrorBody "Invalid update or final itinerary"
// @Failure      403 {object} api.ErrorBody "Itinerary belongs to another user"
// @Failure      404 {object} api.ErrorBody "Itinerary not found"
// @Security     BearerAuth
// @Router       /itineraries/{id} [patch]
func (h *HandlerImpl) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	r, span := h.start(r, "UpdateItinerary", "/api/v1/itineraries/{id}")
	defer span.End()
	l := h.logger.With(slog.String("handler", "UpdateItinerary"))

	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		api.WritePlanError(w, r, l, err)
		return
	}
	id, err := itineraryID(r)
	if err != nil {
		api.WritePlanError(w, r, l, err)
		return
	}
	var patch map[string]json.RawMessage
	if err := api.DecodeJSONBody(w, r, &patch); err != nil {
		api.WritePlanError(w, r, l, types.InvalidRequest(types.ReasonMalformedBody, "%s", err.Error()))
		return
	}

	it, err := h.service.Update(r.Context(), userID, id, patch)
	if err != nil {
		span.RecordError(err)
		api.WritePlanError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// PlanItinerary godoc
// @Summary      Plan Itinerary Locally
// @Description  Replaces the daily plan with one allocated from the destination catalog by the chosen strategy (greedy or round_robin).
// @Tags         Itineraries
// @Accept       json
// @Produce      json
// @Param        id      path string true "Itinerary ID"
// @Param        request body types.PlanItineraryRequest false "Strategy and interests"
// @Success      200 {object} PlanResponse
// @Failure      400 {object} api.ErrorBody "Unknown strategy or final itinerary"
// @Failure      403 {object} api.ErrorBody "Itinerary belongs to another user"
// @Failure      404 {object} api.ErrorBody "Itinerary not found"
// @Security     BearerAuth
// @Router       /itineraries/{id}/plan [post]
func (h *HandlerImpl) PlanItinerary(w http.ResponseWriter, r *http.Request) {
	r, span := h.start(r, "PlanItinerary", "/api/v1/itineraries/{id}/plan")
	defer span.End()
	l := h.logger.With(slog.String("handler", "PlanItinerary"))

	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		api.WritePlanError(w, r, l, err)
		return
	}
	id, err := itineraryID(r)
	if err != nil {
		api.WritePlanError(w, r, l, err)
		return
	}
	var req types.PlanItineraryRequest
	if r.ContentLength != 0 {
		if err := api.DecodeJSONBody(w, r, &req); err != nil {
			api.WritePlanError(w, r, l, types.InvalidRequest(types.ReasonMalformedBody, "%s", err.Error()))
			return
		}
	}

	resp, err := h.service.Plan(r.Context(), userID, id, req)
	if err != nil {
		span.RecordError(err)
		api.WritePlanError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// FinalizeItinerary godoc
// @Summary      Finalize Itinerary
// @Description  Marks the itinerary final. Final itineraries reject further changes.
// @Tags         Itineraries
// @Produce      json
// @Param        id path string true "Itinerary ID"
// @Success      200 {object} types.Itinerary
// @Failure      403 {object} api.ErrorBody "Itinerary belongs to another user"
// @Failure      404 {object} api.ErrorBody "Itinerary not found"
// @Security     BearerAuth
// @Router       /itineraries/{id}/finalize [post]
func (h *HandlerImpl) FinalizeItinerary(w http.ResponseWriter, r *http.Request) {
	r, span := h.start(r, "FinalizeItinerary", "/api/v1/itineraries/{id}/finalize")
	defer span.End()
	l := h.logger.With(slog.String("handler", "FinalizeItinerary"))

	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		api.WritePlanError(w, r, l, err)
		return
	}
	id, err := itineraryID(r)
	if err != nil {
		api.WritePlanError(w, r, l, err)
		return
	}
	it, err := h.service.Finalize(r.Context(), userID, id)
	if err != nil {
		span.RecordError(err)
		api.WritePlanError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// DeleteItinerary godoc
// @Summary      Delete Itinerary
// @Tags         Itineraries
// @Param        id path string true "Itinerary ID"
// @Success      204 "No Content"
// @Failure      403 {object} api.ErrorBody "Itinerary belongs to another user"
// @Failure      404 {object} api.ErrorBody "Itinerary not found"
// @Security     BearerAuth
// @Router       /itineraries/{id} [delete]
func (h *HandlerImpl) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	r, span := h.start(r, "DeleteItinerary", "/api/v1/itineraries/{id}")
	defer span.End()
	l := h.logger.With(slog.String("handler", "DeleteItinerary"))

	userID, err := auth.UserUUIDFromContext(r.Context())
	if err != nil {
		api.WritePlanError(w, r, l, err)
		return
	}
	id, err := itineraryID(r)
	if err != nil {
		api.WritePlanError(w, r, l, err)
		return
	}
	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		span.RecordError(err)
		api.WritePlanError(w, r, l, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
