package destination

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
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

// ListDestinations godoc
// @Summary      List Destinations
// @Description  Lists every destination with a curated catalog.
// @Tags         Destinations
// @Produce      json
// @Success      200 {array} types.Destination
// @Failure      500 {object} api.ErrorBody "Internal Server Error"
// @Security     BearerAuth
// @Router       /destinations [get]
func (h *HandlerImpl) ListDestinations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "ListDestinations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/destinations"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "ListDestinations"))

	destinations, err := h.service.ListDestinations(ctx)
	if err != nil {
		span.RecordError(err)
		api.WritePlanError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, destinations)
}

// GetCatalog godoc
// @Summary      Get Destination Catalog
// @Description  Returns the destination's POIs, accommodations and day records, filtered by travel style.
// @Tags         Destinations
// @Produce      json
// @Param        id    path  string true  "Destination ID"
// @Param        style query string false "Travel style (luxury, budget, balanced)"
// @Success      200 {object} types.Catalog
// @Failure      400 {object} api.ErrorBody "Invalid destination id"
// @Failure      404 {object} api.ErrorBody "Destination not found"
// @Failure      500 {object} api.ErrorBody "Internal Server Error"
// @Security     BearerAuth
// @Router       /destinations/{id}/catalog [get]
func (h *HandlerImpl) GetCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "GetCatalog", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/destinations/{id}/catalog"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "GetCatalog"))

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.WritePlanError(w, r, l, types.InvalidRequest(types.ReasonBadDestination, "invalid destination id"))
		return
	}

	style, _ := types.ParseTravelStyle(r.URL.Query().Get("style"))
	catalog, err := h.service.GetFilteredCatalog(ctx, id, style)
	if err != nil {
		span.RecordError(err)
		api.WritePlanError(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, catalog)
}
