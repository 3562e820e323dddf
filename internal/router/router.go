package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/FACorreiaa/go-trip-planner/internal/api/destination"
	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
)

// Config contains the handlers and middleware the router mounts.
type Config struct {
	DestinationHandler     *destination.HandlerImpl
	ItineraryHandler       *itinerary.HandlerImpl
	AuthenticateMiddleware func(http.Handler) http.Handler
	AllowedOrigins         []string
}

// SetupRouter builds the API router. Server-wide middleware (request id,
// logging, recoverer) is applied by the caller before mounting it.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Get("/destinations", cfg.DestinationHandler.ListDestinations)
			r.Get("/destinations/{id}/catalog", cfg.DestinationHandler.GetCatalog)

			r.Route("/itineraries", func(r chi.Router) {
				r.Get("/", cfg.ItineraryHandler.ListItineraries)
				r.Post("/", cfg.ItineraryHandler.CreateItinerary)
				r.Post("/generate", cfg.ItineraryHandler.GenerateItinerary)
				r.Get("/{id}", cfg.ItineraryHandler.GetItinerary)
				r.Patch("/{id}", cfg.ItineraryHandler.UpdateItinerary)
				r.Delete("/{id}", cfg.ItineraryHandler.DeleteItinerary)
				r.Post("/{id}/plan", cfg.ItineraryHandler.PlanItinerary)
				r.Post("/{id}/finalize", cfg.ItineraryHandler.FinalizeItinerary)
			})
		})
	})

	return r
}
