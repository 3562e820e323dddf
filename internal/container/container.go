package container

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"

	database "github.com/FACorreiaa/go-trip-planner/app/db"
	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/config"
	"github.com/FACorreiaa/go-trip-planner/internal/api/destination"
	generativeAI "github.com/FACorreiaa/go-trip-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-planner/internal/api/planner"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Container holds all application dependencies
type Container struct {
	Config             *config.Config
	Logger             *slog.Logger
	Pool               *pgxpool.Pool
	Mongo              *mongo.Client
	DestinationHandler *destination.HandlerImpl
	ItineraryHandler   *itinerary.HandlerImpl
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(ctx, dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, Pool: pool}

	destinationRepo := destination.NewRepository(pool, logger)
	destinationService := destination.NewService(destinationRepo, cfg.Planner.CatalogCacheTTL, logger)
	c.DestinationHandler = destination.NewHandler(destinationService, logger)

	itineraryRepo, err := c.itineraryRepository(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	generator, err := newGenerator(ctx, cfg.AI, logger)
	if err != nil {
		c.Close()
		return nil, err
	}

	m := metrics.InitPlannerMetrics()
	arbitrator := itinerary.NewArbitrator(
		generator,
		itinerary.NewFixtureStore(cfg.Planner.FixturesDir),
		planner.NewNormalizer(logger, time.Now),
		m,
		cfg.Planner.Currency,
		logger,
	)
	strategies := planner.NewStrategies(planner.Options{
		Currency:                 cfg.Planner.Currency,
		DailyTransportMode:       cfg.Planner.DailyTransportMode,
		DailyTransportCost:       cfg.Planner.DailyTransportCost,
		TripTransportPlaceholder: cfg.Planner.TripTransportPlaceholder,
	})
	itineraryService := itinerary.NewService(itineraryRepo, destinationService, arbitrator, strategies,
		cfg.Planner.DefaultStrategy, logger, itinerary.WithMetrics(m))
	c.ItineraryHandler = itinerary.NewHandler(itineraryService, logger)

	return c, nil
}

func (c *Container) itineraryRepository(ctx context.Context) (itinerary.Repository, error) {
	switch c.Config.Repositories.Driver {
	case DriverPostgres, "":
		return itinerary.NewPostgresRepository(c.Pool, c.Logger), nil
	case DriverMongo:
		mongoCfg := c.Config.Repositories.Mongo
		client, err := database.ConnectMongo(ctx, mongoCfg, c.Logger)
		if err != nil {
			c.Logger.Error("Failed to connect to mongo", slog.Any("error", err))
			return nil, err
		}
		c.Mongo = client
		collection := mongoCfg.Collection
		if collection == "" {
			collection = "itineraries"
		}
		return itinerary.NewMongoRepository(client.Database(mongoCfg.DB).Collection(collection), c.Logger), nil
	default:
		return nil, fmt.Errorf("unknown itinerary repository driver %q", c.Config.Repositories.Driver)
	}
}

// newGenerator returns a nil Generator when no API key is configured, which
// makes the arbitrator skip straight to the fixture fallback.
func newGenerator(ctx context.Context, cfg config.AIConfig, logger *slog.Logger) (itinerary.Generator, error) {
	if cfg.APIKey == "" {
		logger.Warn("AI API key not configured, itineraries will come from fixtures or default drafts")
		return nil, nil
	}
	client, err := generativeAI.NewAIClient(ctx, cfg)
	if err != nil {
		logger.Error("Failed to create AI client", slog.Any("error", err))
		return nil, err
	}
	return generativeAI.NewItineraryGenerator(client, cfg, logger), nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Mongo.Disconnect(ctx); err != nil {
			c.Logger.Error("Failed to disconnect mongo", slog.Any("error", err))
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}
