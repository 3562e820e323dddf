package destination

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-trip-planner/internal/api/planner"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service serves read-only destination reference data.
type Service interface {
	GetDestination(ctx context.Context, id uuid.UUID) (*types.Destination, error)
	ListDestinations(ctx context.Context) ([]types.Destination, error)
	GetCatalog(ctx context.Context, id uuid.UUID) (types.Catalog, error)
	GetFilteredCatalog(ctx context.Context, id uuid.UUID, style types.TravelStyle) (types.Catalog, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
	cache  *cache.Cache
}

// NewService caches catalogs for ttl. Catalog data is reference data and only
// changes through migrations, so entries are never invalidated explicitly.
func NewService(repo Repository, ttl time.Duration, logger *slog.Logger) *ServiceImpl {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  cache.New(ttl, time.Hour),
	}
}

func destinationKey(id uuid.UUID) string { return "destination:" + id.String() }
func catalogKey(id uuid.UUID) string     { return "catalog:" + id.String() }

func (s *ServiceImpl) GetDestination(ctx context.Context, id uuid.UUID) (*types.Destination, error) {
	if cached, found := s.cache.Get(destinationKey(id)); found {
		d := cached.(types.Destination)
		return &d, nil
	}
	d, err := s.repo.GetDestination(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(destinationKey(id), *d, cache.DefaultExpiration)
	return d, nil
}

func (s *ServiceImpl) ListDestinations(ctx context.Context) ([]types.Destination, error) {
	ctx, span := otel.Tracer("DestinationService").Start(ctx, "ListDestinations")
	defer span.End()

	destinations, err := s.repo.ListDestinations(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list destinations")
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}
	span.SetStatus(codes.Ok, "destinations listed")
	return destinations, nil
}

// GetCatalog loads the destination and its POIs, accommodations and day records
// concurrently. Callers receive a deep copy and may modify it freely.
func (s *ServiceImpl) GetCatalog(ctx context.Context, id uuid.UUID) (types.Catalog, error) {
	ctx, span := otel.Tracer("DestinationService").Start(ctx, "GetCatalog", trace.WithAttributes(
		attribute.String("destination.id", id.String()),
	))
	defer span.End()
	l := s.logger.With(slog.String("method", "GetCatalog"), slog.String("destination_id", id.String()))

	if cached, found := s.cache.Get(catalogKey(id)); found {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached.(types.Catalog).Clone(), nil
	}

	dest, err := s.GetDestination(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "destination lookup failed")
		return types.Catalog{}, err
	}

	catalog := types.Catalog{Destination: *dest}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pois, err := s.repo.GetPOIs(gctx, id)
		if err != nil {
			return err
		}
		catalog.POIs = pois
		return nil
	})
	g.Go(func() error {
		accommodations, err := s.repo.GetAccommodations(gctx, id)
		if err != nil {
			return err
		}
		catalog.Accommodations = accommodations
		return nil
	})
	g.Go(func() error {
		records, err := s.repo.GetDayRecords(gctx, id)
		if err != nil {
			return err
		}
		catalog.DayRecords = records
		return nil
	})
	if err := g.Wait(); err != nil {
		l.ErrorContext(ctx, "Failed to load catalog", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog load failed")
		return types.Catalog{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	s.cache.Set(catalogKey(id), catalog, cache.DefaultExpiration)
	l.DebugContext(ctx, "Catalog loaded",
		slog.Int("pois", len(catalog.POIs)),
		slog.Int("accommodations", len(catalog.Accommodations)),
		slog.Int("day_records", len(catalog.DayRecords)))
	span.SetStatus(codes.Ok, "catalog loaded")
	return catalog.Clone(), nil
}

func (s *ServiceImpl) GetFilteredCatalog(ctx context.Context, id uuid.UUID, style types.TravelStyle) (types.Catalog, error) {
	catalog, err := s.GetCatalog(ctx, id)
	if err != nil {
		return types.Catalog{}, err
	}
	return planner.FilterCatalog(style, catalog), nil
}
