package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Repository = (*MongoRepository)(nil)

// itineraryDocument is the stored form of an itinerary. Ids and dates are kept
// as strings so documents stay readable from the mongo shell.
type itineraryDocument struct {
	ID            string              `bson:"_id"`
	UserID        string              `bson:"user_id"`
	DestinationID string              `bson:"destination_id"`
	TripName      string              `bson:"trip_name"`
	StartDate     string              `bson:"start_date"`
	EndDate       string              `bson:"end_date"`
	TotalDays     int                 `bson:"total_days"`
	Budget        float64             `bson:"budget"`
	TravelStyle   string              `bson:"travel_style"`
	Status        string              `bson:"status"`
	Source        string              `bson:"source,omitempty"`
	DailyPlan     []dayDocument       `bson:"daily_plan"`
	CostBreakdown types.CostBreakdown `bson:"cost_breakdown"`
	CreatedAt     time.Time           `bson:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at"`
}

type dayDocument struct {
	Date       string           `bson:"date"`
	Activities []types.Activity `bson:"activities"`
}

func toDocument(it *types.Itinerary) itineraryDocument {
	days := make([]dayDocument, 0, len(it.DailyPlan))
	for _, d := range it.DailyPlan {
		activities := d.Activities
		if activities == nil {
			activities = []types.Activity{}
		}
		days = append(days, dayDocument{Date: d.Date.String(), Activities: activities})
	}
	return itineraryDocument{
		ID:            it.ID.String(),
		UserID:        it.UserID.String(),
		DestinationID: it.DestinationID.String(),
		TripName:      it.TripName,
		StartDate:     it.StartDate.String(),
		EndDate:       it.EndDate.String(),
		TotalDays:     it.TotalDays,
		Budget:        it.Budget,
		TravelStyle:   string(it.TravelStyle),
		Status:        string(it.Status),
		Source:        string(it.Source),
		DailyPlan:     days,
		CostBreakdown: it.CostBreakdown,
		CreatedAt:     it.CreatedAt.UTC(),
		UpdatedAt:     it.UpdatedAt.UTC(),
	}
}

func (d itineraryDocument) toItinerary() (types.Itinerary, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return types.Itinerary{}, fmt.Errorf("invalid itinerary id %q: %w", d.ID, err)
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return types.Itinerary{}, fmt.Errorf("invalid user id %q: %w", d.UserID, err)
	}
	destID, err := uuid.Parse(d.DestinationID)
	if err != nil {
		return types.Itinerary{}, fmt.Errorf("invalid destination id %q: %w", d.DestinationID, err)
	}
	start, err := parseStoredDate(d.StartDate)
	if err != nil {
		return types.Itinerary{}, err
	}
	end, err := parseStoredDate(d.EndDate)
	if err != nil {
		return types.Itinerary{}, err
	}

	plan := make([]types.DailyPlanEntry, 0, len(d.DailyPlan))
	for _, day := range d.DailyPlan {
		date, err := parseStoredDate(day.Date)
		if err != nil {
			return types.Itinerary{}, err
		}
		activities := day.Activities
		if activities == nil {
			activities = []types.Activity{}
		}
		plan = append(plan, types.DailyPlanEntry{Date: date, Activities: activities})
	}

	style, _ := types.ParseTravelStyle(d.TravelStyle)
	status, _ := types.ParseItineraryStatus(d.Status)
	return types.Itinerary{
		ID:            id,
		UserID:        userID,
		DestinationID: destID,
		TripName:      d.TripName,
		StartDate:     start,
		EndDate:       end,
		TotalDays:     d.TotalDays,
		Budget:        d.Budget,
		TravelStyle:   style,
		Status:        status,
		Source:        types.PlanSource(d.Source),
		DailyPlan:     plan,
		CostBreakdown: d.CostBreakdown,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

func parseStoredDate(raw string) (types.Date, error) {
	if raw == "" {
		return types.Date{}, nil
	}
	return types.ParseDate(raw)
}

// MongoRepository stores itineraries in a single collection keyed by id.
type MongoRepository struct {
	logger *slog.Logger
	coll   *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection, logger *slog.Logger) *MongoRepository {
	return &MongoRepository{
		logger: logger,
		coll:   coll,
	}
}

func (r *MongoRepository) Save(ctx context.Context, it *types.Itinerary) error {
	doc := toDocument(it)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save itinerary: %w", err)
	}
	return nil
}

func (r *MongoRepository) Get(ctx context.Context, id uuid.UUID) (*types.Itinerary, error) {
	var doc itineraryDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, types.NotFound("itinerary %s not found", id)
		}
		return nil, fmt.Errorf("failed to find itinerary: %w", err)
	}
	it, err := doc.toItinerary()
	if err != nil {
		return nil, fmt.Errorf("failed to decode itinerary %s: %w", id, err)
	}
	return &it, nil
}

func (r *MongoRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]types.Itinerary, int, error) {
	filter := bson.M{"user_id": userID.String()}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count itineraries: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset(page, pageSize))).
		SetLimit(int64(pageSize))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list itineraries: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []itineraryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode itineraries: %w", err)
	}
	itineraries := make([]types.Itinerary, 0, len(docs))
	for _, doc := range docs {
		it, err := doc.toItinerary()
		if err != nil {
			r.logger.WarnContext(ctx, "Skipping undecodable itinerary document", slog.String("id", doc.ID), slog.Any("error", err))
			continue
		}
		itineraries = append(itineraries, it)
	}
	return itineraries, int(total), nil
}

func (r *MongoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	if res.DeletedCount == 0 {
		return types.NotFound("itinerary %s not found", id)
	}
	return nil
}
