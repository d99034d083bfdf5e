package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/encontro-app/encontro/internal/core/domain"
	"github.com/encontro-app/encontro/internal/core/ports"
)

const collectionEvents = "events"

// EventRepository implements ports.EventRepository on the events collection.
type EventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(collectionEvents)}
}

type mongoEvent struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Slug          string             `bson:"slug"`
	Description   string             `bson:"description"`
	Date          time.Time          `bson:"date"`
	Location      string             `bson:"location"`
	Price         float64            `bson:"price"`
	Capacity      int                `bson:"capacity"`
	CategoryID    string             `bson:"category_id"`
	CreatorID     string             `bson:"creator_id"`
	EnrolledUsers []string           `bson:"enrolled_users"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func toMongoEvent(e *domain.Event) mongoEvent {
	enrolled := e.EnrolledUsers
	if enrolled == nil {
		enrolled = []string{}
	}
	return mongoEvent{
		Title:         e.Title,
		Slug:          e.Slug,
		Description:   e.Description,
		Date:          e.Date,
		Location:      e.Location,
		Price:         e.Price,
		Capacity:      e.Capacity,
		CategoryID:    e.CategoryID,
		CreatorID:     e.CreatorID,
		EnrolledUsers: enrolled,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (me mongoEvent) toDomain() *domain.Event {
	return &domain.Event{
		ID:            me.ID.Hex(),
		Title:         me.Title,
		Slug:          me.Slug,
		Description:   me.Description,
		Date:          me.Date,
		Location:      me.Location,
		Price:         me.Price,
		Capacity:      me.Capacity,
		CategoryID:    me.CategoryID,
		CreatorID:     me.CreatorID,
		EnrolledUsers: me.EnrolledUsers,
		CreatedAt:     me.CreatedAt,
		UpdatedAt:     me.UpdatedAt,
	}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	res, err := r.coll.InsertOne(ctx, toMongoEvent(e))
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	created := *e
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	var me mongoEvent
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return me.toDomain(), nil
}

func (r *EventRepository) List(ctx context.Context, filter ports.ListEventsFilter) ([]*domain.Event, int64, error) {
	query := bson.M{}
	if filter.CategoryID != "" {
		query["category_id"] = filter.CategoryID
	}
	if filter.UpcomingOnly {
		query["date"] = bson.M{"$gte": time.Now().UTC()}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
		opts.SetSkip(int64((filter.Page - 1) * filter.Limit))
	}

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	events := []*domain.Event{}
	for cur.Next(ctx) {
		var me mongoEvent
		if err := cur.Decode(&me); err != nil {
			return nil, 0, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, me.toDomain())
	}
	return events, total, cur.Err()
}

// Update rewrites the event's editable fields. The roster is deliberately not
// touched here; it only moves through the settlement transaction.
func (r *EventRepository) Update(ctx context.Context, e *domain.Event) error {
	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return domain.ErrEventNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":       e.Title,
		"slug":        e.Slug,
		"description": e.Description,
		"date":        e.Date,
		"location":    e.Location,
		"price":       e.Price,
		"capacity":    e.Capacity,
		"category_id": e.CategoryID,
		"updated_at":  e.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEventNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *EventRepository) CountUpcoming(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"date": bson.M{"$gte": time.Now().UTC()}})
}

func (r *EventRepository) FindLatest(ctx context.Context, n int) ([]*domain.Event, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(n))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("latest events: %w", err)
	}
	defer cur.Close(ctx)

	events := []*domain.Event{}
	for cur.Next(ctx) {
		var me mongoEvent
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, me.toDomain())
	}
	return events, cur.Err()
}

// EnsureIndexes creates the indexes the list and settlement paths rely on.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "enrolled_users", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
