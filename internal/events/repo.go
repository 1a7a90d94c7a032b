package events

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repo struct {
	collection *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{
		collection: db.Collection("events"),
	}
}

func (r *Repo) AddEvent(ctx context.Context, event *Event) error {
	res, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	event.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repo) UpdateEvent(ctx context.Context, id string, event Event) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrEventNotFound
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"title":            event.Title,
			"description":      event.Description,
			"date":             event.Date,
			"location":         event.Location,
			"category":         event.Category,
			"organizer":        event.Organizer,
			"status":           event.Status,
			"max_participants": event.MaxParticipants,
			"registration_url": event.RegistrationURL,
			"published":        event.Published,
		}},
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *Repo) DeleteEvent(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrEventNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *Repo) All(ctx context.Context) ([]*Event, error) {
	// upcoming events closest first
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	events := []*Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}
