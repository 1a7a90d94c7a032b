package services

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
		collection: db.Collection("services"),
	}
}

func (r *Repo) AddService(ctx context.Context, service *Service) error {
	res, err := r.collection.InsertOne(ctx, service)
	if err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	service.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repo) UpdateService(ctx context.Context, id string, service Service) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrServiceNotFound
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"name":        service.Name,
			"description": service.Description,
			"url":         service.URL,
			"icon":        service.Icon,
			"category":    service.Category,
			"order":       service.Order,
			"active":      service.Active,
		}},
	)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *Repo) DeleteService(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrServiceNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *Repo) All(ctx context.Context) ([]*Service, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "order", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find services: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	services := []*Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	return services, nil
}
