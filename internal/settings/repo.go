package settings

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repo struct {
	collection *mongo.Collection
}

func NewRepo(ctx context.Context, db *mongo.Database) (*Repo, error) {
	collection := db.Collection("settings")

	// one document per key
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create settings key index: %w", err)
	}

	return &Repo{
		collection: collection,
	}, nil
}

func (r *Repo) All(ctx context.Context) ([]*Setting, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "key", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find settings: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	settings := []*Setting{}
	if err := cursor.All(ctx, &settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

func (r *Repo) Upsert(ctx context.Context, setting Setting) error {
	if setting.Key == "" {
		return ErrSettingKeyEmpty
	}

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"key": setting.Key},
		bson.M{"$set": bson.M{
			"value":       setting.Value,
			"description": setting.Description,
			"updated_at":  setting.UpdatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert setting [%s]: %w", setting.Key, err)
	}
	return nil
}
