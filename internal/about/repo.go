package about

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// single document collection, the filter is always empty
type Repo struct {
	collection *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{
		collection: db.Collection("about"),
	}
}

func (r *Repo) Get(ctx context.Context) (*Page, error) {
	var page Page
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&page)
	if errors.Is(err, mongo.ErrNoDocuments) {
		defaultPage := DefaultPage()
		return &defaultPage, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find about page: %w", err)
	}
	return &page, nil
}

func (r *Repo) Save(ctx context.Context, page Page) error {
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{},
		page,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save about page: %w", err)
	}
	return nil
}
