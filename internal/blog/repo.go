package blog

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
		collection: db.Collection("blogs"),
	}
}

func (r *Repo) AddPost(ctx context.Context, post *Post) error {
	res, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return fmt.Errorf("insert blog post: %w", err)
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repo) UpdatePost(ctx context.Context, id string, post Post) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPostNotFound
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"title":     post.Title,
			"excerpt":   post.Excerpt,
			"content":   post.Content,
			"author":    post.Author,
			"category":  post.Category,
			"tags":      post.Tags,
			"published": post.Published,
		}},
	)
	if err != nil {
		return fmt.Errorf("update blog post: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *Repo) DeletePost(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPostNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *Repo) All(ctx context.Context) ([]*Post, error) {
	return r.findPosts(ctx, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
}

func (r *Repo) PostsCount(ctx context.Context) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count blog posts: %w", err)
	}
	return int(count), nil
}

func (r *Repo) GetPostsPage(ctx context.Context, page, size int) ([]*Post, error) {
	return r.findPosts(ctx, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page-1)*size)).
		SetLimit(int64(size)),
	)
}

func (r *Repo) findPosts(ctx context.Context, opts *options.FindOptions) ([]*Post, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find blog posts: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	posts := []*Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode blog posts: %w", err)
	}
	return posts, nil
}
