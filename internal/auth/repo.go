package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ adminsRepo = (*Repo)(nil)

type adminDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"hashed_password"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d *adminDoc) toAdmin() *Admin {
	return &Admin{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

type Repo struct {
	coll *mongo.Collection
}

// NewRepo wraps the admins collection. The unique index on username is the
// storage level guard behind the setup check-then-insert race.
func NewRepo(ctx context.Context, db *mongo.Database) (*Repo, error) {
	coll := db.Collection("admins")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create admins username index: %w", err)
	}
	return &Repo{coll: coll}, nil
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *Repo) Add(ctx context.Context, admin Admin) (string, error) {
	res, err := r.coll.InsertOne(ctx, adminDoc{
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
		CreatedAt:    admin.CreatedAt,
	})
	if err != nil {
		return "", err
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return id.Hex(), nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Admin, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrAdminNotFound
	}
	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *Repo) findOne(ctx context.Context, filter bson.M) (*Admin, error) {
	var doc adminDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toAdmin(), nil
}

func (r *Repo) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrAdminNotFound
	}

	res, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"hashed_password": passwordHash}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAdminNotFound
	}
	return nil
}
