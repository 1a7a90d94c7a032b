package blog

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrPostNotFound            = errors.New("blog post not found")
	ErrPostTitleOrContentEmpty = errors.New("blog post title or content empty")
)

type Post struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Excerpt   string             `json:"excerpt" bson:"excerpt"`
	Content   string             `json:"content" bson:"content"`
	Author    string             `json:"author" bson:"author"`
	Category  string             `json:"category" bson:"category"`
	Tags      []string           `json:"tags" bson:"tags"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	Published bool               `json:"published" bson:"published"`
}
