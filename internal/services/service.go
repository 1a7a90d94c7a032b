package services

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrServiceNotFound = errors.New("service not found")

type Service struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	URL         string             `json:"url" bson:"url"`
	Icon        string             `json:"icon" bson:"icon"`
	Category    string             `json:"category" bson:"category"`
	Order       int                `json:"order" bson:"order"`
	Active      bool               `json:"active" bson:"active"`
}
