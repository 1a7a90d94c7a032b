package events

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrInvalidEventStatus = errors.New("invalid event status")
)

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusCompleted EventStatus = "completed"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusUpcoming, EventStatusCompleted:
		return true
	}
	return false
}

type Event struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title           string             `json:"title" bson:"title"`
	Description     string             `json:"description" bson:"description"`
	Date            time.Time          `json:"date" bson:"date"`
	Location        string             `json:"location" bson:"location"`
	Category        string             `json:"category" bson:"category"`
	Organizer       string             `json:"organizer" bson:"organizer"`
	Status          EventStatus        `json:"status" bson:"status"`
	MaxParticipants int                `json:"max_participants" bson:"max_participants"`
	RegistrationURL string             `json:"registration_url" bson:"registration_url"`
	Published       bool               `json:"published" bson:"published"`
}
