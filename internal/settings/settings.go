package settings

import (
	"errors"
	"time"
)

var ErrSettingKeyEmpty = errors.New("setting key empty")

type Setting struct {
	Key         string    `json:"key" bson:"key"`
	Value       string    `json:"value" bson:"value"`
	Description string    `json:"description" bson:"description"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
