package domain

import (
	"errors"
	"time"
)

var ErrCategoryNotFound = errors.New("category not found")
var ErrCategoryExists = errors.New("category already exists")

// Category groups events. The slug is derived from the name and unique.
type Category struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Slug      string    `json:"slug" bson:"slug"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
