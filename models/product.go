package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is the persisted catalog entity. Slug is the natural key: the
// products collection carries a unique index on it, and imports upsert by it.
type Product struct {
	ID          uuid.UUID   `json:"id" bson:"_id"`
	Name        string      `json:"name" bson:"name"`
	Slug        string      `json:"slug" bson:"slug"`
	Price       float64     `json:"price" bson:"price"`
	Stock       int         `json:"stock" bson:"stock"`
	Brand       string      `json:"brand" bson:"brand"`
	Active      bool        `json:"active" bson:"active"`
	CategoryIDs []uuid.UUID `json:"category_ids" bson:"category_ids"`
	Published   bool        `json:"published" bson:"published"`
	PublishedAt *time.Time  `json:"published_at,omitempty" bson:"published_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" bson:"updated_at"`
}
