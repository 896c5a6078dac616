package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID         uuid.UUID   `json:"id" bson:"_id"`
	Name       string      `json:"name" bson:"name"`
	Slug       string      `json:"slug" bson:"slug"`
	ProductIDs []uuid.UUID `json:"product_ids,omitempty" bson:"product_ids,omitempty"`
	IsActive   bool        `json:"is_active" bson:"is_active"`
	CreatedAt  time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" bson:"updated_at"`
}
