package repository

import (
	"context"
	"errors"

	"catalog-importer/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned by write operations whose target entity does not
// exist. Adapters translate their driver's sentinel into it.
var ErrNotFound = errors.New("entity not found")

// ProductStore is the keyed entity store for products. It uses plain Go types
// (no mongo-driver types) so adapters and test fakes are interchangeable.
//
// FindBySlug returns (nil, nil) when no product matches. Slug uniqueness is
// enforced by EnsureIndexes, so a lookup never has more than one candidate
// and create/update decisions are deterministic.
type ProductStore interface {
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	// Publish transitions a draft to published state. It runs after every
	// successful create or update; if it fails, the draft stays persisted.
	Publish(ctx context.Context, id uuid.UUID) error
	EnsureIndexes(ctx context.Context) error
}

// CategoryStore manages category entities and the category-side product link.
type CategoryStore interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasProducts(ctx context.Context, categoryID uuid.UUID) (bool, error)
	// AssociateProduct records the product on the category side of the
	// relation. Adding an already-linked product is a no-op.
	AssociateProduct(ctx context.Context, categoryID, productID uuid.UUID) error
}
