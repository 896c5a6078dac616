package services

import (
	"context"
	"fmt"
	"time"

	"catalog-importer/models"
	"catalog-importer/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// Reconciler performs the per-row upsert: slug lookup, create or update,
// publish, category association. All failures it returns are row-scoped; no
// retries are attempted on store errors.
type Reconciler struct {
	products   repository.ProductStore
	categories repository.CategoryStore
}

func NewReconciler(products repository.ProductStore, categories repository.CategoryStore) *Reconciler {
	return &Reconciler{products: products, categories: categories}
}

// Reconcile upserts the candidate by slug and returns the entity id and the
// action taken. An update replaces the product's category set with exactly
// the resolved handles; prior associations not present this time are dropped.
// Publish runs unconditionally after the write; if it fails the draft stays
// persisted unpublished and the row is reported failed (no rollback).
func (r *Reconciler) Reconcile(ctx context.Context, candidate *CandidateRecord, categories []CategoryHandle) (uuid.UUID, string, error) {
	categoryIDs := make([]uuid.UUID, 0, len(categories))
	for _, c := range categories {
		categoryIDs = append(categoryIDs, c.ID)
	}

	existing, err := r.products.FindBySlug(ctx, candidate.Slug)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("lookup failed: %w", err)
	}

	var id uuid.UUID
	action := ActionCreated

	if existing != nil {
		id = existing.ID
		action = ActionUpdated
		updates := map[string]interface{}{
			"name":         candidate.Name,
			"slug":         candidate.Slug,
			"price":        candidate.Price,
			"stock":        candidate.Stock,
			"brand":        candidate.Brand,
			"active":       candidate.Active,
			"category_ids": categoryIDs,
		}
		if err := r.products.Update(ctx, id, updates); err != nil {
			return uuid.Nil, "", fmt.Errorf("update failed: %w", err)
		}
	} else {
		now := time.Now().UTC()
		product := &models.Product{
			ID:          uuid.New(),
			Name:        candidate.Name,
			Slug:        candidate.Slug,
			Price:       candidate.Price,
			Stock:       candidate.Stock,
			Brand:       candidate.Brand,
			Active:      candidate.Active,
			CategoryIDs: categoryIDs,
			Published:   false,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := r.products.Create(ctx, product); err != nil {
			return uuid.Nil, "", fmt.Errorf("create failed: %w", err)
		}
		id = product.ID
	}

	if err := r.products.Publish(ctx, id); err != nil {
		return uuid.Nil, "", fmt.Errorf("publish failed: %w", err)
	}

	// Category-side links target independent category documents, so they can
	// be written concurrently; all must succeed for the row to succeed.
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range categories {
		categoryID := c.ID
		g.Go(func() error {
			return r.categories.AssociateProduct(gctx, categoryID, id)
		})
	}
	if err := g.Wait(); err != nil {
		return uuid.Nil, "", fmt.Errorf("category association failed: %w", err)
	}

	return id, action, nil
}
