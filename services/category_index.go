package services

import (
	"context"

	"catalog-importer/repository"

	"github.com/google/uuid"
)

// CategoryHandle is the lightweight reference the importer associates with
// products; the full category document never travels through the row loop.
type CategoryHandle struct {
	ID   uuid.UUID
	Slug string
}

// CategoryIndex maps category slug to handle. It is built once per batch from
// the full category collection and read-only for the batch's duration.
type CategoryIndex map[string]CategoryHandle

func BuildCategoryIndex(ctx context.Context, store repository.CategoryStore) (CategoryIndex, error) {
	categories, err := store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(CategoryIndex, len(categories))
	for _, c := range categories {
		index[c.Slug] = CategoryHandle{ID: c.ID, Slug: c.Slug}
	}
	return index, nil
}

// Resolve maps raw category tokens to handles. Tokens are slugified before
// lookup, so "SHOES " matches the index key "shoes". Matching is lenient:
// unknown tokens are dropped, never reported as row errors. Output order
// follows the input, with duplicate resolutions collapsed.
func (idx CategoryIndex) Resolve(refs []string) []CategoryHandle {
	var handles []CategoryHandle
	seen := make(map[uuid.UUID]bool)
	for _, ref := range refs {
		handle, ok := idx[Slugify(ref)]
		if !ok || seen[handle.ID] {
			continue
		}
		seen[handle.ID] = true
		handles = append(handles, handle)
	}
	return handles
}
