package services

import (
	"context"
	"fmt"
	"time"

	"catalog-importer/models"
	"catalog-importer/repository"

	"github.com/google/uuid"
)

// CategoryCreateRequest is the request payload for creating or updating a
// category.
type CategoryCreateRequest struct {
	Name     string `json:"name" validate:"required"`
	IsActive bool   `json:"is_active"`
}

type CategoryService struct {
	repo repository.CategoryStore
}

func NewCategoryService(repo repository.CategoryStore) *CategoryService {
	return &CategoryService{repo: repo}
}

// CreateCategory creates a category with a slug derived from its name. The
// slug is the key imports resolve category tokens against, so it must be
// unique.
func (s *CategoryService) CreateCategory(ctx context.Context, req CategoryCreateRequest) (*models.Category, error) {
	slug := Slugify(req.Name)
	if slug == "" {
		return nil, fmt.Errorf("category name %q produces an empty slug", req.Name)
	}

	existing, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("category with slug '%s' already exists", slug)
	}

	now := time.Now().UTC()
	category := &models.Category{
		ID:        uuid.New(),
		Name:      req.Name,
		Slug:      slug,
		IsActive:  req.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.FindAll(ctx)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req CategoryCreateRequest) error {
	slug := Slugify(req.Name)
	if slug == "" {
		return fmt.Errorf("category name %q produces an empty slug", req.Name)
	}

	updates := map[string]interface{}{
		"name":      req.Name,
		"slug":      slug,
		"is_active": req.IsActive,
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// DeleteCategory refuses to delete a category that products still reference.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	hasProducts, err := s.repo.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	if hasProducts {
		return fmt.Errorf("cannot delete category with associated products")
	}

	return s.repo.Delete(ctx, id)
}
