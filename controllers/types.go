package controllers

import (
	"context"
	"io"
	"time"

	"catalog-importer/models"
	"catalog-importer/services"

	"github.com/google/uuid"
)

// Default configuration values
const (
	DefaultCacheTTL       = 10 * time.Minute
	DefaultContextTimeout = 30 * time.Second
)

// ImporterAPI defines the interface for import operations
type ImporterAPI interface {
	ProcessImport(ctx context.Context, file io.Reader, filename string) (*models.BatchResult, error)
	ValidateImport(ctx context.Context, file io.Reader, filename string) (*models.ImportValidation, error)
}

// CategoryServiceAPI defines the interface for category service operations
type CategoryServiceAPI interface {
	CreateCategory(ctx context.Context, req services.CategoryCreateRequest) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req services.CategoryCreateRequest) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}
