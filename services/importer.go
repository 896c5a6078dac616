package services

import (
	"context"
	"io"

	"catalog-importer/models"
	"catalog-importer/repository"

	"go.uber.org/zap"
)

// headerOffset converts a 0-based row loop index to the spreadsheet row it
// came from (1-based, plus the consumed header row).
const headerOffset = 2

// ImportService drives the import pipeline: read rows, build the category
// index, then reconcile each row independently.
type ImportService struct {
	categories repository.CategoryStore
	reconciler *Reconciler
}

func NewImportService(products repository.ProductStore, categories repository.CategoryStore) *ImportService {
	return &ImportService{
		categories: categories,
		reconciler: NewReconciler(products, categories),
	}
}

// ProcessImport runs a full import over an uploaded file. A reader or
// category index failure aborts before any row is touched and surfaces as the
// returned error; once the row loop starts, the batch always completes and
// per-row failures land in the result's error list.
func (s *ImportService) ProcessImport(ctx context.Context, file io.Reader, filename string) (*models.BatchResult, error) {
	rows, err := ReadRows(file, filename)
	if err != nil {
		return nil, err
	}

	index, err := BuildCategoryIndex(ctx, s.categories)
	if err != nil {
		return nil, err
	}

	return s.runBatch(ctx, rows, index), nil
}

// runBatch iterates rows in input order. Rows are independent: the first
// failing step short-circuits its row, and no row's outcome affects another.
func (s *ImportService) runBatch(ctx context.Context, rows []RawRow, index CategoryIndex) *models.BatchResult {
	result := &models.BatchResult{
		Imported: []models.RowSuccess{},
		Errors:   []models.RowFailure{},
	}

	for i, raw := range rows {
		rowNum := i + headerOffset

		candidate, err := NormalizeRow(raw)
		if err != nil {
			result.Errors = append(result.Errors, models.RowFailure{Row: rowNum, Message: err.Error()})
			continue
		}

		handles := index.Resolve(candidate.CategoryRefs)

		id, action, err := s.reconciler.Reconcile(ctx, candidate, handles)
		if err != nil {
			result.Errors = append(result.Errors, models.RowFailure{Row: rowNum, Message: err.Error()})
			continue
		}

		result.Imported = append(result.Imported, models.RowSuccess{
			Row:    rowNum,
			ID:     id,
			Name:   candidate.Name,
			Slug:   candidate.Slug,
			Action: action,
		})
		if action == ActionCreated {
			result.CreatedCount++
		} else {
			result.UpdatedCount++
		}
	}

	result.ImportedCount = len(result.Imported)
	result.ErrorCount = len(result.Errors)

	zap.L().Info("import batch completed",
		zap.Int("rows", len(rows)),
		zap.Int("created", result.CreatedCount),
		zap.Int("updated", result.UpdatedCount),
		zap.Int("errors", result.ErrorCount),
	)

	return result
}

// ValidateImport dry-runs the normalizer and category resolution over a file
// without touching the product store. It reports per-row validation errors,
// category tokens absent from the index, and slugs that appear on more than
// one row (those rows would collapse into a single entity on import).
func (s *ImportService) ValidateImport(ctx context.Context, file io.Reader, filename string) (*models.ImportValidation, error) {
	rows, err := ReadRows(file, filename)
	if err != nil {
		return nil, err
	}

	index, err := BuildCategoryIndex(ctx, s.categories)
	if err != nil {
		return nil, err
	}

	validation := &models.ImportValidation{
		TotalRows:         len(rows),
		UnknownCategories: []string{},
		DuplicateSlugs:    []string{},
		Errors:            []models.RowFailure{},
	}
	slugRows := make(map[string]int)
	unknownSeen := make(map[string]bool)
	duplicateSeen := make(map[string]bool)

	for i, raw := range rows {
		rowNum := i + headerOffset

		candidate, err := NormalizeRow(raw)
		if err != nil {
			validation.InvalidRows++
			validation.Errors = append(validation.Errors, models.RowFailure{Row: rowNum, Message: err.Error()})
			continue
		}
		validation.ValidRows++

		if _, exists := slugRows[candidate.Slug]; exists && !duplicateSeen[candidate.Slug] {
			duplicateSeen[candidate.Slug] = true
			validation.DuplicateSlugs = append(validation.DuplicateSlugs, candidate.Slug)
		}
		slugRows[candidate.Slug] = rowNum

		for _, ref := range candidate.CategoryRefs {
			slug := Slugify(ref)
			if _, ok := index[slug]; !ok && !unknownSeen[slug] {
				unknownSeen[slug] = true
				validation.UnknownCategories = append(validation.UnknownCategories, ref)
			}
		}
	}

	return validation, nil
}
