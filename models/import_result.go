package models

import "github.com/google/uuid"

// Row numbers in import results are spreadsheet rows: row 1 is the header,
// so the first data row reports as row 2.

type RowSuccess struct {
	Row    int       `json:"row"`
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Slug   string    `json:"slug"`
	Action string    `json:"action"` // "created" or "updated"
}

type RowFailure struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// BatchResult is the aggregate outcome of one import run. A batch always
// completes: every row is accounted for either in Imported or in Errors.
type BatchResult struct {
	ImportedCount int          `json:"importedCount"`
	CreatedCount  int          `json:"createdCount"`
	UpdatedCount  int          `json:"updatedCount"`
	ErrorCount    int          `json:"errorCount"`
	Imported      []RowSuccess `json:"imported"`
	Errors        []RowFailure `json:"errors"`
}

// ImportValidation is the result of a dry-run over an uploaded file. No
// product writes happen during validation.
type ImportValidation struct {
	TotalRows         int          `json:"total_rows"`
	ValidRows         int          `json:"valid_rows"`
	InvalidRows       int          `json:"invalid_rows"`
	UnknownCategories []string     `json:"unknown_categories"`
	DuplicateSlugs    []string     `json:"duplicate_slugs"`
	Errors            []RowFailure `json:"errors"`
}
