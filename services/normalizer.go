package services

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// RawRow is one spreadsheet row keyed by lower-cased header names. Cell
// values arrive as strings regardless of the original cell type.
type RawRow map[string]string

// CandidateRecord is the validated projection of a RawRow. It is built once
// per row by NormalizeRow and discarded after the row is reconciled; no field
// coercion happens anywhere downstream.
type CandidateRecord struct {
	Name         string
	Slug         string
	Price        float64
	Stock        int
	Brand        string
	Active       bool
	CategoryRefs []string
}

var (
	ErrEmptyName    = errors.New("empty name")
	ErrInvalidPrice = errors.New("invalid price")
	ErrInvalidStock = errors.New("invalid stock")
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	nonSlugRunes   = regexp.MustCompile(`[^\w\-]+`)
	hyphenRuns     = regexp.MustCompile(`\-\-+`)
)

// Slugify derives the identity key from a display name: lower-case, trim,
// whitespace runs to "-", strip anything but word characters and hyphens,
// collapse repeated hyphens, trim leading/trailing hyphens. Deterministic:
// the same name always yields the same slug, which is what makes re-imports
// idempotent.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = whitespaceRuns.ReplaceAllString(s, "-")
	s = nonSlugRunes.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return s
}

// truthy tokens accepted for the active flag, case-insensitive.
var truthyTokens = map[string]bool{
	"true": true,
	"1":    true,
	"si":   true,
	"sí":   true,
	"yes":  true,
}

// normalizeBoolean maps a raw cell to a bool: known truthy tokens and
// non-zero numbers are true, everything else is false.
func normalizeBoolean(v string) bool {
	s := strings.ToLower(strings.TrimSpace(v))
	if truthyTokens[s] {
		return true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f != 0
	}
	return false
}

// splitCategoryRefs splits a delimited category cell on ";", "," or "|",
// trims each token and drops empties. Order is preserved and duplicates are
// kept; resolution collapses them later.
func splitCategoryRefs(v string) []string {
	var refs []string
	for _, tok := range strings.FieldsFunc(v, func(r rune) bool {
		return r == ';' || r == ',' || r == '|'
	}) {
		if trimmed := strings.TrimSpace(tok); trimmed != "" {
			refs = append(refs, trimmed)
		}
	}
	return refs
}

// NormalizeRow validates and coerces one raw row into a CandidateRecord.
// Pure function: no I/O, no store access.
func NormalizeRow(raw RawRow) (*CandidateRecord, error) {
	name := strings.TrimSpace(raw["name"])
	if name == "" {
		return nil, ErrEmptyName
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(raw["price"]), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, ErrInvalidPrice
	}

	// Absent stock defaults to 0; a present but unparsable value fails the
	// row instead of being silently zeroed.
	stock := 0
	if stockStr := strings.TrimSpace(raw["stock"]); stockStr != "" {
		f, err := strconv.ParseFloat(stockStr, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, ErrInvalidStock
		}
		stock = int(f)
	}

	active := true
	if activeStr, ok := raw["active"]; ok && strings.TrimSpace(activeStr) != "" {
		active = normalizeBoolean(activeStr)
	}

	return &CandidateRecord{
		Name:         name,
		Slug:         Slugify(name),
		Price:        price,
		Stock:        stock,
		Brand:        strings.TrimSpace(raw["brand"]),
		Active:       active,
		CategoryRefs: splitCategoryRefs(raw["categories"]),
	}, nil
}
