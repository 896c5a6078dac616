package controllers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation constants
const (
	MaxUploadSize = 50 * 1024 * 1024 // 50MB
)

var allowedSpreadsheetExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".csv":  true,
	".txt":  true,
}

var validate = validator.New()

// RequestValidator handles all input validation
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validate: validate,
	}
}

// IsValidSpreadsheetFile checks if the upload looks like a supported tabular
// file (XLSX or CSV).
func (rv *RequestValidator) IsValidSpreadsheetFile(file *multipart.FileHeader) bool {
	contentType := file.Header.Get("Content-Type")
	switch contentType {
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-excel",
		"text/csv",
		"application/csv",
		"text/plain":
		return true
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	return allowedSpreadsheetExtensions[ext]
}

// ValidateFileSize checks if file size is within limits
func (rv *RequestValidator) ValidateFileSize(file *multipart.FileHeader) error {
	if file.Size > MaxUploadSize {
		return fmt.Errorf("file too large (max %dMB)", MaxUploadSize/(1024*1024))
	}
	return nil
}
