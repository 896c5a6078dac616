package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"catalog-importer/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImportController handles spreadsheet import operations
type ImportController struct {
	importer   ImporterAPI
	redis      *redis.Client
	cache      *CacheManager
	validator  *RequestValidator
	storageDir string
	timeout    time.Duration
}

func NewImportController(importer ImporterAPI, redis *redis.Client, cache *CacheManager, validator *RequestValidator, storageDir string) *ImportController {
	if storageDir == "" {
		storageDir = services.DefaultStorageDir
	}
	return &ImportController{
		importer:   importer,
		redis:      redis,
		cache:      cache,
		validator:  validator,
		storageDir: storageDir,
		timeout:    DefaultContextTimeout,
	}
}

// ImportProducts imports products from an uploaded XLSX/CSV file
func (h *ImportController) ImportProducts(c *gin.Context) {
	file, err := h.getAndValidateFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileHandle, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open file"})
		return
	}
	defer fileHandle.Close()

	// Check if async processing is requested
	async := strings.ToLower(strings.TrimSpace(c.Query("async"))) == "true"

	if async {
		h.handleAsyncImport(c, fileHandle, file.Filename)
		return
	}

	h.handleSyncImport(c, fileHandle, file.Filename)
}

// ValidateImport dry-runs the file without writing products
func (h *ImportController) ValidateImport(c *gin.Context) {
	file, err := h.getAndValidateFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileHandle, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open file"})
		return
	}
	defer fileHandle.Close()

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	validation, err := h.importer.ValidateImport(ctx, fileHandle, file.Filename)
	if err != nil {
		zap.L().Error("Import validation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, validation)
}

// GetImportJobStatus returns the job status/result stored in Redis
func (h *ImportController) GetImportJobStatus(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job ID required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	jobKey := fmt.Sprintf(services.ImportJobKeyFmt, id)
	val, err := h.redis.Get(ctx, jobKey).Result()
	if err == redis.Nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if err != nil {
		zap.L().Error("Failed to get job status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve job status"})
		return
	}

	var jobStatus map[string]interface{}
	if err := json.Unmarshal([]byte(val), &jobStatus); err != nil {
		zap.L().Error("Failed to parse job status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse job result"})
		return
	}

	c.JSON(http.StatusOK, jobStatus)
}

// Private helper methods

func (h *ImportController) getAndValidateFile(c *gin.Context) (*multipart.FileHeader, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("file is required")
	}

	if !h.validator.IsValidSpreadsheetFile(file) {
		return nil, fmt.Errorf("invalid file type. Only XLSX and CSV files are allowed")
	}

	if err := h.validator.ValidateFileSize(file); err != nil {
		return nil, err
	}

	return file, nil
}

func (h *ImportController) handleSyncImport(c *gin.Context, fileHandle multipart.File, filename string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	result, err := h.importer.ProcessImport(ctx, fileHandle, filename)
	if err != nil {
		zap.L().Error("Import processing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Invalidate cache if any products were written
	if result.CreatedCount+result.UpdatedCount > 0 {
		if err := h.cache.Invalidate(ctx); err != nil {
			zap.L().Error("CRITICAL: Failed to invalidate cache after import", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, result)
}

func (h *ImportController) handleAsyncImport(c *gin.Context, fileHandle multipart.File, filename string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	jobID, err := h.enqueueJob(ctx, fileHandle, filename)
	if err != nil {
		zap.L().Error("Failed to enqueue async import", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue import job"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"job_id":  jobID,
		"message": "Import queued for processing",
	})
}

func (h *ImportController) enqueueJob(ctx context.Context, fileHandle multipart.File, filename string) (string, error) {
	data, err := io.ReadAll(fileHandle)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	if err := os.MkdirAll(h.storageDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	// Keep the original extension so the worker picks the right reader.
	jobID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".csv"
	}
	filePath := filepath.Join(h.storageDir, jobID+ext)

	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to persist file: %w", err)
	}

	if err := h.storeJobMetadata(ctx, jobID, filePath, filename); err != nil {
		os.Remove(filePath)
		return "", err
	}

	if err := h.redis.RPush(ctx, services.ImportQueueKey, jobID).Err(); err != nil {
		os.Remove(filePath)
		h.redis.Del(ctx, fmt.Sprintf(services.ImportJobKeyFmt, jobID))
		return "", fmt.Errorf("failed to enqueue job: %w", err)
	}

	zap.L().Info("Import job queued", zap.String("job_id", jobID))
	return jobID, nil
}

func (h *ImportController) storeJobMetadata(ctx context.Context, jobID, filePath, filename string) error {
	jobInfo := map[string]interface{}{
		"status":     "pending",
		"created_at": time.Now().UTC().Format(time.RFC3339),
		"file_path":  filePath,
		"filename":   filename,
	}

	jobData, err := json.Marshal(jobInfo)
	if err != nil {
		return fmt.Errorf("failed to marshal job info: %w", err)
	}

	jobKey := fmt.Sprintf(services.ImportJobKeyFmt, jobID)
	if err := h.redis.Set(ctx, jobKey, jobData, services.ImportJobTTL).Err(); err != nil {
		return fmt.Errorf("failed to store job metadata: %w", err)
	}

	return nil
}
