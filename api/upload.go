package api

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"greencampus/config"
	"greencampus/database"
	"greencampus/models"

	"github.com/gin-gonic/gin"
)

// allowedUploadExts limits what the editor can attach. Everything else is
// rejected before touching disk.
var allowedUploadExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	".svg": true, ".pdf": true, ".hwp": true, ".doc": true, ".docx": true,
	".xls": true, ".xlsx": true, ".csv": true, ".zip": true,
}

// UploadHandler stores files on local disk under the configured directory.
type UploadHandler struct {
	cfg *config.Config
}

func NewUploadHandler(cfg *config.Config) *UploadHandler {
	return &UploadHandler{cfg: cfg}
}

// Upload accepts one multipart file and stores it under a yyyy/mm bucket
// with a collision-free name. The returned path is what the frontend embeds
// in content, served under /uploads/.
// @Summary Upload file
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "file"
// @Success 201 {object} Response{data=models.UploadFile}
// @Failure 400 {object} Response
// @Router /api/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required")
		return
	}

	maxBytes := h.cfg.Upload.MaxSizeMB * 1024 * 1024
	if file.Size > maxBytes {
		BadRequest(c, fmt.Sprintf("file exceeds %dMB limit", h.cfg.Upload.MaxSizeMB))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExts[ext] {
		BadRequest(c, "file type not allowed")
		return
	}

	now := time.Now()
	bucket := now.Format("2006/01")
	storedName := fmt.Sprintf("%d%s", now.UnixNano(), ext)
	relPath := path.Join(bucket, storedName)

	dir := filepath.Join(h.cfg.Upload.Dir, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to store file"))
		return
	}
	if err := c.SaveUploadedFile(file, filepath.Join(dir, storedName)); err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to store file"))
		return
	}

	record := models.UploadFile{
		OriginalName: filepath.Base(file.Filename),
		StoredName:   storedName,
		Path:         relPath,
		Size:         file.Size,
		ContentType:  file.Header.Get("Content-Type"),
	}
	if err := database.DB.Create(&record).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to record upload"))
		return
	}

	Created(c, gin.H{
		"id":            record.ID,
		"original_name": record.OriginalName,
		"path":          record.Path,
		"url":           "/uploads/" + record.Path,
		"size":          record.Size,
	})
}

// List returns uploads, newest first.
// @Summary List uploads
// @Tags uploads
// @Produce json
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} Response{data=PageResponse}
// @Router /api/upload [get]
func (h *UploadHandler) List(c *gin.Context) {
	page, limit := pagination(c, 20)

	var total int64
	database.DB.Model(&models.UploadFile{}).Count(&total)

	var files []models.UploadFile
	if err := database.DB.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&files).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to load uploads"))
		return
	}
	Success(c, PageResponse{Total: total, Page: page, Limit: limit, List: files})
}

// Delete removes the record and the file on disk.
// @Summary Delete upload
// @Tags uploads
// @Produce json
// @Param id path int true "upload id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/upload/{id} [delete]
func (h *UploadHandler) Delete(c *gin.Context) {
	var record models.UploadFile
	if err := database.DB.First(&record, c.Param("id")).Error; err != nil {
		NotFound(c, "upload not found")
		return
	}
	if err := database.DB.Delete(&record).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to delete upload"))
		return
	}
	// Disk cleanup is best effort; the row is already soft-deleted.
	_ = os.Remove(filepath.Join(h.cfg.Upload.Dir, filepath.FromSlash(record.Path)))
	SuccessWithMessage(c, "upload deleted", nil)
}
