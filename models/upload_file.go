package models

import (
	"time"

	"gorm.io/gorm"
)

// UploadFile records a file stored on local disk through the upload
// endpoint. Path is relative to the configured upload directory.
type UploadFile struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	OriginalName string         `json:"original_name" gorm:"size:255;not null"`
	StoredName   string         `json:"stored_name" gorm:"size:255;not null"`
	Path         string         `json:"path" gorm:"size:255;not null"`
	Size         int64          `json:"size"`
	ContentType  string         `json:"content_type" gorm:"size:100"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (UploadFile) TableName() string {
	return "upload_files"
}
