package models

import (
	"time"

	"gorm.io/gorm"
)

// Page is a static content page rendered by the public site. Content is
// stored as raw HTML maintained through the admin editor.
type Page struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Slug      string         `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	Title     string         `json:"title" gorm:"size:200;not null"`
	Content   string         `json:"content" gorm:"type:longtext"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (Page) TableName() string {
	return "pages"
}
