package models

import (
	"time"

	"gorm.io/gorm"
)

// Board is a posting board (notices, press, archives). Slug is the public
// identifier used in URLs.
type Board struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	Name        string         `json:"name" gorm:"size:100;not null"`
	Description string         `json:"description" gorm:"size:255"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (Board) TableName() string {
	return "boards"
}
