package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is one entry on a board.
type Post struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	BoardID    uint           `json:"board_id" gorm:"index;not null"`
	CategoryID *uint          `json:"category_id" gorm:"index"`
	Title      string         `json:"title" gorm:"size:200;not null"`
	Content    string         `json:"content" gorm:"type:longtext"`
	Author     string         `json:"author" gorm:"size:50"`
	ViewCount  int64          `json:"view_count" gorm:"default:0"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
	Board      Board          `json:"-" gorm:"foreignKey:BoardID"`
}

// TableName sets the table name.
func (Post) TableName() string {
	return "posts"
}
