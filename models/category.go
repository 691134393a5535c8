package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is a board-scoped post label.
type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	BoardID   uint           `json:"board_id" gorm:"index;not null"`
	Name      string         `json:"name" gorm:"size:50;not null"`
	Sort      int            `json:"sort" gorm:"default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (Category) TableName() string {
	return "categories"
}
