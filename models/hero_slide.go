package models

import (
	"time"

	"gorm.io/gorm"
)

// HeroSlide is a promotional entry on the landing page. A slide either has
// an uploaded image or a CSS gradient generated from the two colors and the
// angle. OrderIndex is a sort key only, duplicates are allowed.
type HeroSlide struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Title         string         `json:"title" gorm:"size:200;not null"`
	Subtitle      string         `json:"subtitle" gorm:"size:255"`
	LinkURL       string         `json:"link_url" gorm:"size:255"`
	ImagePath     string         `json:"image_path" gorm:"size:255"`
	GradientStart string         `json:"gradient_start" gorm:"size:20"` // e.g. #16a34a
	GradientEnd   string         `json:"gradient_end" gorm:"size:20"`
	GradientAngle int            `json:"gradient_angle" gorm:"default:135"`
	OrderIndex    int            `json:"order_index" gorm:"default:0;index"`
	IsActive      bool           `json:"is_active" gorm:"default:true;index"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (HeroSlide) TableName() string {
	return "hero_slides"
}
