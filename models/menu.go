package models

import (
	"time"

	"gorm.io/gorm"
)

// Menu kinds. The kind decides which backing reference is meaningful:
// a page menu points at a Page, a board menu at a Board, a link menu is a
// plain URL with no backing record.
const (
	MenuKindPage  = "page"
	MenuKindBoard = "board"
	MenuKindLink  = "link"
)

// Menu is one entry of the site navigation. Menus form a forest through
// ParentID (0 means root level); siblings are ordered by SortOrder with id
// as the tie-break. Inactive menus stay visible in the admin editor but are
// excluded from the public tree together with their subtree.
type Menu struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ParentID  uint           `json:"parent_id" gorm:"default:0;index"` // 0 = root
	Name      string         `json:"name" gorm:"size:100;not null"`
	URL       string         `json:"url" gorm:"size:255"`
	Kind      string         `json:"kind" gorm:"size:20;not null;default:link;index"`
	PageID    *uint          `json:"page_id" gorm:"index"`
	BoardID   *uint          `json:"board_id" gorm:"index"`
	SortOrder int            `json:"sort_order" gorm:"default:0;index"`
	IsActive  bool           `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (Menu) TableName() string {
	return "menus"
}

// ValidKind reports whether k is one of the known menu kinds.
func ValidKind(k string) bool {
	return k == MenuKindPage || k == MenuKindBoard || k == MenuKindLink
}
