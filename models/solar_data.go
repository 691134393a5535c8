package models

import (
	"time"

	"gorm.io/gorm"
)

// SolarData is one month of photovoltaic generation for a building, with
// the installed nameplate capacity that month. Same natural-key upsert
// semantics as EnergyData.
type SolarData struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	BuildingName string         `json:"building_name" gorm:"size:100;not null;uniqueIndex:idx_solar_natural,priority:1"`
	Year         int            `json:"year" gorm:"not null;uniqueIndex:idx_solar_natural,priority:2"`
	Month        int            `json:"month" gorm:"not null;uniqueIndex:idx_solar_natural,priority:3"`
	Generation   float64        `json:"generation" gorm:"type:decimal(14,2);default:0"` // kWh
	Capacity     float64        `json:"capacity" gorm:"type:decimal(14,2);default:0"`   // kW
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (SolarData) TableName() string {
	return "solar_data"
}
