package models

import (
	"time"

	"gorm.io/gorm"
)

// EnergyData is one month of consumption measures for a building. The
// natural key is (building_name, year, month); writes against an existing
// key replace the measures rather than appending a second row.
type EnergyData struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	BuildingName string         `json:"building_name" gorm:"size:100;not null;uniqueIndex:idx_energy_natural,priority:1"`
	Year         int            `json:"year" gorm:"not null;uniqueIndex:idx_energy_natural,priority:2"`
	Month        int            `json:"month" gorm:"not null;uniqueIndex:idx_energy_natural,priority:3"`
	Electricity  float64        `json:"electricity" gorm:"type:decimal(14,2);default:0"` // kWh
	Gas          float64        `json:"gas" gorm:"type:decimal(14,2);default:0"`         // m3
	Water        float64        `json:"water" gorm:"type:decimal(14,2);default:0"`       // ton
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (EnergyData) TableName() string {
	return "energy_data"
}
