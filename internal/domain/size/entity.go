// internal/domain/size/entity.go
package size

import (
	"time"

	"gorm.io/gorm"
)

// Size represents a jewellery size variant identified by its die number
type Size struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	DieNo     string         `gorm:"uniqueIndex;not null;size:50" json:"die_no"`
	Diameter  float64        `gorm:"not null" json:"diameter"`   // In millimetres
	BallGauge float64        `gorm:"not null" json:"ball_gauge"`
	WireGauge float64        `gorm:"not null" json:"wire_gauge"`
	Weight    float64        `json:"weight"` // Nominal weight in grams
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Size) TableName() string {
	return "sizes"
}
