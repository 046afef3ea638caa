package knowledge

import (
	"time"

	"gorm.io/datatypes"
)

// ExclusionMethod describes how a condition can be ruled out during triage.
// Steps holds an ordered JSON list of procedure steps.
type ExclusionMethod struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string         `gorm:"size:255;not null;index" json:"name"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Steps       datatypes.JSON `gorm:"column:steps" json:"steps,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ExclusionMethod) TableName() string { return "exclusion_methods" }
