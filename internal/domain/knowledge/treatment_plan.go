package knowledge

import (
	"time"

	"gorm.io/datatypes"
)

// TreatmentPlan is a recommended course of treatment. The list-valued
// columns are optional JSON arrays.
type TreatmentPlan struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name              string         `gorm:"size:255;not null;index" json:"name"`
	Description       string         `gorm:"type:text;not null" json:"description"`
	Medications       datatypes.JSON `gorm:"column:medications" json:"medications,omitempty"`
	Procedures        datatypes.JSON `gorm:"column:procedures" json:"procedures,omitempty"`
	LifestyleFactors  datatypes.JSON `gorm:"column:lifestyle_factors" json:"lifestyle_factors,omitempty"`
	Contraindications datatypes.JSON `gorm:"column:contraindications" json:"contraindications,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (TreatmentPlan) TableName() string { return "treatment_plans" }
