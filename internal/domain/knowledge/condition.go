package knowledge

import (
	"time"
)

// Condition is a diagnosable medical condition in the knowledge base.
type Condition struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:255;not null;index" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
	Summary     string `gorm:"size:500" json:"summary,omitempty"`

	ExclusionMethods []ConditionExclusionMethod `gorm:"foreignKey:ConditionID;constraint:OnDelete:CASCADE" json:"exclusion_methods,omitempty"`
	TreatmentPlans   []ConditionTreatmentPlan   `gorm:"foreignKey:ConditionID;constraint:OnDelete:CASCADE" json:"treatment_plans,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Condition) TableName() string { return "conditions" }
