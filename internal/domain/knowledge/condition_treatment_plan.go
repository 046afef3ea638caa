package knowledge

import (
	"time"
)

// ConditionTreatmentPlan links a condition to a treatment plan. Plans for
// one condition are ranked by Priority (higher first); IsPrimary marks the
// preferred plan. Priority carries no uniqueness constraint.
type ConditionTreatmentPlan struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ConditionID uint       `gorm:"not null;index:idx_condition_treatment_plan,unique,priority:1" json:"condition_id"`
	Condition   *Condition `gorm:"constraint:OnDelete:CASCADE;foreignKey:ConditionID;references:ID" json:"condition,omitempty"`

	TreatmentPlanID uint           `gorm:"not null;index:idx_condition_treatment_plan,unique,priority:2" json:"treatment_plan_id"`
	TreatmentPlan   *TreatmentPlan `gorm:"constraint:OnDelete:CASCADE;foreignKey:TreatmentPlanID;references:ID" json:"treatment_plan,omitempty"`

	IsPrimary bool   `gorm:"not null;default:false" json:"is_primary"`
	Priority  int    `gorm:"not null;default:0" json:"priority"`
	Notes     string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ConditionTreatmentPlan) TableName() string { return "condition_treatment_plans" }
