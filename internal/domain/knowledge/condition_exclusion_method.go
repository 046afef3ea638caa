package knowledge

import (
	"time"
)

// ConditionExclusionMethod links a condition to one of its exclusion
// methods. The pair is unique and the row carries no mutable payload,
// so there is no updated_at column.
type ConditionExclusionMethod struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ConditionID uint       `gorm:"not null;index:idx_condition_exclusion_method,unique,priority:1" json:"condition_id"`
	Condition   *Condition `gorm:"constraint:OnDelete:CASCADE;foreignKey:ConditionID;references:ID" json:"condition,omitempty"`

	ExclusionMethodID uint             `gorm:"not null;index:idx_condition_exclusion_method,unique,priority:2" json:"exclusion_method_id"`
	ExclusionMethod   *ExclusionMethod `gorm:"constraint:OnDelete:CASCADE;foreignKey:ExclusionMethodID;references:ID" json:"exclusion_method,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ConditionExclusionMethod) TableName() string { return "condition_exclusion_methods" }
