package taxonomy

import (
	"time"
)

// DiseaseSymptomAssociation links a disease to a symptom. The pair is
// unique; Source tags the dataset the association came from. Immutable
// after creation, so there is no updated_at column.
type DiseaseSymptomAssociation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DiseaseID uint     `gorm:"not null;index:idx_disease_symptom_association,unique,priority:1" json:"disease_id"`
	Disease   *Disease `gorm:"constraint:OnDelete:CASCADE;foreignKey:DiseaseID;references:ID" json:"disease,omitempty"`

	SymptomID uint     `gorm:"not null;index:idx_disease_symptom_association,unique,priority:2" json:"symptom_id"`
	Symptom   *Symptom `gorm:"constraint:OnDelete:CASCADE;foreignKey:SymptomID;references:ID" json:"symptom,omitempty"`

	Source string `gorm:"size:200" json:"source,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (DiseaseSymptomAssociation) TableName() string { return "disease_symptom_associations" }
