package taxonomy

import (
	"time"
)

// Symptom is a taxonomy entry keyed by its external CUI code, extended
// with long-form descriptive content for retrieval.
type Symptom struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CUI         string `gorm:"column:cui;size:50;not null;uniqueIndex" json:"cui"`
	Name        string `gorm:"size:500;not null;index" json:"name"`
	Alias       string `gorm:"type:text" json:"alias,omitempty"`
	Definition  string `gorm:"type:text" json:"definition,omitempty"`
	ExternalIDs string `gorm:"column:external_ids;type:text" json:"external_ids,omitempty"`

	FullDescription string `gorm:"type:text" json:"full_description,omitempty"`
	Summary         string `gorm:"type:text" json:"summary,omitempty"`

	DiseaseAssociations []DiseaseSymptomAssociation `gorm:"foreignKey:SymptomID;constraint:OnDelete:CASCADE" json:"disease_associations,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Symptom) TableName() string { return "symptoms" }
