package taxonomy

import (
	"time"
)

// Disease is a taxonomy entry keyed by its external CUI code. Alias and
// ExternalIDs hold pipe-separated values as shipped in the source dataset.
type Disease struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CUI         string `gorm:"column:cui;size:50;not null;uniqueIndex" json:"cui"`
	Name        string `gorm:"size:500;not null;index" json:"name"`
	Alias       string `gorm:"type:text" json:"alias,omitempty"`
	Definition  string `gorm:"type:text" json:"definition,omitempty"`
	ExternalIDs string `gorm:"column:external_ids;type:text" json:"external_ids,omitempty"`

	SymptomAssociations []DiseaseSymptomAssociation `gorm:"foreignKey:DiseaseID;constraint:OnDelete:CASCADE" json:"symptom_associations,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Disease) TableName() string { return "diseases" }
