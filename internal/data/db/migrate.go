package db

import (
	types "github.com/medibridge/medibridge-backend/internal/domain"
	"gorm.io/gorm"
)

// AutoMigrateAll provisions every table. Parents come first so the join
// tables can attach their foreign keys with ON DELETE CASCADE.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// =========================
		// Knowledge base
		// =========================
		&types.Condition{},
		&types.ExclusionMethod{},
		&types.TreatmentPlan{},
		&types.ConditionExclusionMethod{},
		&types.ConditionTreatmentPlan{},

		// =========================
		// Disease / symptom taxonomy
		// =========================
		&types.Disease{},
		&types.Symptom{},
		&types.DiseaseSymptomAssociation{},

		// =========================
		// Consultation history
		// =========================
		&types.Conversation{},
		&types.Message{},
	)
}
