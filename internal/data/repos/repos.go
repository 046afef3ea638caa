package repos

import (
	"github.com/medibridge/medibridge-backend/internal/data/repos/consult"
	"github.com/medibridge/medibridge-backend/internal/data/repos/knowledge"
	"github.com/medibridge/medibridge-backend/internal/data/repos/taxonomy"
	"github.com/medibridge/medibridge-backend/internal/pkg/logger"
	"gorm.io/gorm"
)

type ConditionRepo = knowledge.ConditionRepo
type ExclusionMethodRepo = knowledge.ExclusionMethodRepo
type TreatmentPlanRepo = knowledge.TreatmentPlanRepo
type ConditionExclusionMethodRepo = knowledge.ConditionExclusionMethodRepo
type ConditionTreatmentPlanRepo = knowledge.ConditionTreatmentPlanRepo

type DiseaseRepo = taxonomy.DiseaseRepo
type SymptomRepo = taxonomy.SymptomRepo
type DiseaseSymptomAssociationRepo = taxonomy.DiseaseSymptomAssociationRepo

type ConversationRepo = consult.ConversationRepo
type MessageRepo = consult.MessageRepo

func NewConditionRepo(db *gorm.DB, baseLog *logger.Logger) ConditionRepo {
	return knowledge.NewConditionRepo(db, baseLog)
}
func NewExclusionMethodRepo(db *gorm.DB, baseLog *logger.Logger) ExclusionMethodRepo {
	return knowledge.NewExclusionMethodRepo(db, baseLog)
}
func NewTreatmentPlanRepo(db *gorm.DB, baseLog *logger.Logger) TreatmentPlanRepo {
	return knowledge.NewTreatmentPlanRepo(db, baseLog)
}
func NewConditionExclusionMethodRepo(db *gorm.DB, baseLog *logger.Logger) ConditionExclusionMethodRepo {
	return knowledge.NewConditionExclusionMethodRepo(db, baseLog)
}
func NewConditionTreatmentPlanRepo(db *gorm.DB, baseLog *logger.Logger) ConditionTreatmentPlanRepo {
	return knowledge.NewConditionTreatmentPlanRepo(db, baseLog)
}

func NewDiseaseRepo(db *gorm.DB, baseLog *logger.Logger) DiseaseRepo {
	return taxonomy.NewDiseaseRepo(db, baseLog)
}
func NewSymptomRepo(db *gorm.DB, baseLog *logger.Logger) SymptomRepo {
	return taxonomy.NewSymptomRepo(db, baseLog)
}
func NewDiseaseSymptomAssociationRepo(db *gorm.DB, baseLog *logger.Logger) DiseaseSymptomAssociationRepo {
	return taxonomy.NewDiseaseSymptomAssociationRepo(db, baseLog)
}

func NewConversationRepo(db *gorm.DB, baseLog *logger.Logger) ConversationRepo {
	return consult.NewConversationRepo(db, baseLog)
}
func NewMessageRepo(db *gorm.DB, baseLog *logger.Logger) MessageRepo {
	return consult.NewMessageRepo(db, baseLog)
}
