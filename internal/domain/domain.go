package domain

import (
	"github.com/medibridge/medibridge-backend/internal/domain/consult"
	"github.com/medibridge/medibridge-backend/internal/domain/knowledge"
	"github.com/medibridge/medibridge-backend/internal/domain/taxonomy"
)

// Knowledge base
type Condition = knowledge.Condition
type ExclusionMethod = knowledge.ExclusionMethod
type TreatmentPlan = knowledge.TreatmentPlan
type ConditionExclusionMethod = knowledge.ConditionExclusionMethod
type ConditionTreatmentPlan = knowledge.ConditionTreatmentPlan

// Disease / symptom taxonomy
type Disease = taxonomy.Disease
type Symptom = taxonomy.Symptom
type DiseaseSymptomAssociation = taxonomy.DiseaseSymptomAssociation

// Consultation history
type Conversation = consult.Conversation
type Message = consult.Message
