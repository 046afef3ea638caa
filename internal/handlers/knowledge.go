package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/medibridge/medibridge-backend/internal/data/repos"
	types "github.com/medibridge/medibridge-backend/internal/domain"
	"github.com/medibridge/medibridge-backend/internal/pkg/logger"
)

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid %s %q", name, raw))
		return 0, false
	}
	return uint(v), true
}

func parsePageQuery(c *gin.Context) (int, int) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return skip, limit
}

func jsonList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return datatypes.JSON(b)
}

type KnowledgeHandler struct {
	log         *logger.Logger
	conditions  repos.ConditionRepo
	methods     repos.ExclusionMethodRepo
	plans       repos.TreatmentPlanRepo
	condMethods repos.ConditionExclusionMethodRepo
	condPlans   repos.ConditionTreatmentPlanRepo
}

func NewKnowledgeHandler(
	log *logger.Logger,
	conditions repos.ConditionRepo,
	methods repos.ExclusionMethodRepo,
	plans repos.TreatmentPlanRepo,
	condMethods repos.ConditionExclusionMethodRepo,
	condPlans repos.ConditionTreatmentPlanRepo,
) *KnowledgeHandler {
	return &KnowledgeHandler{
		log:         log.With("handler", "KnowledgeHandler"),
		conditions:  conditions,
		methods:     methods,
		plans:       plans,
		condMethods: condMethods,
		condPlans:   condPlans,
	}
}

type createConditionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Summary     string `json:"summary"`
}

func (h *KnowledgeHandler) CreateCondition(c *gin.Context) {
	var req createConditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	row, err := h.conditions.Create(c.Request.Context(), nil, &types.Condition{
		Name:        req.Name,
		Description: req.Description,
		Summary:     req.Summary,
	})
	if err != nil {
		h.log.Error("CreateCondition failed", "error", err)
		RespondFromError(c, err)
		return
	}
	RespondCreated(c, row)
}

func (h *KnowledgeHandler) GetCondition(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var (
		row *types.Condition
		err error
	)
	if c.Query("include") == "relations" {
		row, err = h.conditions.GetWithRelations(c.Request.Context(), nil, id)
	} else {
		row, err = h.conditions.GetByID(c.Request.Context(), nil, id)
	}
	if err != nil {
		h.log.Error("GetCondition failed", "error", err, "id", id)
		RespondFromError(c, err)
		return
	}
	if row == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("condition %d not found", id))
		return
	}
	RespondOK(c, row)
}

func (h *KnowledgeHandler) ListConditions(c *gin.Context) {
	skip, limit := parsePageQuery(c)
	total, rows, err := h.conditions.List(c.Request.Context(), nil, skip, limit)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"total": total, "items": rows})
}

func (h *KnowledgeHandler) SearchConditions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	rows, err := h.conditions.SearchByName(c.Request.Context(), nil, c.Query("q"), limit)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": rows})
}

type updateConditionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Summary     *string `json:"summary"`
}

func (h *KnowledgeHandler) UpdateCondition(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateConditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Summary != nil {
		updates["summary"] = *req.Summary
	}
	row, err := h.conditions.UpdateFields(c.Request.Context(), nil, id, updates)
	if err != nil {
		h.log.Error("UpdateCondition failed", "error", err, "id", id)
		RespondFromError(c, err)
		return
	}
	if row == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("condition %d not found", id))
		return
	}
	RespondOK(c, row)
}

func (h *KnowledgeHandler) DeleteCondition(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := h.conditions.Delete(c.Request.Context(), nil, id)
	if err != nil {
		h.log.Error("DeleteCondition failed", "error", err, "id", id)
		RespondFromError(c, err)
		return
	}
	if !deleted {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("condition %d not found", id))
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

type createExclusionMethodRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Steps       []string `json:"steps"`
}

func (h *KnowledgeHandler) CreateExclusionMethod(c *gin.Context) {
	var req createExclusionMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	row, err := h.methods.Create(c.Request.Context(), nil, &types.ExclusionMethod{
		Name:        req.Name,
		Description: req.Description,
		Steps:       jsonList(req.Steps),
	})
	if err != nil {
		h.log.Error("CreateExclusionMethod failed", "error", err)
		RespondFromError(c, err)
		return
	}
	RespondCreated(c, row)
}

func (h *KnowledgeHandler) GetExclusionMethod(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	row, err := h.methods.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if row == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("exclusion method %d not found", id))
		return
	}
	RespondOK(c, row)
}

func (h *KnowledgeHandler) ListExclusionMethods(c *gin.Context) {
	skip, limit := parsePageQuery(c)
	total, rows, err := h.methods.List(c.Request.Context(), nil, skip, limit)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"total": total, "items": rows})
}

func (h *KnowledgeHandler) SearchExclusionMethods(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	rows, err := h.methods.SearchByName(c.Request.Context(), nil, c.Query("q"), limit)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": rows})
}

type updateExclusionMethodRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Steps       *[]string `json:"steps"`
}

func (h *KnowledgeHandler) UpdateExclusionMethod(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateExclusionMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Steps != nil {
		updates["steps"] = jsonList(*req.Steps)
	}
	row, err := h.methods.UpdateFields(c.Request.Context(), nil, id, updates)
	if err != nil {
		h.log.Error("UpdateExclusionMethod failed", "error", err, "id", id)
		RespondFromError(c, err)
		return
	}
	if row == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("exclusion method %d not found", id))
		return
	}
	RespondOK(c, row)
}

func (h *KnowledgeHandler) DeleteExclusionMethod(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := h.methods.Delete(c.Request.Context(), nil, id)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if !deleted {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("exclusion method %d not found", id))
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

type createTreatmentPlanRequest struct {
	Name              string   `json:"name" binding:"required"`
	Description       string   `json:"description" binding:"required"`
	Medications       []string `json:"medications"`
	Procedures        []string `json:"procedures"`
	LifestyleFactors  []string `json:"lifestyle_factors"`
	Contraindications []string `json:"contraindications"`
}

func (h *KnowledgeHandler) CreateTreatmentPlan(c *gin.Context) {
	var req createTreatmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	row, err := h.plans.Create(c.Request.Context(), nil, &types.TreatmentPlan{
		Name:              req.Name,
		Description:       req.Description,
		Medications:       jsonList(req.Medications),
		Procedures:        jsonList(req.Procedures),
		LifestyleFactors:  jsonList(req.LifestyleFactors),
		Contraindications: jsonList(req.Contraindications),
	})
	if err != nil {
		h.log.Error("CreateTreatmentPlan failed", "error", err)
		RespondFromError(c, err)
		return
	}
	RespondCreated(c, row)
}

func (h *KnowledgeHandler) GetTreatmentPlan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	row, err := h.plans.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if row == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("treatment plan %d not found", id))
		return
	}
	RespondOK(c, row)
}

func (h *KnowledgeHandler) ListTreatmentPlans(c *gin.Context) {
	skip, limit := parsePageQuery(c)
	total, rows, err := h.plans.List(c.Request.Context(), nil, skip, limit)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"total": total, "items": rows})
}

func (h *KnowledgeHandler) SearchTreatmentPlans(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	rows, err := h.plans.SearchByName(c.Request.Context(), nil, c.Query("q"), limit)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": rows})
}

type updateTreatmentPlanRequest struct {
	Name              *string   `json:"name"`
	Description       *string   `json:"description"`
	Medications       *[]string `json:"medications"`
	Procedures        *[]string `json:"procedures"`
	LifestyleFactors  *[]string `json:"lifestyle_factors"`
	Contraindications *[]string `json:"contraindications"`
}

func (h *KnowledgeHandler) UpdateTreatmentPlan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateTreatmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Medications != nil {
		updates["medications"] = jsonList(*req.Medications)
	}
	if req.Procedures != nil {
		updates["procedures"] = jsonList(*req.Procedures)
	}
	if req.LifestyleFactors != nil {
		updates["lifestyle_factors"] = jsonList(*req.LifestyleFactors)
	}
	if req.Contraindications != nil {
		updates["contraindications"] = jsonList(*req.Contraindications)
	}
	row, err := h.plans.UpdateFields(c.Request.Context(), nil, id, updates)
	if err != nil {
		h.log.Error("UpdateTreatmentPlan failed", "error", err, "id", id)
		RespondFromError(c, err)
		return
	}
	if row == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("treatment plan %d not found", id))
		return
	}
	RespondOK(c, row)
}

func (h *KnowledgeHandler) DeleteTreatmentPlan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := h.plans.Delete(c.Request.Context(), nil, id)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if !deleted {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("treatment plan %d not found", id))
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (h *KnowledgeHandler) LinkExclusionMethod(c *gin.Context) {
	conditionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	methodID, ok := parseIDParam(c, "methodID")
	if !ok {
		return
	}
	link, err := h.condMethods.Add(c.Request.Context(), nil, conditionID, methodID)
	if err != nil {
		h.log.Error("LinkExclusionMethod failed", "error", err, "condition_id", conditionID, "method_id", methodID)
		RespondFromError(c, err)
		return
	}
	RespondCreated(c, link)
}

func (h *KnowledgeHandler) UnlinkExclusionMethod(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	removed, err := h.condMethods.Remove(c.Request.Context(), nil, id)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if !removed {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("association %d not found", id))
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (h *KnowledgeHandler) ListExclusionMethodsForCondition(c *gin.Context) {
	conditionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rows, err := h.condMethods.ListMethodsByCondition(c.Request.Context(), nil, conditionID)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": rows})
}

func (h *KnowledgeHandler) ListConditionsForExclusionMethod(c *gin.Context) {
	methodID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rows, err := h.condMethods.ListConditionsByMethod(c.Request.Context(), nil, methodID)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": rows})
}

type linkTreatmentPlanRequest struct {
	TreatmentPlanID uint   `json:"treatment_plan_id" binding:"required"`
	IsPrimary       bool   `json:"is_primary"`
	Priority        int    `json:"priority"`
	Notes           string `json:"notes"`
}

func (h *KnowledgeHandler) LinkTreatmentPlan(c *gin.Context) {
	conditionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req linkTreatmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	link, err := h.condPlans.Add(c.Request.Context(), nil, &types.ConditionTreatmentPlan{
		ConditionID:     conditionID,
		TreatmentPlanID: req.TreatmentPlanID,
		IsPrimary:       req.IsPrimary,
		Priority:        req.Priority,
		Notes:           req.Notes,
	})
	if err != nil {
		h.log.Error("LinkTreatmentPlan failed", "error", err, "condition_id", conditionID, "plan_id", req.TreatmentPlanID)
		RespondFromError(c, err)
		return
	}
	RespondCreated(c, link)
}

type updateTreatmentPlanLinkRequest struct {
	IsPrimary *bool   `json:"is_primary"`
	Priority  *int    `json:"priority"`
	Notes     *string `json:"notes"`
}

func (h *KnowledgeHandler) UpdateTreatmentPlanLink(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateTreatmentPlanLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updates := map[string]interface{}{}
	if req.IsPrimary != nil {
		updates["is_primary"] = *req.IsPrimary
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	row, err := h.condPlans.UpdateFields(c.Request.Context(), nil, id, updates)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if row == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("association %d not found", id))
		return
	}
	RespondOK(c, row)
}

func (h *KnowledgeHandler) UnlinkTreatmentPlan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	removed, err := h.condPlans.Remove(c.Request.Context(), nil, id)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if !removed {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("association %d not found", id))
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (h *KnowledgeHandler) ListTreatmentPlansForCondition(c *gin.Context) {
	conditionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rows, err := h.condPlans.ListPlansByCondition(c.Request.Context(), nil, conditionID)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": rows})
}

func (h *KnowledgeHandler) ListConditionsForTreatmentPlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rows, err := h.condPlans.ListConditionsByPlan(c.Request.Context(), nil, planID)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": rows})
}
