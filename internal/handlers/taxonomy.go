package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medibridge/medibridge-backend/internal/data/repos"
	types "github.com/medibridge/medibridge-backend/internal/domain"
	"github.com/medibridge/medibridge-backend/internal/pkg/logger"
)

type TaxonomyHandler struct {
	log          *logger.Logger
	diseases     repos.DiseaseRepo
	symptoms     repos.SymptomRepo
	associations repos.DiseaseSymptomAssociationRepo
}

func NewTaxonomyHandler(
	log *logger.Logger,
	diseases repos.DiseaseRepo,
	symptoms repos.SymptomRepo,
	associations repos.DiseaseSymptomAssociationRepo,
) *TaxonomyHandler {
	return &TaxonomyHandler{
		log:          log.With("handler", "TaxonomyHandler"),
		diseases:     diseases,
		symptoms:     symptoms,
		associations: associations,
	}
}

type createDiseaseRequest struct {
	CUI         string `json:"cui" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Alias       string `json:"alias"`
	Definition  string `json:"definition"`
	ExternalIDs string `json:"external_ids"`
}

func (h *TaxonomyHandler) CreateDisease(c *gin.Context) {
	var req createDiseaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	row, err := h.diseases.Create(c.Request.Context(), nil, &types.Disease{
		CUI:         req.CUI,
		Name:        req.Name,
		Alias:       req.Alias,
		Definition:  req.Definition,
		ExternalIDs: req.ExternalIDs,
	})
	if err != nil {
		h.log.Error("CreateDisease failed", "error", err, "cui", req.CUI)
		RespondFromError(c, err)
		return
	}
	RespondCreated(c, row)
}

func (h *TaxonomyHandler) GetDisease(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var (
		row *types.Disease
		err error
	)
	if c.Query("include") == "symptoms" {
		row, err = h.diseases.GetWithSymptoms(c.Request.Context(), nil, id)
	} else {
		row, err = h.diseases.GetByID(c.Request.Context(), nil, id)
	}
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if row == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("disease %d not found", id))
		return
	}
	RespondOK(c, row)
}

func (h *TaxonomyHandler) GetDiseaseByCUI(c *gin.Context) {
	cui := c.Param("cui")
	row, err := h.diseases.GetByCUI(c.Request.Context(), nil, cui)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if row == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("disease cui %q not found", cui))
		return
	}
	RespondOK(c, row)
}

func (h *TaxonomyHandler) ListDiseases(c *gin.Context) {
	skip, limit := parsePageQuery(c)
	total, rows, err := h.diseases.List(c.Request.Context(), nil, skip, limit)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"total": total, "items": rows})
}

func (h *TaxonomyHandler) SearchDiseases(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	rows, err := h.diseases.SearchByName(c.Request.Context(), nil, c.Query("q"), limit)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": rows})
}

type updateDiseaseRequest struct {
	Name        *string `json:"name"`
	Alias       *string `json:"alias"`
	Definition  *string `json:"definition"`
	ExternalIDs *string `json:"external_ids"`
}

func (h *TaxonomyHandler) UpdateDisease(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateDiseaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Alias != nil {
		updates["alias"] = *req.Alias
	}
	if req.Definition != nil {
		updates["definition"] = *req.Definition
	}
	if req.ExternalIDs != nil {
		updates["external_ids"] = *req.ExternalIDs
	}
	row, err := h.diseases.UpdateFields(c.Request.Context(), nil, id, updates)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if row == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("disease %d not found", id))
		return
	}
	RespondOK(c, row)
}

func (h *TaxonomyHandler) DeleteDisease(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := h.diseases.Delete(c.Request.Context(), nil, id)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if !deleted {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("disease %d not found", id))
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

type createSymptomRequest struct {
	CUI             string `json:"cui" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Alias           string `json:"alias"`
	Definition      string `json:"definition"`
	FullDescription string `json:"full_description"`
	Summary         string `json:"summary"`
	ExternalIDs     string `json:"external_ids"`
}

func (h *TaxonomyHandler) CreateSymptom(c *gin.Context) {
	var req createSymptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	row, err := h.symptoms.Create(c.Request.Context(), nil, &types.Symptom{
		CUI:             req.CUI,
		Name:            req.Name,
		Alias:           req.Alias,
		Definition:      req.Definition,
		FullDescription: req.FullDescription,
		Summary:         req.Summary,
		ExternalIDs:     req.ExternalIDs,
	})
	if err != nil {
		h.log.Error("CreateSymptom failed", "error", err, "cui", req.CUI)
		RespondFromError(c, err)
		return
	}
	RespondCreated(c, row)
}

func (h *TaxonomyHandler) GetSymptom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var (
		row *types.Symptom
		err error
	)
	if c.Query("include") == "diseases" {
		row, err = h.symptoms.GetWithDiseases(c.Request.Context(), nil, id)
	} else {
		row, err = h.symptoms.GetByID(c.Request.Context(), nil, id)
	}
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if row == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("symptom %d not found", id))
		return
	}
	RespondOK(c, row)
}

func (h *TaxonomyHandler) GetSymptomByCUI(c *gin.Context) {
	cui := c.Param("cui")
	row, err := h.symptoms.GetByCUI(c.Request.Context(), nil, cui)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if row == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("symptom cui %q not found", cui))
		return
	}
	RespondOK(c, row)
}

func (h *TaxonomyHandler) ListSymptoms(c *gin.Context) {
	skip, limit := parsePageQuery(c)
	total, rows, err := h.symptoms.List(c.Request.Context(), nil, skip, limit)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"total": total, "items": rows})
}

func (h *TaxonomyHandler) SearchSymptoms(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	rows, err := h.symptoms.SearchByName(c.Request.Context(), nil, c.Query("q"), limit)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": rows})
}

type updateSymptomRequest struct {
	Name            *string `json:"name"`
	Alias           *string `json:"alias"`
	Definition      *string `json:"definition"`
	FullDescription *string `json:"full_description"`
	Summary         *string `json:"summary"`
	ExternalIDs     *string `json:"external_ids"`
}

func (h *TaxonomyHandler) UpdateSymptom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateSymptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Alias != nil {
		updates["alias"] = *req.Alias
	}
	if req.Definition != nil {
		updates["definition"] = *req.Definition
	}
	if req.FullDescription != nil {
		updates["full_description"] = *req.FullDescription
	}
	if req.Summary != nil {
		updates["summary"] = *req.Summary
	}
	if req.ExternalIDs != nil {
		updates["external_ids"] = *req.ExternalIDs
	}
	row, err := h.symptoms.UpdateFields(c.Request.Context(), nil, id, updates)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if row == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("symptom %d not found", id))
		return
	}
	RespondOK(c, row)
}

func (h *TaxonomyHandler) DeleteSymptom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := h.symptoms.Delete(c.Request.Context(), nil, id)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if !deleted {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("symptom %d not found", id))
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

type linkSymptomRequest struct {
	SymptomID uint   `json:"symptom_id" binding:"required"`
	Source    string `json:"source"`
}

func (h *TaxonomyHandler) LinkSymptom(c *gin.Context) {
	diseaseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req linkSymptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	link, err := h.associations.Add(c.Request.Context(), nil, diseaseID, req.SymptomID, req.Source)
	if err != nil {
		h.log.Error("LinkSymptom failed", "error", err, "disease_id", diseaseID, "symptom_id", req.SymptomID)
		RespondFromError(c, err)
		return
	}
	RespondOK(c, link)
}

func (h *TaxonomyHandler) UnlinkSymptom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	removed, err := h.associations.Remove(c.Request.Context(), nil, id)
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

func (h *TaxonomyHandler) ListSymptomsForDisease(c *gin.Context) {
	diseaseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rows, err := h.associations.ListSymptomsByDisease(c.Request.Context(), nil, diseaseID)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": rows})
}

func (h *TaxonomyHandler) ListDiseasesForSymptom(c *gin.Context) {
	symptomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rows, err := h.associations.ListDiseasesBySymptom(c.Request.Context(), nil, symptomID)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": rows})
}
