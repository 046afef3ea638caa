package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/medibridge/medibridge-backend/internal/data/repos"
	types "github.com/medibridge/medibridge-backend/internal/domain"
	"github.com/medibridge/medibridge-backend/internal/pkg/logger"
)

type ConsultHandler struct {
	log           *logger.Logger
	conversations repos.ConversationRepo
	messages      repos.MessageRepo
}

func NewConsultHandler(
	log *logger.Logger,
	conversations repos.ConversationRepo,
	messages repos.MessageRepo,
) *ConsultHandler {
	return &ConsultHandler{
		log:           log.With("handler", "ConsultHandler"),
		conversations: conversations,
		messages:      messages,
	}
}

type createConversationRequest struct {
	Title      string          `json:"title" binding:"required"`
	Department string          `json:"department"`
	UserID     *int64          `json:"user_id"`
	PatientID  *int64          `json:"patient_id"`
	StartedAt  *time.Time      `json:"started_at"`
	Progress   json.RawMessage `json:"progress"`
}

func (h *ConsultHandler) CreateConversation(c *gin.Context) {
	var req createConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	row := &types.Conversation{
		Title:      req.Title,
		Department: req.Department,
		UserID:     req.UserID,
		PatientID:  req.PatientID,
	}
	if req.StartedAt != nil {
		row.StartedAt = *req.StartedAt
	}
	if len(req.Progress) > 0 {
		row.Progress = datatypes.JSON(req.Progress)
	}
	created, err := h.conversations.Create(c.Request.Context(), nil, row)
	if err != nil {
		h.log.Error("CreateConversation failed", "error", err)
		RespondFromError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (h *ConsultHandler) GetConversation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var (
		row *types.Conversation
		err error
	)
	if c.Query("include") == "messages" {
		row, err = h.conversations.GetWithMessages(c.Request.Context(), nil, id)
	} else {
		row, err = h.conversations.GetByID(c.Request.Context(), nil, id)
	}
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if row == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("conversation %d not found", id))
		return
	}
	RespondOK(c, row)
}

func (h *ConsultHandler) ListConversations(c *gin.Context) {
	skip, limit := parsePageQuery(c)
	total, rows, err := h.conversations.List(c.Request.Context(), nil, skip, limit)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"total": total, "items": rows})
}

type updateConversationRequest struct {
	Title      *string         `json:"title"`
	Department *string         `json:"department"`
	Progress   json.RawMessage `json:"progress"`
}

func (h *ConsultHandler) UpdateConversation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if len(req.Progress) > 0 {
		updates["progress"] = datatypes.JSON(req.Progress)
	}
	row, err := h.conversations.UpdateFields(c.Request.Context(), nil, id, updates)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if row == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("conversation %d not found", id))
		return
	}
	RespondOK(c, row)
}

func (h *ConsultHandler) DeleteConversation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := h.conversations.Delete(c.Request.Context(), nil, id)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if !deleted {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("conversation %d not found", id))
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

type createMessageRequest struct {
	Content string     `json:"content" binding:"required"`
	Role    string     `json:"role" binding:"required"`
	SentAt  *time.Time `json:"sent_at"`
}

func (h *ConsultHandler) CreateMessage(c *gin.Context) {
	conversationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	row := &types.Message{
		ConversationID: conversationID,
		Content:        req.Content,
		Role:           req.Role,
	}
	if req.SentAt != nil {
		row.SentAt = *req.SentAt
	}
	created, err := h.messages.Create(c.Request.Context(), nil, row)
	if err != nil {
		h.log.Error("CreateMessage failed", "error", err, "conversation_id", conversationID)
		RespondFromError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (h *ConsultHandler) ListMessages(c *gin.Context) {
	conversationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	skip, limit := parsePageQuery(c)
	total, rows, err := h.messages.ListByConversation(c.Request.Context(), nil, conversationID, skip, limit)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondOK(c, gin.H{"total": total, "items": rows})
}

type updateMessageRequest struct {
	Content *string `json:"content"`
	Role    *string `json:"role"`
}

func (h *ConsultHandler) UpdateMessage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updates := map[string]interface{}{}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	row, err := h.messages.UpdateFields(c.Request.Context(), nil, id, updates)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if row == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("message %d not found", id))
		return
	}
	RespondOK(c, row)
}

func (h *ConsultHandler) DeleteMessage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := h.messages.Delete(c.Request.Context(), nil, id)
	if err != nil {
		RespondFromError(c, err)
		return
	}
	if !deleted {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("message %d not found", id))
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
