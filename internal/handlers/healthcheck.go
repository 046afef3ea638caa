package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medibridge/medibridge-backend/internal/data/db"
)

type HealthHandler struct {
	sqlite *db.SQLiteService
}

func NewHealthHandler(sqlite *db.SQLiteService) *HealthHandler {
	return &HealthHandler{sqlite: sqlite}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if !h.sqlite.HealthCheck(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": true})
}
