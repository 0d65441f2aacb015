package httpHandler

import (
	"net/http"
	"strconv"

	"cat-server/repositories"
	"cat-server/services"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	recorder *services.AuditRecorder
	repo     repositories.AuditEventRepository
}

func NewAuditHandler(recorder *services.AuditRecorder, repo repositories.AuditEventRepository) *AuditHandler {
	return &AuditHandler{recorder: recorder, repo: repo}
}

// GetStats handles GET /api/v1/audit/stats
func (h *AuditHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.recorder.Stats()})
}

// Flush handles POST /api/v1/audit/flush
func (h *AuditHandler) Flush(c *gin.Context) {
	h.recorder.Flush()
	c.JSON(http.StatusOK, gin.H{"status": "flushed"})
}

// GetRecent handles GET /api/v1/audit?limit=n
func (h *AuditHandler) GetRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	events, err := h.repo.GetRecent(limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events, "count": len(events)})
}
