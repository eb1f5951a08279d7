package handler

import (
	"net/http"
	"time"

	"github.com/arledger/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler handles health and liveness endpoints
type SystemHandler struct {
	db        Pinger
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// Health reports service and database health. A failed database ping
// makes the endpoint answer 503.
func (h *SystemHandler) Health(c *gin.Context) {
	uptime := int64(time.Since(h.startTime).Seconds())

	if err := h.db.Ping(); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":         "unhealthy",
			"time":           time.Now().Format(time.RFC3339),
			"database":       "error",
			"uptime_seconds": uptime,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"time":           time.Now().Format(time.RFC3339),
		"database":       "ok",
		"uptime_seconds": uptime,
	})
}
