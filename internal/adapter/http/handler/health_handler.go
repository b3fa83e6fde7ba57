package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/fraudlens/internal/usecase"
)

// KeepAliveTimeFormat is the layout of the keep-alive timestamp
const KeepAliveTimeFormat = "2006-01-02 15:04:05"

const readyTimeout = 5 * time.Second

// HealthHandler handles health check endpoints
type HealthHandler struct {
	predictionUC usecase.PredictionUsecase
	now          func() time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(predictionUC usecase.PredictionUsecase) *HealthHandler {
	return &HealthHandler{
		predictionUC: predictionUC,
		now:          time.Now,
	}
}

// HealthStatus represents the readiness response
type HealthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
	Reason     string            `json:"reason,omitempty"`
}

// KeepAliveStatus represents the keep-alive response
type KeepAliveStatus struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Health handles GET /health. It answers healthy whenever the process serves
// requests, whether or not a model is loaded.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthStatus{Status: "healthy"})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	status := h.predictionUC.Status(ctx)

	components := map[string]string{
		"model": "not loaded",
		"ai":    "not configured",
	}
	if status.ModelLoaded {
		components["model"] = "ok"
		if !status.ModelAvailable {
			components["model"] = "unavailable"
		}
		if status.ModelVersion != "" {
			components["model_version"] = status.ModelVersion
		}
	}
	if status.AIConfigured {
		components["ai"] = "configured"
	}

	if !status.ModelLoaded {
		c.JSON(http.StatusServiceUnavailable, HealthStatus{
			Status:     "not ready",
			Components: components,
			Reason:     "model not loaded",
		})
		return
	}

	if !status.ModelAvailable {
		c.JSON(http.StatusServiceUnavailable, HealthStatus{
			Status:     "not ready",
			Components: components,
			Reason:     "model backend unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, HealthStatus{
		Status:     "ready",
		Components: components,
	})
}

// KeepAlive handles GET /keep-alive
func (h *HealthHandler) KeepAlive(c *gin.Context) {
	c.JSON(http.StatusOK, KeepAliveStatus{
		Status:    "alive",
		Message:   "Server is awake",
		Timestamp: h.now().Format(KeepAliveTimeFormat),
	})
}
