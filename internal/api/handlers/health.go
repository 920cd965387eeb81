// Package handlers provides HTTP handlers for the stub answering API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pfcsearch/widget-runtime/internal/api/dto"
	"github.com/pfcsearch/widget-runtime/internal/core/storage"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	store storage.Store
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store storage.Store) *HealthHandler {
	return &HealthHandler{
		store: store,
	}
}

// Health handles the /health endpoint.
func (h *HealthHandler) Health(c *gin.Context) {
	components := make(map[string]string)
	healthy := true

	if _, _, err := h.store.Get(c.Request.Context(), "health:probe"); err != nil {
		components["storage"] = "unhealthy"
		healthy = false
	} else {
		components["storage"] = "healthy"
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, dto.HealthResponse{
		Status:     status,
		Components: components,
	})
}

// Ready handles the /ready endpoint.
func (h *HealthHandler) Ready(c *gin.Context) {
	if _, _, err := h.store.Get(c.Request.Context(), "health:probe"); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "storage unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// Live handles the /live endpoint.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
