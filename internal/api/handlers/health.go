package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/gourmet-api/internal/config"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// HealthCheck returns the health status of the API.
// It reports whether values are configured, never the values themselves.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":             "healthy",
		"mode":               h.cfg.Environment.String(),
		"api_key_configured": h.cfg.APIKeyConfigured(),
		"proxy_configured":   h.cfg.ProxyConfigured(),
	})
}
