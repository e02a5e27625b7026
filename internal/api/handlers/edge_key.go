package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/gourmet-api/internal/config"
	"github.com/gin-gonic/gin"
)

// EdgeKeyHandler answers every request with the configured HotPepper Gourmet API key.
type EdgeKeyHandler struct {
	cfg *config.Config
}

func NewEdgeKeyHandler(cfg *config.Config) *EdgeKeyHandler {
	return &EdgeKeyHandler{cfg: cfg}
}

// Respond writes the raw key as a plain text body.
// Method, path, headers and body of the request are not inspected. An unset key
// yields an empty 200 response.
func (h *EdgeKeyHandler) Respond(c *gin.Context) {
	c.String(http.StatusOK, "%s", h.cfg.HotpepperGourmetAPIKey)
}
