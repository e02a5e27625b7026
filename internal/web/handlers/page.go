package handlers

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/Conceptual-Machines/gourmet-api/internal/config"
	"github.com/Conceptual-Machines/gourmet-api/internal/logger"
	"github.com/Conceptual-Machines/gourmet-api/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

const pageTitle = "Gourmet Search"

// RequestContext is what a page load receives from the router.
type RequestContext struct {
	URL    *url.URL
	Route  string
	Params map[string]string
}

// NewRequestContext builds a RequestContext from a gin request.
func NewRequestContext(c *gin.Context) RequestContext {
	params := make(map[string]string, len(c.Params))
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}
	return RequestContext{
		URL:    c.Request.URL,
		Route:  c.FullPath(),
		Params: params,
	}
}

// PageData is handed to the front end on every page load.
type PageData struct {
	Mode     string `json:"mode"`
	APIKey   string `json:"api_key"`
	ProxyURL string `json:"proxy_url"`
}

type PageHandler struct {
	cfg *config.Config
}

func NewPageHandler(cfg *config.Config) *PageHandler {
	return &PageHandler{cfg: cfg}
}

// Load returns the page configuration. The request context is accepted for
// parity with other loaders but does not influence the result.
func (h *PageHandler) Load(_ RequestContext) PageData {
	return PageData{
		Mode:     h.cfg.Environment.String(),
		APIKey:   h.cfg.HotpepperGourmetAPIKey,
		ProxyURL: h.cfg.DevCORSProxyURL,
	}
}

// Data serves the page configuration as JSON
func (h *PageHandler) Data(c *gin.Context) {
	c.JSON(http.StatusOK, h.Load(NewRequestContext(c)))
}

// Page renders the HTML shell with the page configuration embedded.
// Nothing is written until rendering has succeeded.
func (h *PageHandler) Page(c *gin.Context) {
	h.render(c, templates.Page(pageTitle, h.Load(NewRequestContext(c))))
}

func (h *PageHandler) render(c *gin.Context, component templ.Component) {
	var buf bytes.Buffer
	if err := component.Render(c.Request.Context(), &buf); err != nil {
		logger.Error("Failed to render page", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render template"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
