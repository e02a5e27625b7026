package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/Conceptual-Machines/gourmet-api/internal/config"
	"github.com/gin-gonic/gin"
)

const bytesToMB = 1024 * 1024

// MetricsHandler reports process stats alongside which pieces of
// configuration the service is exposing.
type MetricsHandler struct {
	cfg       *config.Config
	startTime time.Time
	version   string
}

func NewMetricsHandler(cfg *config.Config, version string) *MetricsHandler {
	return &MetricsHandler{
		cfg:       cfg,
		startTime: time.Now(),
		version:   version,
	}
}

type MetricsResponse struct {
	Version   string         `json:"version"`
	Uptime    string         `json:"uptime"`
	StartTime string         `json:"start_time"`
	Exposure  ExposureStatus `json:"exposure"`
	Runtime   RuntimeStats   `json:"runtime"`
}

// ExposureStatus describes what the key and page data endpoints hand out.
type ExposureStatus struct {
	Mode              string   `json:"mode"`
	APIKeyConfigured  bool     `json:"api_key_configured"`
	ProxyConfigured   bool     `json:"proxy_configured"`
	AllowedOrigins    []string `json:"allowed_origins"`
	CloudWatchEnabled bool     `json:"cloudwatch_enabled"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
	NumGC        uint32 `json:"num_gc"`
}

// formatUptime rounds to whole seconds, e.g. "1h2m3s".
func formatUptime(d time.Duration) string {
	return d.Round(time.Second).String()
}

func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, MetricsResponse{
		Version:   h.version,
		Uptime:    formatUptime(time.Since(h.startTime)),
		StartTime: h.startTime.UTC().Format(time.RFC3339),
		Exposure: ExposureStatus{
			Mode:              h.cfg.Environment.String(),
			APIKeyConfigured:  h.cfg.APIKeyConfigured(),
			ProxyConfigured:   h.cfg.ProxyConfigured(),
			AllowedOrigins:    h.cfg.AllowedOrigins,
			CloudWatchEnabled: h.cfg.CloudWatchEnabled,
		},
		Runtime: RuntimeStats{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAllocMB:   m.Alloc / bytesToMB,
			NumGC:        m.NumGC,
		},
	})
}
