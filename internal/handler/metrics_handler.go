package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/univ-api/internal/service"
)

// Probe checks one dependency for readiness.
type Probe func(ctx context.Context) error

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	probes  map[string]Probe
}

// NewMetricsHandler constructs a metrics handler. probes are run by Ready.
func NewMetricsHandler(metrics *service.MetricsService, probes map[string]Probe) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, probes: probes}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready runs every probe concurrently and reports 503 when any fails.
func (h *MetricsHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	results := make(map[string]string, len(h.probes))
	names := make([]string, 0, len(h.probes))
	for name := range h.probes {
		names = append(names, name)
	}
	outcomes := make([]error, len(names))

	var g errgroup.Group
	for i, name := range names {
		i, probe := i, h.probes[name]
		g.Go(func() error {
			outcomes[i] = probe(ctx)
			return nil
		})
	}
	_ = g.Wait()

	failed := false
	for i, name := range names {
		if outcomes[i] != nil {
			results[name] = outcomes[i].Error()
			failed = true
			continue
		}
		results[name] = "ok"
	}

	if failed {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": results})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": results})
}
