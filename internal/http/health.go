package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check is a dependency probed alongside the database, e.g. the task queue.
type Check struct {
	Name   string
	Pinger Pinger
}

type HealthController struct {
	db      Pinger
	extra   []Check
	version string
}

// NewHealthController reports unhealthy when db is nil or any check fails.
func NewHealthController(db Pinger, version string, extra ...Check) *HealthController {
	return &HealthController{
		db:      db,
		extra:   extra,
		version: version,
	}
}

func probe(ctx context.Context, p Pinger) string {
	if err := p.Ping(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

// Status handles GET /health
func (h *HealthController) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.extra)+1)
	if h.db == nil {
		checks["database"] = "not configured"
	} else {
		checks["database"] = probe(ctx, h.db)
	}
	for _, check := range h.extra {
		checks[check.Name] = probe(ctx, check.Pinger)
	}

	status, code := "healthy", http.StatusOK
	for _, result := range checks {
		if result != "ok" {
			status, code = "unhealthy", http.StatusServiceUnavailable
			break
		}
	}

	c.IndentedJSON(code, HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	})
}
