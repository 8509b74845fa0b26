package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/protolab/prototype-portal/internal/datamode"
	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/store"
)

type HealthResponse struct {
	Status     string          `json:"status"`
	Timestamp  time.Time       `json:"timestamp"`
	Service    string          `json:"service"`
	Version    string          `json:"version"`
	Store      string          `json:"store"`
	DataMode   domain.DataMode `json:"dataMode"`
	Generation string          `json:"generation"`
}

type HealthHandler struct {
	serviceName string
	version     string
	exec        store.Executor
	mode        *datamode.State
	generation  string
}

// NewHealthHandler reports the real store as disabled when exec is
// unavailable, otherwise probes it on every check.
func NewHealthHandler(serviceName, version string, exec store.Executor, mode *datamode.State, generation string) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		exec:        exec,
		mode:        mode,
		generation:  generation,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	storeStatus := "disabled"
	if h.exec != nil && h.exec.Available() {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := store.Probe(pingCtx, h.exec); err != nil {
			storeStatus = "down"
		} else {
			storeStatus = "up"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:     "healthy",
		Timestamp:  time.Now().UTC(),
		Service:    h.serviceName,
		Version:    h.version,
		Store:      storeStatus,
		DataMode:   h.mode.Mode(),
		Generation: h.generation,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
