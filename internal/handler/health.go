package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dinoverse/internal/cache"
	"dinoverse/internal/db"
)

// HealthHandler serves liveness and readiness. Readiness covers the database
// and, when it has a connection, the section cache.
type HealthHandler struct {
	DB    *db.DB
	Cache cache.Store
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.live)
	r.GET("/readyz", h.ready)
}

// @Summary Liveness
// @Tags health
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *HealthHandler) live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Readiness
// @Tags health
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router /readyz [get]
func (h *HealthHandler) ready(c *gin.Context) {
	ctx := c.Request.Context()
	checks := gin.H{"db": "ok", "cache": "ok"}
	status := http.StatusOK

	switch {
	case h.DB == nil || h.DB.SQL == nil:
		checks["db"] = "missing"
		status = http.StatusServiceUnavailable
	default:
		if err := h.DB.SQL.PingContext(ctx); err != nil {
			checks["db"] = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}
	if err := cache.Ping(ctx, h.Cache); err != nil {
		checks["cache"] = "unreachable"
		status = http.StatusServiceUnavailable
	}

	label := "ready"
	if status != http.StatusOK {
		label = "degraded"
	}
	c.JSON(status, gin.H{"status": label, "checks": checks})
}
