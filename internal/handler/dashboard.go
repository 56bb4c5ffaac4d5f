package handler

import (
	"github.com/gin-gonic/gin"

	"dinoverse/internal/auth"
	"dinoverse/internal/service"
)

type DashboardHandler struct {
	Metrics *service.MetricsService
	Gate    *auth.Gate
}

func (h *DashboardHandler) Register(r *gin.Engine) {
	r.GET("/api/dashboard", requireAdmin(h.Gate), h.dashboard)
}

// @Summary Life-OS dashboard
// @Description All-time trading stats, last seven days of habits, current month finances, active goals and a random quote.
// @Tags life
// @Success 200 {object} apiResponse{data=service.Dashboard}
// @Failure 401 {object} apiResponse
// @Router /api/dashboard [get]
func (h *DashboardHandler) dashboard(c *gin.Context) {
	out, err := h.Metrics.Dashboard(c.Request.Context())
	if err != nil {
		fail(c, err, "dashboard")
		return
	}
	Ok(c, out, nil)
}
