package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dinoverse/internal/auth"
	"dinoverse/internal/config"
	"dinoverse/internal/service"
)

// requireAdmin falls back to a gate with no secret, which rejects everything.
func requireAdmin(g *auth.Gate) gin.HandlerFunc {
	if g == nil {
		g = auth.New(config.AuthConfig{})
	}
	return g.RequireAdmin()
}

func idParam(c *gin.Context) string {
	return strings.TrimSpace(c.Param("id"))
}

// sortParam maps a public sort key onto a column and direction.
func sortParam(value string, allow map[string]sortSpec) (sortSpec, bool) {
	key := strings.TrimSpace(strings.ToLower(value))
	if key == "" {
		return sortSpec{}, false
	}
	spec, ok := allow[key]
	return spec, ok
}

type sortSpec struct {
	Column string
	Asc    bool
}

// metricsLocation is the zone date-only query bounds are read in.
func metricsLocation(m *service.MetricsService) *time.Location {
	if m != nil && m.Location != nil {
		return m.Location
	}
	return time.UTC
}
