package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"dinoverse/internal/auth"
	"dinoverse/internal/models"
	"dinoverse/internal/repository"
	"dinoverse/internal/service"
)

type ReflectionHandler struct {
	Repo    repository.Repository
	Metrics *service.MetricsService
	Gate    *auth.Gate
}

func (h *ReflectionHandler) Register(r *gin.Engine) {
	g := r.Group("/api/reflections", requireAdmin(h.Gate))
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

type reflectionRequest struct {
	Date         *dateValue `json:"date" binding:"required"`
	Period       string     `json:"period" binding:"omitempty,oneof=daily weekly monthly"`
	Mood         *int       `json:"mood" binding:"omitempty,gte=1,lte=10"`
	Wins         string     `json:"wins" binding:"max=5000"`
	Lessons      string     `json:"lessons" binding:"max=5000"`
	Improvements string     `json:"improvements" binding:"max=5000"`
	Content      string     `json:"content" binding:"max=20000"`
}

func (r reflectionRequest) apply(m *models.Reflection, loc *time.Location) {
	m.Date = r.Date.At(loc)
	m.Period = r.Period
	if m.Period == "" {
		m.Period = "daily"
	}
	m.Mood = r.Mood
	m.Wins = r.Wins
	m.Lessons = r.Lessons
	m.Improvements = r.Improvements
	m.Content = r.Content
}

// @Summary List reflections
// @Tags life
// @Param period query string false "daily|weekly|monthly"
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD (inclusive)"
// @Success 200 {object} apiResponse
// @Router /api/reflections [get]
func (h *ReflectionHandler) list(c *gin.Context) {
	from, to, ok := rangeQuery(c, metricsLocation(h.Metrics))
	if !ok {
		return
	}
	p := pageQuery(c)
	params := repository.ListReflectionsParams{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset, OrderBy: "date", Asc: boolPtr(false)},
		Period:     strQueryPtr(c, "period"),
		From:       from,
		To:         to,
	}
	items, err := h.Repo.ListReflections(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "reflection")
		return
	}
	total, err := h.Repo.CountReflections(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "reflection")
		return
	}
	Ok(c, items, paginationMeta(p, total))
}

func (h *ReflectionHandler) get(c *gin.Context) {
	item, err := h.Repo.GetReflectionByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "reflection")
		return
	}
	Ok(c, item, nil)
}

func (h *ReflectionHandler) create(c *gin.Context) {
	var req reflectionRequest
	if !bindJSON(c, &req) {
		return
	}
	var item models.Reflection
	req.apply(&item, metricsLocation(h.Metrics))
	if err := h.Repo.CreateReflection(c.Request.Context(), &item); err != nil {
		fail(c, err, "reflection")
		return
	}
	Created(c, item)
}

func (h *ReflectionHandler) update(c *gin.Context) {
	var req reflectionRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Repo.GetReflectionByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "reflection")
		return
	}
	req.apply(item, metricsLocation(h.Metrics))
	if err := h.Repo.UpdateReflection(c.Request.Context(), item); err != nil {
		fail(c, err, "reflection")
		return
	}
	Ok(c, item, nil)
}

func (h *ReflectionHandler) delete(c *gin.Context) {
	if err := h.Repo.DeleteReflection(c.Request.Context(), idParam(c)); err != nil {
		fail(c, err, "reflection")
		return
	}
	Ok(c, gin.H{"id": idParam(c)}, nil)
}
