package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"dinoverse/internal/auth"
	"dinoverse/internal/models"
	"dinoverse/internal/repository"
	"dinoverse/internal/service"
)

type HabitLogHandler struct {
	Repo    repository.Repository
	Metrics *service.MetricsService
	Gate    *auth.Gate
}

func (h *HabitLogHandler) Register(r *gin.Engine) {
	g := r.Group("/api/habit-logs", requireAdmin(h.Gate))
	g.GET("", h.list)
	g.GET("/summary", h.summary)
	g.GET("/:id", h.get)
	g.POST("", h.upsert)
	g.DELETE("/:id", h.delete)
}

type habitLogRequest struct {
	HabitID string     `json:"habitId" binding:"required,max=26"`
	Date    *dateValue `json:"date" binding:"required"`
	Status  string     `json:"status" binding:"omitempty,oneof=done skipped missed"`
	Note    string     `json:"note" binding:"max=1000"`
}

func (r habitLogRequest) apply(m *models.HabitLog) {
	m.HabitID = r.HabitID
	m.Date = r.Date.Day()
	m.Status = r.Status
	if m.Status == "" {
		m.Status = models.HabitLogDone
	}
	m.Note = r.Note
}

// Log dates are stored as calendar days, so date-only bounds are read in UTC.
func (h *HabitLogHandler) listParams(c *gin.Context) (repository.ListHabitLogsParams, bool) {
	from, to, ok := rangeQuery(c, time.UTC)
	if !ok {
		return repository.ListHabitLogsParams{}, false
	}
	return repository.ListHabitLogsParams{
		HabitID: strQueryPtr(c, "habitId"),
		From:    from,
		To:      to,
	}, true
}

// @Summary List habit logs
// @Tags life
// @Param habitId query string false "habit id"
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD (inclusive)"
// @Success 200 {object} apiResponse
// @Router /api/habit-logs [get]
func (h *HabitLogHandler) list(c *gin.Context) {
	params, ok := h.listParams(c)
	if !ok {
		return
	}
	p := pageQuery(c)
	params.ListParams = repository.ListParams{Limit: p.Limit, Offset: p.Offset, OrderBy: "date", Asc: boolPtr(false)}
	items, err := h.Repo.ListHabitLogs(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "habit log")
		return
	}
	total, err := h.Repo.CountHabitLogs(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "habit log")
		return
	}
	Ok(c, items, paginationMeta(p, total))
}

// @Summary Habit consistency summary
// @Description Defaults to the last seven days including today.
// @Tags life
// @Param habitId query string false "habit id"
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD (inclusive)"
// @Success 200 {object} apiResponse
// @Router /api/habit-logs/summary [get]
func (h *HabitLogHandler) summary(c *gin.Context) {
	params, ok := h.listParams(c)
	if !ok {
		return
	}
	out, err := h.Metrics.HabitSummary(c.Request.Context(), params.HabitID, params.From, params.To)
	if err != nil {
		fail(c, err, "habit log")
		return
	}
	Ok(c, out, nil)
}

func (h *HabitLogHandler) get(c *gin.Context) {
	item, err := h.Repo.GetHabitLogByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "habit log")
		return
	}
	Ok(c, item, nil)
}

// @Summary Record a habit log
// @Description One log per habit and day; posting again replaces status and note.
// @Tags life
// @Accept json
// @Param body body habitLogRequest true "log"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/habit-logs [post]
func (h *HabitLogHandler) upsert(c *gin.Context) {
	var req habitLogRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.Repo.GetHabitByID(c.Request.Context(), req.HabitID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			validationError(c, []fieldError{{Field: "habitId", Message: "habit does not exist"}})
			return
		}
		fail(c, err, "habit")
		return
	}
	var item models.HabitLog
	req.apply(&item)
	if err := h.Repo.UpsertHabitLog(c.Request.Context(), &item); err != nil {
		fail(c, err, "habit log")
		return
	}
	Ok(c, item, nil)
}

func (h *HabitLogHandler) delete(c *gin.Context) {
	if err := h.Repo.DeleteHabitLog(c.Request.Context(), idParam(c)); err != nil {
		fail(c, err, "habit log")
		return
	}
	Ok(c, gin.H{"id": idParam(c)}, nil)
}
