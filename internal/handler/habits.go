package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"dinoverse/internal/auth"
	"dinoverse/internal/models"
	"dinoverse/internal/repository"
)

type HabitHandler struct {
	Repo repository.Repository
	Gate *auth.Gate
}

func (h *HabitHandler) Register(r *gin.Engine) {
	g := r.Group("/api/habits", requireAdmin(h.Gate))
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

type habitRequest struct {
	Name          string  `json:"name" binding:"required,max=100"`
	Description   string  `json:"description" binding:"max=2000"`
	Frequency     string  `json:"frequency" binding:"omitempty,oneof=daily weekly"`
	TargetPerWeek int     `json:"targetPerWeek" binding:"omitempty,gte=1,lte=7"`
	GoalID        *string `json:"goalId" binding:"omitempty,max=26"`
	Color         string  `json:"color" binding:"max=20"`
	Active        *bool   `json:"active"`
}

func (r habitRequest) apply(m *models.Habit) {
	m.Name = r.Name
	m.Description = r.Description
	m.Frequency = r.Frequency
	if m.Frequency == "" {
		m.Frequency = models.HabitFrequencyDaily
	}
	m.TargetPerWeek = r.TargetPerWeek
	if m.TargetPerWeek == 0 {
		m.TargetPerWeek = 7
	}
	m.GoalID = nil
	if r.GoalID != nil && strings.TrimSpace(*r.GoalID) != "" {
		id := strings.TrimSpace(*r.GoalID)
		m.GoalID = &id
	}
	m.Color = r.Color
	m.Active = r.Active == nil || *r.Active
}

// checkGoal rejects a goalId that does not resolve, writing the 400 itself.
func (h *HabitHandler) checkGoal(c *gin.Context, goalID *string) bool {
	if goalID == nil {
		return true
	}
	_, err := h.Repo.GetGoalByID(c.Request.Context(), *goalID)
	switch {
	case err == nil:
		return true
	case errors.Is(err, repository.ErrNotFound):
		validationError(c, []fieldError{{Field: "goalId", Message: "goal does not exist"}})
	default:
		fail(c, err, "goal")
	}
	return false
}

// @Summary List habits
// @Tags life
// @Param active query bool false "active filter"
// @Param goalId query string false "goal id"
// @Success 200 {object} apiResponse
// @Router /api/habits [get]
func (h *HabitHandler) list(c *gin.Context) {
	p := pageQuery(c)
	params := repository.ListHabitsParams{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset, OrderBy: "created_at", Asc: boolPtr(true)},
		Active:     boolQueryPtr(c, "active"),
		GoalID:     strQueryPtr(c, "goalId"),
	}
	items, err := h.Repo.ListHabits(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "habit")
		return
	}
	total, err := h.Repo.CountHabits(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "habit")
		return
	}
	Ok(c, items, paginationMeta(p, total))
}

func (h *HabitHandler) get(c *gin.Context) {
	item, err := h.Repo.GetHabitByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "habit")
		return
	}
	Ok(c, item, nil)
}

// @Summary Create habit
// @Description Linking a goal also appends the habit to the goal's habitIds.
// @Tags life
// @Accept json
// @Param body body habitRequest true "habit"
// @Success 201 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/habits [post]
func (h *HabitHandler) create(c *gin.Context) {
	var req habitRequest
	if !bindJSON(c, &req) {
		return
	}
	var item models.Habit
	req.apply(&item)
	if !h.checkGoal(c, item.GoalID) {
		return
	}
	if err := h.Repo.CreateHabit(c.Request.Context(), &item); err != nil {
		fail(c, err, "habit")
		return
	}
	Created(c, item)
}

func (h *HabitHandler) update(c *gin.Context) {
	var req habitRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Repo.GetHabitByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "habit")
		return
	}
	req.apply(item)
	if !h.checkGoal(c, item.GoalID) {
		return
	}
	if err := h.Repo.UpdateHabit(c.Request.Context(), item); err != nil {
		fail(c, err, "habit")
		return
	}
	Ok(c, item, nil)
}

func (h *HabitHandler) delete(c *gin.Context) {
	if err := h.Repo.DeleteHabit(c.Request.Context(), idParam(c)); err != nil {
		fail(c, err, "habit")
		return
	}
	Ok(c, gin.H{"id": idParam(c)}, nil)
}
