package handler

import (
	"github.com/gin-gonic/gin"

	"dinoverse/internal/auth"
	"dinoverse/internal/models"
	"dinoverse/internal/repository"
)

type GoalHandler struct {
	Repo repository.Repository
	Gate *auth.Gate
}

func (h *GoalHandler) Register(r *gin.Engine) {
	g := r.Group("/api/goals", requireAdmin(h.Gate))
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

type goalRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"max=5000"`
	Category    string     `json:"category" binding:"omitempty,oneof=health finance career personal learning relationships"`
	TargetDate  *dateValue `json:"targetDate"`
	Progress    int        `json:"progress" binding:"gte=0,lte=100"`
	Status      string     `json:"status" binding:"omitempty,oneof=active completed paused abandoned"`
}

func (r goalRequest) apply(m *models.Goal) {
	m.Title = r.Title
	m.Description = r.Description
	m.Category = r.Category
	m.TargetDate = timePtr(r.TargetDate)
	m.Progress = r.Progress
	m.Status = r.Status
	if m.Status == "" {
		m.Status = models.GoalStatusActive
	}
}

// @Summary List goals
// @Tags life
// @Param q query string false "search title and description"
// @Param status query string false "status"
// @Param category query string false "category"
// @Success 200 {object} apiResponse
// @Router /api/goals [get]
func (h *GoalHandler) list(c *gin.Context) {
	p := pageQuery(c)
	params := repository.ListGoalsParams{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset, OrderBy: "created_at", Asc: boolPtr(false)},
		Query:      strQueryPtr(c, "q"),
		Status:     strQueryPtr(c, "status"),
		Category:   strQueryPtr(c, "category"),
	}
	items, err := h.Repo.ListGoals(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "goal")
		return
	}
	total, err := h.Repo.CountGoals(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "goal")
		return
	}
	Ok(c, items, paginationMeta(p, total))
}

func (h *GoalHandler) get(c *gin.Context) {
	item, err := h.Repo.GetGoalByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "goal")
		return
	}
	Ok(c, item, nil)
}

func (h *GoalHandler) create(c *gin.Context) {
	var req goalRequest
	if !bindJSON(c, &req) {
		return
	}
	var item models.Goal
	req.apply(&item)
	if err := h.Repo.CreateGoal(c.Request.Context(), &item); err != nil {
		fail(c, err, "goal")
		return
	}
	Created(c, item)
}

func (h *GoalHandler) update(c *gin.Context) {
	var req goalRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Repo.GetGoalByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "goal")
		return
	}
	req.apply(item)
	if err := h.Repo.UpdateGoal(c.Request.Context(), item); err != nil {
		fail(c, err, "goal")
		return
	}
	Ok(c, item, nil)
}

// delete detaches the goal's habits; the habits themselves survive.
func (h *GoalHandler) delete(c *gin.Context) {
	if err := h.Repo.DeleteGoal(c.Request.Context(), idParam(c)); err != nil {
		fail(c, err, "goal")
		return
	}
	Ok(c, gin.H{"id": idParam(c)}, nil)
}
