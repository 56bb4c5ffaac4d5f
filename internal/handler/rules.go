package handler

import (
	"github.com/gin-gonic/gin"

	"dinoverse/internal/auth"
	"dinoverse/internal/models"
	"dinoverse/internal/repository"
)

type RuleHandler struct {
	Repo repository.Repository
	Gate *auth.Gate
}

func (h *RuleHandler) Register(r *gin.Engine) {
	g := r.Group("/api/rules", requireAdmin(h.Gate))
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

type ruleRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Category    string `json:"category" binding:"omitempty,oneof=trading life health finance"`
	Active      *bool  `json:"active"`
	Order       int    `json:"order" binding:"gte=0"`
}

func (r ruleRequest) apply(m *models.Rule) {
	m.Title = r.Title
	m.Description = r.Description
	m.Category = r.Category
	m.Active = r.Active == nil || *r.Active
	m.Order = r.Order
}

// @Summary List personal rules
// @Tags life
// @Param category query string false "trading|life|health|finance"
// @Param active query bool false "active filter"
// @Success 200 {object} apiResponse
// @Router /api/rules [get]
func (h *RuleHandler) list(c *gin.Context) {
	p := pageQuery(c)
	params := repository.ListRulesParams{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset, OrderBy: "sort_order", Asc: boolPtr(true)},
		Category:   strQueryPtr(c, "category"),
		Active:     boolQueryPtr(c, "active"),
	}
	items, err := h.Repo.ListRules(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "rule")
		return
	}
	total, err := h.Repo.CountRules(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "rule")
		return
	}
	Ok(c, items, paginationMeta(p, total))
}

func (h *RuleHandler) get(c *gin.Context) {
	item, err := h.Repo.GetRuleByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "rule")
		return
	}
	Ok(c, item, nil)
}

func (h *RuleHandler) create(c *gin.Context) {
	var req ruleRequest
	if !bindJSON(c, &req) {
		return
	}
	var item models.Rule
	req.apply(&item)
	if err := h.Repo.CreateRule(c.Request.Context(), &item); err != nil {
		fail(c, err, "rule")
		return
	}
	Created(c, item)
}

func (h *RuleHandler) update(c *gin.Context) {
	var req ruleRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Repo.GetRuleByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "rule")
		return
	}
	req.apply(item)
	if err := h.Repo.UpdateRule(c.Request.Context(), item); err != nil {
		fail(c, err, "rule")
		return
	}
	Ok(c, item, nil)
}

func (h *RuleHandler) delete(c *gin.Context) {
	if err := h.Repo.DeleteRule(c.Request.Context(), idParam(c)); err != nil {
		fail(c, err, "rule")
		return
	}
	Ok(c, gin.H{"id": idParam(c)}, nil)
}
