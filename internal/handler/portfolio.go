package handler

import (
	"github.com/gin-gonic/gin"

	"dinoverse/internal/auth"
	"dinoverse/internal/models"
	"dinoverse/internal/repository"
)

type PortfolioHandler struct {
	Repo repository.Repository
	Gate *auth.Gate
}

func (h *PortfolioHandler) Register(r *gin.Engine) {
	g := r.Group("/api/portfolio")
	g.GET("", h.list)
	g.GET("/:slug", h.get)
	g.POST("", requireAdmin(h.Gate), h.create)
	g.PUT("/:id", requireAdmin(h.Gate), h.update)
	g.DELETE("/:id", requireAdmin(h.Gate), h.delete)

	admin := r.Group("/api/admin/portfolio", requireAdmin(h.Gate))
	admin.GET("", h.list)
	admin.GET("/:id", h.adminGet)
}

type portfolioItemRequest struct {
	Title        string   `json:"title" binding:"required,max=200"`
	Slug         string   `json:"slug" binding:"required,slug,max=200"`
	Description  string   `json:"description" binding:"max=5000"`
	Category     string   `json:"category" binding:"max=100"`
	Client       string   `json:"client" binding:"max=200"`
	ImageURL     string   `json:"imageUrl" binding:"omitempty,url"`
	Gallery      []string `json:"gallery" binding:"omitempty,max=30,dive,url"`
	Technologies []string `json:"technologies" binding:"omitempty,max=30,dive,max=50"`
	ProjectURL   string   `json:"projectUrl" binding:"omitempty,url"`
	Featured     bool     `json:"featured"`
	Order        int      `json:"order" binding:"gte=0"`
}

func (r portfolioItemRequest) apply(m *models.PortfolioItem) {
	m.Title = r.Title
	m.Slug = r.Slug
	m.Description = r.Description
	m.Category = r.Category
	m.Client = r.Client
	m.ImageURL = r.ImageURL
	m.Gallery = r.Gallery
	m.Technologies = r.Technologies
	m.ProjectURL = r.ProjectURL
	m.Featured = r.Featured
	m.Order = r.Order
}

// @Summary List portfolio items
// @Tags portfolio
// @Param q query string false "search title, description and client"
// @Param category query string false "category"
// @Param featured query bool false "featured only"
// @Success 200 {object} apiResponse
// @Router /api/portfolio [get]
func (h *PortfolioHandler) list(c *gin.Context) {
	p := pageQuery(c)
	params := repository.ListPortfolioItemsParams{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset, OrderBy: "sort_order", Asc: boolPtr(true)},
		Query:      strQueryPtr(c, "q"),
		Category:   strQueryPtr(c, "category"),
		Featured:   boolQueryPtr(c, "featured"),
	}
	items, err := h.Repo.ListPortfolioItems(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "portfolio item")
		return
	}
	total, err := h.Repo.CountPortfolioItems(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "portfolio item")
		return
	}
	Ok(c, items, paginationMeta(p, total))
}

// @Summary Get portfolio item
// @Tags portfolio
// @Param slug path string true "slug"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/portfolio/{slug} [get]
func (h *PortfolioHandler) get(c *gin.Context) {
	item, err := h.Repo.GetPortfolioItemBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err, "portfolio item")
		return
	}
	Ok(c, item, nil)
}

func (h *PortfolioHandler) adminGet(c *gin.Context) {
	item, err := h.Repo.GetPortfolioItemByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "portfolio item")
		return
	}
	Ok(c, item, nil)
}

func (h *PortfolioHandler) create(c *gin.Context) {
	var req portfolioItemRequest
	if !bindJSON(c, &req) {
		return
	}
	var item models.PortfolioItem
	req.apply(&item)
	if err := h.Repo.CreatePortfolioItem(c.Request.Context(), &item); err != nil {
		fail(c, err, "portfolio item")
		return
	}
	Created(c, item)
}

func (h *PortfolioHandler) update(c *gin.Context) {
	var req portfolioItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Repo.GetPortfolioItemByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "portfolio item")
		return
	}
	req.apply(item)
	if err := h.Repo.UpdatePortfolioItem(c.Request.Context(), item); err != nil {
		fail(c, err, "portfolio item")
		return
	}
	Ok(c, item, nil)
}

func (h *PortfolioHandler) delete(c *gin.Context) {
	if err := h.Repo.DeletePortfolioItem(c.Request.Context(), idParam(c)); err != nil {
		fail(c, err, "portfolio item")
		return
	}
	Ok(c, gin.H{"id": idParam(c)}, nil)
}
