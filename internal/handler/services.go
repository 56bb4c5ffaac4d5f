package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"dinoverse/internal/auth"
	"dinoverse/internal/models"
	"dinoverse/internal/repository"
)

type ServiceHandler struct {
	Repo repository.Repository
	Gate *auth.Gate
}

func (h *ServiceHandler) Register(r *gin.Engine) {
	g := r.Group("/api/services")
	g.GET("", h.list)
	g.GET("/:slug", h.get)
	g.POST("", requireAdmin(h.Gate), h.create)
	g.PUT("/:id", requireAdmin(h.Gate), h.update)
	g.DELETE("/:id", requireAdmin(h.Gate), h.delete)

	admin := r.Group("/api/admin/services", requireAdmin(h.Gate))
	admin.GET("", h.adminList)
	admin.GET("/:id", h.adminGet)
}

type serviceRequest struct {
	Title            string           `json:"title" binding:"required,max=200"`
	Slug             string           `json:"slug" binding:"required,slug,max=200"`
	ShortDescription string           `json:"shortDescription" binding:"max=500"`
	Description      string           `json:"description" binding:"max=10000"`
	Icon             string           `json:"icon" binding:"max=100"`
	Features         []string         `json:"features" binding:"omitempty,max=30,dive,max=200"`
	PriceFrom        *decimal.Decimal `json:"priceFrom" binding:"omitempty,gte=0"`
	Order            int              `json:"order" binding:"gte=0"`
	Active           bool             `json:"active"`
}

func (r serviceRequest) apply(m *models.Service) {
	m.Title = r.Title
	m.Slug = r.Slug
	m.ShortDescription = r.ShortDescription
	m.Description = r.Description
	m.Icon = r.Icon
	m.Features = r.Features
	m.PriceFrom = r.PriceFrom
	m.Order = r.Order
	m.Active = r.Active
}

// @Summary List active services
// @Tags services
// @Success 200 {object} apiResponse
// @Router /api/services [get]
func (h *ServiceHandler) list(c *gin.Context) {
	h.listServices(c, boolPtr(true))
}

func (h *ServiceHandler) adminList(c *gin.Context) {
	h.listServices(c, boolQueryPtr(c, "active"))
}

func (h *ServiceHandler) listServices(c *gin.Context, active *bool) {
	p := pageQuery(c)
	params := repository.ListServicesParams{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset, OrderBy: "sort_order", Asc: boolPtr(true)},
		Active:     active,
	}
	items, err := h.Repo.ListServices(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "service")
		return
	}
	total, err := h.Repo.CountServices(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "service")
		return
	}
	Ok(c, items, paginationMeta(p, total))
}

// @Summary Get active service
// @Tags services
// @Param slug path string true "slug"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/services/{slug} [get]
func (h *ServiceHandler) get(c *gin.Context) {
	item, err := h.Repo.GetServiceBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err, "service")
		return
	}
	if !item.Active {
		Error(c, http.StatusNotFound, "service not found", nil)
		return
	}
	Ok(c, item, nil)
}

func (h *ServiceHandler) adminGet(c *gin.Context) {
	item, err := h.Repo.GetServiceByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "service")
		return
	}
	Ok(c, item, nil)
}

func (h *ServiceHandler) create(c *gin.Context) {
	var req serviceRequest
	if !bindJSON(c, &req) {
		return
	}
	var item models.Service
	req.apply(&item)
	if err := h.Repo.CreateService(c.Request.Context(), &item); err != nil {
		fail(c, err, "service")
		return
	}
	Created(c, item)
}

func (h *ServiceHandler) update(c *gin.Context) {
	var req serviceRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Repo.GetServiceByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "service")
		return
	}
	req.apply(item)
	if err := h.Repo.UpdateService(c.Request.Context(), item); err != nil {
		fail(c, err, "service")
		return
	}
	Ok(c, item, nil)
}

func (h *ServiceHandler) delete(c *gin.Context) {
	if err := h.Repo.DeleteService(c.Request.Context(), idParam(c)); err != nil {
		fail(c, err, "service")
		return
	}
	Ok(c, gin.H{"id": idParam(c)}, nil)
}
