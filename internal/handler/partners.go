package handler

import (
	"github.com/gin-gonic/gin"

	"dinoverse/internal/auth"
	"dinoverse/internal/models"
	"dinoverse/internal/repository"
)

type PartnerHandler struct {
	Repo repository.Repository
	Gate *auth.Gate
}

func (h *PartnerHandler) Register(r *gin.Engine) {
	g := r.Group("/api/partners")
	g.GET("", h.list)
	g.POST("", requireAdmin(h.Gate), h.create)
	g.PUT("/:id", requireAdmin(h.Gate), h.update)
	g.DELETE("/:id", requireAdmin(h.Gate), h.delete)

	admin := r.Group("/api/admin/partners", requireAdmin(h.Gate))
	admin.GET("", h.list)
	admin.GET("/:id", h.get)
}

type partnerRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	LogoURL    string `json:"logoUrl" binding:"omitempty,url"`
	WebsiteURL string `json:"websiteUrl" binding:"omitempty,url"`
	Order      int    `json:"order" binding:"gte=0"`
}

func (r partnerRequest) apply(m *models.Partner) {
	m.Name = r.Name
	m.LogoURL = r.LogoURL
	m.WebsiteURL = r.WebsiteURL
	m.Order = r.Order
}

// @Summary List partners
// @Tags partners
// @Success 200 {object} apiResponse
// @Router /api/partners [get]
func (h *PartnerHandler) list(c *gin.Context) {
	p := pageQuery(c)
	params := repository.ListParams{Limit: p.Limit, Offset: p.Offset, OrderBy: "sort_order", Asc: boolPtr(true)}
	items, err := h.Repo.ListPartners(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "partner")
		return
	}
	total, err := h.Repo.CountPartners(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "partner")
		return
	}
	Ok(c, items, paginationMeta(p, total))
}

func (h *PartnerHandler) get(c *gin.Context) {
	item, err := h.Repo.GetPartnerByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "partner")
		return
	}
	Ok(c, item, nil)
}

func (h *PartnerHandler) create(c *gin.Context) {
	var req partnerRequest
	if !bindJSON(c, &req) {
		return
	}
	var item models.Partner
	req.apply(&item)
	if err := h.Repo.CreatePartner(c.Request.Context(), &item); err != nil {
		fail(c, err, "partner")
		return
	}
	Created(c, item)
}

func (h *PartnerHandler) update(c *gin.Context) {
	var req partnerRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Repo.GetPartnerByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "partner")
		return
	}
	req.apply(item)
	if err := h.Repo.UpdatePartner(c.Request.Context(), item); err != nil {
		fail(c, err, "partner")
		return
	}
	Ok(c, item, nil)
}

func (h *PartnerHandler) delete(c *gin.Context) {
	if err := h.Repo.DeletePartner(c.Request.Context(), idParam(c)); err != nil {
		fail(c, err, "partner")
		return
	}
	Ok(c, gin.H{"id": idParam(c)}, nil)
}
