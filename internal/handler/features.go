package handler

import (
	"github.com/gin-gonic/gin"

	"dinoverse/internal/auth"
	"dinoverse/internal/models"
	"dinoverse/internal/repository"
)

type FeatureHandler struct {
	Repo repository.Repository
	Gate *auth.Gate
}

func (h *FeatureHandler) Register(r *gin.Engine) {
	g := r.Group("/api/features")
	g.GET("", h.list)
	g.POST("", requireAdmin(h.Gate), h.create)
	g.PUT("/:id", requireAdmin(h.Gate), h.update)
	g.DELETE("/:id", requireAdmin(h.Gate), h.delete)

	admin := r.Group("/api/admin/features", requireAdmin(h.Gate))
	admin.GET("", h.list)
	admin.GET("/:id", h.get)
}

type featureRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Icon        string `json:"icon" binding:"max=100"`
	Order       int    `json:"order" binding:"gte=0"`
}

func (r featureRequest) apply(m *models.Feature) {
	m.Title = r.Title
	m.Description = r.Description
	m.Icon = r.Icon
	m.Order = r.Order
}

// @Summary List features
// @Tags features
// @Success 200 {object} apiResponse
// @Router /api/features [get]
func (h *FeatureHandler) list(c *gin.Context) {
	p := pageQuery(c)
	params := repository.ListParams{Limit: p.Limit, Offset: p.Offset, OrderBy: "sort_order", Asc: boolPtr(true)}
	items, err := h.Repo.ListFeatures(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "feature")
		return
	}
	total, err := h.Repo.CountFeatures(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "feature")
		return
	}
	Ok(c, items, paginationMeta(p, total))
}

func (h *FeatureHandler) get(c *gin.Context) {
	item, err := h.Repo.GetFeatureByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "feature")
		return
	}
	Ok(c, item, nil)
}

func (h *FeatureHandler) create(c *gin.Context) {
	var req featureRequest
	if !bindJSON(c, &req) {
		return
	}
	var item models.Feature
	req.apply(&item)
	if err := h.Repo.CreateFeature(c.Request.Context(), &item); err != nil {
		fail(c, err, "feature")
		return
	}
	Created(c, item)
}

func (h *FeatureHandler) update(c *gin.Context) {
	var req featureRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Repo.GetFeatureByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "feature")
		return
	}
	req.apply(item)
	if err := h.Repo.UpdateFeature(c.Request.Context(), item); err != nil {
		fail(c, err, "feature")
		return
	}
	Ok(c, item, nil)
}

func (h *FeatureHandler) delete(c *gin.Context) {
	if err := h.Repo.DeleteFeature(c.Request.Context(), idParam(c)); err != nil {
		fail(c, err, "feature")
		return
	}
	Ok(c, gin.H{"id": idParam(c)}, nil)
}
