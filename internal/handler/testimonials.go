package handler

import (
	"github.com/gin-gonic/gin"

	"dinoverse/internal/auth"
	"dinoverse/internal/models"
	"dinoverse/internal/repository"
)

type TestimonialHandler struct {
	Repo repository.Repository
	Gate *auth.Gate
}

func (h *TestimonialHandler) Register(r *gin.Engine) {
	g := r.Group("/api/testimonials")
	g.GET("", h.list)
	g.POST("", requireAdmin(h.Gate), h.create)
	g.PUT("/:id", requireAdmin(h.Gate), h.update)
	g.DELETE("/:id", requireAdmin(h.Gate), h.delete)

	admin := r.Group("/api/admin/testimonials", requireAdmin(h.Gate))
	admin.GET("", h.list)
	admin.GET("/:id", h.get)
}

type testimonialRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Role      string `json:"role" binding:"max=100"`
	Company   string `json:"company" binding:"max=100"`
	Quote     string `json:"quote" binding:"required,max=1000"`
	AvatarURL string `json:"avatarUrl" binding:"omitempty,url"`
	Rating    int    `json:"rating" binding:"omitempty,gte=1,lte=5"`
	Featured  bool   `json:"featured"`
	Order     int    `json:"order" binding:"gte=0"`
}

func (r testimonialRequest) apply(m *models.Testimonial) {
	m.Name = r.Name
	m.Role = r.Role
	m.Company = r.Company
	m.Quote = r.Quote
	m.AvatarURL = r.AvatarURL
	m.Rating = r.Rating
	if m.Rating == 0 {
		m.Rating = 5
	}
	m.Featured = r.Featured
	m.Order = r.Order
}

// @Summary List testimonials
// @Tags testimonials
// @Param featured query bool false "featured only"
// @Success 200 {object} apiResponse
// @Router /api/testimonials [get]
func (h *TestimonialHandler) list(c *gin.Context) {
	p := pageQuery(c)
	params := repository.ListTestimonialsParams{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset, OrderBy: "sort_order", Asc: boolPtr(true)},
		Featured:   boolQueryPtr(c, "featured"),
	}
	items, err := h.Repo.ListTestimonials(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "testimonial")
		return
	}
	total, err := h.Repo.CountTestimonials(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "testimonial")
		return
	}
	Ok(c, items, paginationMeta(p, total))
}

func (h *TestimonialHandler) get(c *gin.Context) {
	item, err := h.Repo.GetTestimonialByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "testimonial")
		return
	}
	Ok(c, item, nil)
}

func (h *TestimonialHandler) create(c *gin.Context) {
	var req testimonialRequest
	if !bindJSON(c, &req) {
		return
	}
	var item models.Testimonial
	req.apply(&item)
	if err := h.Repo.CreateTestimonial(c.Request.Context(), &item); err != nil {
		fail(c, err, "testimonial")
		return
	}
	Created(c, item)
}

func (h *TestimonialHandler) update(c *gin.Context) {
	var req testimonialRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Repo.GetTestimonialByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "testimonial")
		return
	}
	req.apply(item)
	if err := h.Repo.UpdateTestimonial(c.Request.Context(), item); err != nil {
		fail(c, err, "testimonial")
		return
	}
	Ok(c, item, nil)
}

func (h *TestimonialHandler) delete(c *gin.Context) {
	if err := h.Repo.DeleteTestimonial(c.Request.Context(), idParam(c)); err != nil {
		fail(c, err, "testimonial")
		return
	}
	Ok(c, gin.H{"id": idParam(c)}, nil)
}
