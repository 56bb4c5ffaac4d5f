package handler

import (
	"github.com/gin-gonic/gin"

	"dinoverse/internal/auth"
	"dinoverse/internal/models"
	"dinoverse/internal/repository"
	"dinoverse/internal/service"
)

type ContactHandler struct {
	Repo    repository.Repository
	Service *service.ContactService
	Gate    *auth.Gate
}

func (h *ContactHandler) Register(r *gin.Engine) {
	r.POST("/api/contact", h.submit)

	admin := r.Group("/api/admin/contacts", requireAdmin(h.Gate))
	admin.GET("", h.list)
	admin.GET("/:id", h.get)
	admin.PUT("/:id/status", h.updateStatus)
	admin.DELETE("/:id", h.delete)
}

type contactRequest struct {
	Name    string `json:"name" form:"name" binding:"required,max=100"`
	Email   string `json:"email" form:"email" binding:"required,email,max=200"`
	Phone   string `json:"phone" form:"phone" binding:"max=50"`
	Company string `json:"company" form:"company" binding:"max=200"`
	Subject string `json:"subject" form:"subject" binding:"max=200"`
	Message string `json:"message" form:"message" binding:"required,max=5000"`
}

func (r contactRequest) apply(m *models.Contact) {
	m.Name = r.Name
	m.Email = r.Email
	m.Phone = r.Phone
	m.Company = r.Company
	m.Subject = r.Subject
	m.Message = r.Message
}

type contactStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new read replied archived"`
}

// @Summary Submit contact form
// @Tags contact
// @Accept json
// @Param body body contactRequest true "message"
// @Success 201 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/contact [post]
func (h *ContactHandler) submit(c *gin.Context) {
	var req contactRequest
	if !bindJSON(c, &req) {
		return
	}
	var item models.Contact
	req.apply(&item)
	if err := h.Service.Submit(c.Request.Context(), &item); err != nil {
		fail(c, err, "contact")
		return
	}
	Created(c, gin.H{"id": item.ID})
}

// @Summary List contact messages
// @Tags admin
// @Param q query string false "search name, email, subject and message"
// @Param status query string false "new|read|replied|archived"
// @Success 200 {object} apiResponse
// @Router /api/admin/contacts [get]
func (h *ContactHandler) list(c *gin.Context) {
	p := pageQuery(c)
	params := repository.ListContactsParams{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset, OrderBy: "created_at", Asc: boolPtr(false)},
		Query:      strQueryPtr(c, "q"),
		Status:     strQueryPtr(c, "status"),
	}
	items, err := h.Repo.ListContacts(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "contact")
		return
	}
	total, err := h.Repo.CountContacts(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "contact")
		return
	}
	Ok(c, items, paginationMeta(p, total))
}

func (h *ContactHandler) get(c *gin.Context) {
	item, err := h.Repo.GetContactByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "contact")
		return
	}
	Ok(c, item, nil)
}

// @Summary Set contact status
// @Tags admin
// @Accept json
// @Param id path string true "id"
// @Param body body contactStatusRequest true "status"
// @Success 200 {object} apiResponse
// @Router /api/admin/contacts/{id}/status [put]
func (h *ContactHandler) updateStatus(c *gin.Context) {
	var req contactStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Repo.UpdateContactStatus(c.Request.Context(), idParam(c), req.Status); err != nil {
		fail(c, err, "contact")
		return
	}
	item, err := h.Repo.GetContactByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "contact")
		return
	}
	Ok(c, item, nil)
}

func (h *ContactHandler) delete(c *gin.Context) {
	if err := h.Repo.DeleteContact(c.Request.Context(), idParam(c)); err != nil {
		fail(c, err, "contact")
		return
	}
	Ok(c, gin.H{"id": idParam(c)}, nil)
}
