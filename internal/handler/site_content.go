package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dinoverse/internal/auth"
	"dinoverse/internal/service"
)

type SiteContentHandler struct {
	Service *service.SiteContentService
	Gate    *auth.Gate
}

func (h *SiteContentHandler) Register(r *gin.Engine) {
	g := r.Group("/api/site-content")
	g.GET("", h.all)
	g.GET("/:key", h.get)
	g.PUT("/:key", requireAdmin(h.Gate), h.put)
}

type siteContentRequest struct {
	Data json.RawMessage `json:"data" binding:"required"`
}

// @Summary All site content sections
// @Tags site-content
// @Success 200 {object} apiResponse
// @Router /api/site-content [get]
func (h *SiteContentHandler) all(c *gin.Context) {
	out, err := h.Service.All(c.Request.Context())
	if err != nil {
		fail(c, err, "site content")
		return
	}
	Ok(c, out, nil)
}

// @Summary One site content section
// @Description Falls back to the built-in default when nothing is stored.
// @Tags site-content
// @Param key path string true "hero|whyChoose|process|cta|recentWork|contactMini|servicesPage"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/site-content/{key} [get]
func (h *SiteContentHandler) get(c *gin.Context) {
	data, err := h.Service.Get(c.Request.Context(), c.Param("key"))
	if errors.Is(err, service.ErrUnknownSection) {
		Error(c, http.StatusNotFound, "section not found", nil)
		return
	}
	if err != nil {
		fail(c, err, "site content")
		return
	}
	Ok(c, gin.H{"key": c.Param("key"), "data": data}, nil)
}

// @Summary Replace a site content section
// @Tags site-content
// @Accept json
// @Param key path string true "section key"
// @Param body body siteContentRequest true "section payload"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/site-content/{key} [put]
func (h *SiteContentHandler) put(c *gin.Context) {
	if !service.IsSectionKey(c.Param("key")) {
		Error(c, http.StatusNotFound, "section not found", nil)
		return
	}
	var req siteContentRequest
	if !bindJSON(c, &req) {
		return
	}
	if !isJSONObject(req.Data) {
		validationError(c, []fieldError{{Field: "data", Message: "must be a JSON object"}})
		return
	}
	item, err := h.Service.Put(c.Request.Context(), c.Param("key"), req.Data)
	if err != nil {
		fail(c, err, "site content")
		return
	}
	Ok(c, item, nil)
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	return json.Valid(trimmed)
}
