package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"dinoverse/internal/auth"
	"dinoverse/internal/models"
	"dinoverse/internal/repository"
)

type QuoteHandler struct {
	Repo repository.Repository
	Gate *auth.Gate
}

func (h *QuoteHandler) Register(r *gin.Engine) {
	r.GET("/api/quotes/random", h.random)

	g := r.Group("/api/quotes", requireAdmin(h.Gate))
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

type quoteRequest struct {
	Text     string   `json:"text" binding:"required,max=1000"`
	Author   string   `json:"author" binding:"max=100"`
	Source   string   `json:"source" binding:"max=200"`
	Tags     []string `json:"tags" binding:"omitempty,max=20,dive,max=30"`
	Favorite bool     `json:"favorite"`
}

func (r quoteRequest) apply(m *models.Quote) {
	m.Text = r.Text
	m.Author = r.Author
	m.Source = r.Source
	m.Tags = r.Tags
	m.Favorite = r.Favorite
}

// @Summary Random quote
// @Description Data is omitted when no quotes exist.
// @Tags quotes
// @Success 200 {object} apiResponse
// @Router /api/quotes/random [get]
func (h *QuoteHandler) random(c *gin.Context) {
	item, err := h.Repo.RandomQuote(c.Request.Context())
	if errors.Is(err, repository.ErrNotFound) {
		Ok(c, nil, nil)
		return
	}
	if err != nil {
		fail(c, err, "quote")
		return
	}
	Ok(c, item, nil)
}

// @Summary List quotes
// @Tags life
// @Param q query string false "search text and author"
// @Param favorite query bool false "favorites only"
// @Success 200 {object} apiResponse
// @Router /api/quotes [get]
func (h *QuoteHandler) list(c *gin.Context) {
	p := pageQuery(c)
	params := repository.ListQuotesParams{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset, OrderBy: "created_at", Asc: boolPtr(false)},
		Query:      strQueryPtr(c, "q"),
		Favorite:   boolQueryPtr(c, "favorite"),
	}
	items, err := h.Repo.ListQuotes(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "quote")
		return
	}
	total, err := h.Repo.CountQuotes(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "quote")
		return
	}
	Ok(c, items, paginationMeta(p, total))
}

func (h *QuoteHandler) get(c *gin.Context) {
	item, err := h.Repo.GetQuoteByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "quote")
		return
	}
	Ok(c, item, nil)
}

func (h *QuoteHandler) create(c *gin.Context) {
	var req quoteRequest
	if !bindJSON(c, &req) {
		return
	}
	var item models.Quote
	req.apply(&item)
	if err := h.Repo.CreateQuote(c.Request.Context(), &item); err != nil {
		fail(c, err, "quote")
		return
	}
	Created(c, item)
}

func (h *QuoteHandler) update(c *gin.Context) {
	var req quoteRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Repo.GetQuoteByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "quote")
		return
	}
	req.apply(item)
	if err := h.Repo.UpdateQuote(c.Request.Context(), item); err != nil {
		fail(c, err, "quote")
		return
	}
	Ok(c, item, nil)
}

func (h *QuoteHandler) delete(c *gin.Context) {
	if err := h.Repo.DeleteQuote(c.Request.Context(), idParam(c)); err != nil {
		fail(c, err, "quote")
		return
	}
	Ok(c, gin.H{"id": idParam(c)}, nil)
}
