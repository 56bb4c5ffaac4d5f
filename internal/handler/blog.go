package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dinoverse/internal/auth"
	"dinoverse/internal/markdown"
	"dinoverse/internal/models"
	"dinoverse/internal/repository"
)

type BlogHandler struct {
	Repo repository.Repository
	Gate *auth.Gate
}

func (h *BlogHandler) Register(r *gin.Engine) {
	g := r.Group("/api/blog")
	g.GET("", h.list)
	g.GET("/:slug", h.get)
	g.POST("", requireAdmin(h.Gate), h.create)
	g.PUT("/:id", requireAdmin(h.Gate), h.update)
	g.DELETE("/:id", requireAdmin(h.Gate), h.delete)

	admin := r.Group("/api/admin/blog", requireAdmin(h.Gate))
	admin.GET("", h.adminList)
	admin.GET("/:id", h.adminGet)
}

type blogPostRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Slug        string     `json:"slug" binding:"required,slug,max=200"`
	Excerpt     string     `json:"excerpt" binding:"max=500"`
	Content     string     `json:"content" binding:"required"`
	CoverImage  string     `json:"coverImage" binding:"omitempty,url"`
	Tags        []string   `json:"tags" binding:"omitempty,max=20,dive,max=30"`
	Author      string     `json:"author" binding:"max=100"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt"`
}

func (r blogPostRequest) apply(m *models.BlogPost) {
	m.Title = r.Title
	m.Slug = r.Slug
	m.Excerpt = r.Excerpt
	m.Content = r.Content
	m.CoverImage = r.CoverImage
	m.Tags = r.Tags
	m.Author = r.Author
	m.Published = r.Published
	switch {
	case r.PublishedAt != nil:
		t := r.PublishedAt.UTC()
		m.PublishedAt = &t
	case r.Published && m.PublishedAt == nil:
		now := time.Now().UTC()
		m.PublishedAt = &now
	}
}

type blogPostView struct {
	models.BlogPost
	HTML string `json:"html,omitempty"`
}

// @Summary List published blog posts
// @Tags blog
// @Param q query string false "search title, excerpt and content"
// @Param tag query string false "tag"
// @Param page query int false "page"
// @Param limit query int false "page size (max 100)"
// @Success 200 {object} apiResponse
// @Router /api/blog [get]
func (h *BlogHandler) list(c *gin.Context) {
	h.listPosts(c, boolPtr(true))
}

// @Summary List all blog posts
// @Tags admin
// @Param published query bool false "published filter"
// @Success 200 {object} apiResponse
// @Failure 401 {object} apiResponse
// @Router /api/admin/blog [get]
func (h *BlogHandler) adminList(c *gin.Context) {
	h.listPosts(c, boolQueryPtr(c, "published"))
}

func (h *BlogHandler) listPosts(c *gin.Context, published *bool) {
	p := pageQuery(c)
	params := repository.ListBlogPostsParams{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset, OrderBy: "published_at", Asc: boolPtr(false)},
		Query:      strQueryPtr(c, "q"),
		Tag:        strQueryPtr(c, "tag"),
		Published:  published,
	}
	items, err := h.Repo.ListBlogPosts(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "blog post")
		return
	}
	total, err := h.Repo.CountBlogPosts(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "blog post")
		return
	}
	Ok(c, items, paginationMeta(p, total))
}

// @Summary Get a published blog post
// @Tags blog
// @Param slug path string true "slug"
// @Param render query string false "html to include rendered body"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/blog/{slug} [get]
func (h *BlogHandler) get(c *gin.Context) {
	item, err := h.Repo.GetBlogPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err, "blog post")
		return
	}
	if !item.Published {
		Error(c, http.StatusNotFound, "blog post not found", nil)
		return
	}
	view := blogPostView{BlogPost: *item}
	if c.Query("render") == "html" {
		view.HTML = string(markdown.RenderHTML(item.Content))
	}
	Ok(c, view, nil)
}

func (h *BlogHandler) adminGet(c *gin.Context) {
	item, err := h.Repo.GetBlogPostByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "blog post")
		return
	}
	Ok(c, item, nil)
}

// @Summary Create blog post
// @Tags admin
// @Accept json
// @Param body body blogPostRequest true "blog post"
// @Success 201 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Failure 409 {object} apiResponse
// @Router /api/blog [post]
func (h *BlogHandler) create(c *gin.Context) {
	var req blogPostRequest
	if !bindJSON(c, &req) {
		return
	}
	var item models.BlogPost
	req.apply(&item)
	if err := h.Repo.CreateBlogPost(c.Request.Context(), &item); err != nil {
		fail(c, err, "blog post")
		return
	}
	Created(c, item)
}

// @Summary Replace blog post
// @Tags admin
// @Accept json
// @Param id path string true "id"
// @Param body body blogPostRequest true "blog post"
// @Success 200 {object} apiResponse
// @Router /api/blog/{id} [put]
func (h *BlogHandler) update(c *gin.Context) {
	var req blogPostRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Repo.GetBlogPostByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "blog post")
		return
	}
	req.apply(item)
	if err := h.Repo.UpdateBlogPost(c.Request.Context(), item); err != nil {
		fail(c, err, "blog post")
		return
	}
	Ok(c, item, nil)
}

// @Summary Delete blog post
// @Tags admin
// @Param id path string true "id"
// @Success 200 {object} apiResponse
// @Router /api/blog/{id} [delete]
func (h *BlogHandler) delete(c *gin.Context) {
	if err := h.Repo.DeleteBlogPost(c.Request.Context(), idParam(c)); err != nil {
		fail(c, err, "blog post")
		return
	}
	Ok(c, gin.H{"id": idParam(c)}, nil)
}
