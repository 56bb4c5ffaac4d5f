package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dinoverse/internal/models"
	"dinoverse/internal/repository"
	"dinoverse/internal/service"
	"dinoverse/internal/web"
)

const homeListLimit = 6

// PagesHandler serves the public HTML site straight from the store.
type PagesHandler struct {
	Repo     repository.Repository
	Site     *service.SiteContentService
	Contacts *service.ContactService
	Logger   *zap.Logger
}

func (h *PagesHandler) Register(r *gin.Engine) {
	r.GET("/", h.home)
	r.GET("/blog", h.blogList)
	r.GET("/blog/:slug", h.blogPost)
	r.GET("/portfolio", h.portfolio)
	r.GET("/services", h.services)
	r.GET("/store", h.store)
	r.GET("/contact", h.contactForm)
	r.POST("/contact", h.contactSubmit)
	r.NoRoute(h.notFound)
}

func (h *PagesHandler) section(c *gin.Context, key string) map[string]any {
	if h.Site == nil {
		return nil
	}
	raw, err := h.Site.Get(c.Request.Context(), key)
	if err != nil {
		h.warn("site content read failed", err)
		return nil
	}
	return web.Section(raw)
}

func (h *PagesHandler) home(c *gin.Context) {
	ctx := c.Request.Context()
	recent := repository.ListParams{Limit: homeListLimit, OrderBy: "sort_order", Asc: boolPtr(true)}

	portfolio, err := h.Repo.ListPortfolioItems(ctx, repository.ListPortfolioItemsParams{ListParams: recent, Featured: boolPtr(true)})
	if err != nil {
		h.serverError(c, err)
		return
	}
	testimonials, err := h.Repo.ListTestimonials(ctx, repository.ListTestimonialsParams{ListParams: recent, Featured: boolPtr(true)})
	if err != nil {
		h.serverError(c, err)
		return
	}
	partners, err := h.Repo.ListPartners(ctx, repository.ListParams{Limit: 50, OrderBy: "sort_order", Asc: boolPtr(true)})
	if err != nil {
		h.serverError(c, err)
		return
	}
	features, err := h.Repo.ListFeatures(ctx, repository.ListParams{Limit: 12, OrderBy: "sort_order", Asc: boolPtr(true)})
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.HTML(http.StatusOK, "home", gin.H{
		"Hero":         h.section(c, service.SectionHero),
		"WhyChoose":    h.section(c, service.SectionWhyChoose),
		"Process":      h.section(c, service.SectionProcess),
		"CTA":          h.section(c, service.SectionCTA),
		"RecentWork":   h.section(c, service.SectionRecentWork),
		"Portfolio":    portfolio,
		"Testimonials": testimonials,
		"Partners":     partners,
		"Features":     features,
	})
}

func (h *PagesHandler) blogList(c *gin.Context) {
	p := pageQuery(c)
	params := repository.ListBlogPostsParams{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset, OrderBy: "published_at", Asc: boolPtr(false)},
		Tag:        strQueryPtr(c, "tag"),
		Query:      strQueryPtr(c, "q"),
		Published:  boolPtr(true),
	}
	posts, err := h.Repo.ListBlogPosts(c.Request.Context(), params)
	if err != nil {
		h.serverError(c, err)
		return
	}
	total, err := h.Repo.CountBlogPosts(c.Request.Context(), params)
	if err != nil {
		h.serverError(c, err)
		return
	}
	next := 0
	if int64(p.Offset+p.Limit) < total {
		next = p.Page + 1
	}
	c.HTML(http.StatusOK, "blog_list", gin.H{
		"Title":    "Blog",
		"Posts":    posts,
		"Tag":      c.Query("tag"),
		"NextPage": next,
	})
}

func (h *PagesHandler) blogPost(c *gin.Context) {
	post, err := h.Repo.GetBlogPostBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !post.Published) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.HTML(http.StatusOK, "blog_post", gin.H{"Title": post.Title, "Post": post})
}

func (h *PagesHandler) portfolio(c *gin.Context) {
	items, err := h.Repo.ListPortfolioItems(c.Request.Context(), repository.ListPortfolioItemsParams{
		ListParams: repository.ListParams{Limit: maxPageLimit, OrderBy: "sort_order", Asc: boolPtr(true)},
		Category:   strQueryPtr(c, "category"),
	})
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.HTML(http.StatusOK, "portfolio", gin.H{"Title": "Our work", "Items": items})
}

func (h *PagesHandler) services(c *gin.Context) {
	items, err := h.Repo.ListServices(c.Request.Context(), repository.ListServicesParams{
		ListParams: repository.ListParams{Limit: maxPageLimit, OrderBy: "sort_order", Asc: boolPtr(true)},
		Active:     boolPtr(true),
	})
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.HTML(http.StatusOK, "services", gin.H{
		"Title":    "Services",
		"Page":     h.section(c, service.SectionServicesPage),
		"Services": items,
	})
}

func (h *PagesHandler) store(c *gin.Context) {
	order := sortSpec{Column: "created_at"}
	if spec, ok := sortParam(c.Query("sort"), productSorts); ok {
		order = spec
	}
	items, err := h.Repo.ListProducts(c.Request.Context(), repository.ListProductsParams{
		ListParams: repository.ListParams{Limit: maxPageLimit, OrderBy: order.Column, Asc: boolPtr(order.Asc)},
		Category:   strQueryPtr(c, "category"),
	})
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.HTML(http.StatusOK, "store", gin.H{"Title": "Store", "Products": items})
}

func (h *PagesHandler) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact", gin.H{
		"Title": "Contact",
		"Mini":  h.section(c, service.SectionContactMini),
		"Form":  contactRequest{},
	})
}

func (h *PagesHandler) contactSubmit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "contact", gin.H{
			"Title":  "Contact",
			"Mini":   h.section(c, service.SectionContactMini),
			"Form":   req,
			"Errors": describeBindError(err),
		})
		return
	}
	var item models.Contact
	req.apply(&item)
	if err := h.Contacts.Submit(c.Request.Context(), &item); err != nil {
		h.serverError(c, err)
		return
	}
	c.HTML(http.StatusOK, "thanks", gin.H{"Title": "Thanks", "Name": item.Name})
}

// notFound answers JSON under /api and an HTML page elsewhere.
func (h *PagesHandler) notFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		Error(c, http.StatusNotFound, "route not found", nil)
		return
	}
	c.HTML(http.StatusNotFound, "not_found", gin.H{"Title": "Not found"})
}

func (h *PagesHandler) serverError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, "internal error")
}

func (h *PagesHandler) warn(msg string, err error) {
	if h.Logger != nil {
		h.Logger.Warn(msg, zap.Error(err))
	}
}
