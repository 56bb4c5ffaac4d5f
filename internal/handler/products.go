package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"dinoverse/internal/auth"
	"dinoverse/internal/models"
	"dinoverse/internal/repository"
)

var productSorts = map[string]sortSpec{
	"price_asc":  {Column: "price", Asc: true},
	"price_desc": {Column: "price", Asc: false},
	"newest":     {Column: "created_at", Asc: false},
}

type ProductHandler struct {
	Repo repository.Repository
	Gate *auth.Gate
}

func (h *ProductHandler) Register(r *gin.Engine) {
	g := r.Group("/api/products")
	g.GET("", h.list)
	g.GET("/:slug", h.get)
	g.POST("", requireAdmin(h.Gate), h.create)
	g.PUT("/:id", requireAdmin(h.Gate), h.update)
	g.DELETE("/:id", requireAdmin(h.Gate), h.delete)

	admin := r.Group("/api/admin/products", requireAdmin(h.Gate))
	admin.GET("", h.list)
	admin.GET("/:id", h.adminGet)
}

type productRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Slug        string          `json:"slug" binding:"required,slug,max=200"`
	Description string          `json:"description" binding:"max=10000"`
	Price       decimal.Decimal `json:"price" binding:"gte=0"`
	Currency    string          `json:"currency" binding:"omitempty,len=3,alpha"`
	ImageURL    string          `json:"imageUrl" binding:"omitempty,url"`
	Category    string          `json:"category" binding:"max=100"`
	InStock     bool            `json:"inStock"`
	Featured    bool            `json:"featured"`
	ExternalURL string          `json:"externalUrl" binding:"omitempty,url"`
}

func (r productRequest) apply(m *models.Product) {
	m.Name = r.Name
	m.Slug = r.Slug
	m.Description = r.Description
	m.Price = r.Price
	m.Currency = strings.ToUpper(r.Currency)
	if m.Currency == "" {
		m.Currency = "USD"
	}
	m.ImageURL = r.ImageURL
	m.Category = r.Category
	m.InStock = r.InStock
	m.Featured = r.Featured
	m.ExternalURL = r.ExternalURL
}

// @Summary List products
// @Tags store
// @Param q query string false "search name and description"
// @Param category query string false "category"
// @Param featured query bool false "featured only"
// @Param sort query string false "price_asc|price_desc|newest"
// @Success 200 {object} apiResponse
// @Router /api/products [get]
func (h *ProductHandler) list(c *gin.Context) {
	p := pageQuery(c)
	order := sortSpec{Column: "created_at"}
	if raw := c.Query("sort"); raw != "" {
		spec, ok := sortParam(raw, productSorts)
		if !ok {
			validationError(c, []fieldError{{Field: "sort", Message: "must be one of: price_asc, price_desc, newest"}})
			return
		}
		order = spec
	}
	params := repository.ListProductsParams{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset, OrderBy: order.Column, Asc: boolPtr(order.Asc)},
		Query:      strQueryPtr(c, "q"),
		Category:   strQueryPtr(c, "category"),
		Featured:   boolQueryPtr(c, "featured"),
	}
	items, err := h.Repo.ListProducts(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "product")
		return
	}
	total, err := h.Repo.CountProducts(c.Request.Context(), params)
	if err != nil {
		fail(c, err, "product")
		return
	}
	Ok(c, items, paginationMeta(p, total))
}

// @Summary Get product
// @Tags store
// @Param slug path string true "slug"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/products/{slug} [get]
func (h *ProductHandler) get(c *gin.Context) {
	item, err := h.Repo.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err, "product")
		return
	}
	Ok(c, item, nil)
}

func (h *ProductHandler) adminGet(c *gin.Context) {
	item, err := h.Repo.GetProductByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "product")
		return
	}
	Ok(c, item, nil)
}

func (h *ProductHandler) create(c *gin.Context) {
	var req productRequest
	if !bindJSON(c, &req) {
		return
	}
	var item models.Product
	req.apply(&item)
	if err := h.Repo.CreateProduct(c.Request.Context(), &item); err != nil {
		fail(c, err, "product")
		return
	}
	Created(c, item)
}

func (h *ProductHandler) update(c *gin.Context) {
	var req productRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Repo.GetProductByID(c.Request.Context(), idParam(c))
	if err != nil {
		fail(c, err, "product")
		return
	}
	req.apply(item)
	if err := h.Repo.UpdateProduct(c.Request.Context(), item); err != nil {
		fail(c, err, "product")
		return
	}
	Ok(c, item, nil)
}

func (h *ProductHandler) delete(c *gin.Context) {
	if err := h.Repo.DeleteProduct(c.Request.Context(), idParam(c)); err != nil {
		fail(c, err, "product")
		return
	}
	Ok(c, gin.H{"id": idParam(c)}, nil)
}
