package gormrepository

import (
	"context"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"dinoverse/internal/models"
	"dinoverse/internal/repository"
)

// --- blog --------------------------------------------------------------------

func (s *Store) CreateBlogPost(ctx context.Context, item *models.BlogPost) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.Tags = cleanStrings(item.Tags)
	return create(s.db.WithContext(ctx), item)
}

func (s *Store) UpdateBlogPost(ctx context.Context, item *models.BlogPost) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.Tags = cleanStrings(item.Tags)
	return replace(s.db.WithContext(ctx), item.ID, item)
}

func (s *Store) DeleteBlogPost(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return deleteByID[models.BlogPost](s.db.WithContext(ctx), id)
}

func (s *Store) GetBlogPostByID(ctx context.Context, id string) (*models.BlogPost, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.BlogPost](s.db.WithContext(ctx), "id", id)
}

func (s *Store) GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.BlogPost](s.db.WithContext(ctx), "slug", slug)
}

func (s *Store) ListBlogPosts(ctx context.Context, params repository.ListBlogPostsParams) ([]models.BlogPost, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return list[models.BlogPost](s.blogPostQuery(ctx, params), params.ListParams, "published_at", "created_at desc")
}

func (s *Store) CountBlogPosts(ctx context.Context, params repository.ListBlogPostsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	return count(s.blogPostQuery(ctx, params))
}

func (s *Store) blogPostQuery(ctx context.Context, params repository.ListBlogPostsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.BlogPost{})
	query = whereBool(query, "published", params.Published)
	query = applySearch(query, params.Query, "title", "excerpt", "content")
	if params.Tag != nil && strings.TrimSpace(*params.Tag) != "" {
		query = query.Where(datatypes.JSONArrayQuery("tags").Contains(strings.TrimSpace(*params.Tag)))
	}
	return query
}

// --- portfolio ---------------------------------------------------------------

func (s *Store) CreatePortfolioItem(ctx context.Context, item *models.PortfolioItem) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.Gallery = cleanStrings(item.Gallery)
	item.Technologies = cleanStrings(item.Technologies)
	return create(s.db.WithContext(ctx), item)
}

func (s *Store) UpdatePortfolioItem(ctx context.Context, item *models.PortfolioItem) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.Gallery = cleanStrings(item.Gallery)
	item.Technologies = cleanStrings(item.Technologies)
	return replace(s.db.WithContext(ctx), item.ID, item)
}

func (s *Store) DeletePortfolioItem(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return deleteByID[models.PortfolioItem](s.db.WithContext(ctx), id)
}

func (s *Store) GetPortfolioItemByID(ctx context.Context, id string) (*models.PortfolioItem, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.PortfolioItem](s.db.WithContext(ctx), "id", id)
}

func (s *Store) GetPortfolioItemBySlug(ctx context.Context, slug string) (*models.PortfolioItem, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.PortfolioItem](s.db.WithContext(ctx), "slug", slug)
}

func (s *Store) ListPortfolioItems(ctx context.Context, params repository.ListPortfolioItemsParams) ([]models.PortfolioItem, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return list[models.PortfolioItem](s.portfolioQuery(ctx, params), params.ListParams, "sort_order", "created_at desc")
}

func (s *Store) CountPortfolioItems(ctx context.Context, params repository.ListPortfolioItemsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	return count(s.portfolioQuery(ctx, params))
}

func (s *Store) portfolioQuery(ctx context.Context, params repository.ListPortfolioItemsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.PortfolioItem{})
	query = whereString(query, "category", params.Category)
	query = whereBool(query, "featured", params.Featured)
	return applySearch(query, params.Query, "title", "description", "client")
}

// --- services ----------------------------------------------------------------

func (s *Store) CreateService(ctx context.Context, item *models.Service) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.Features = cleanStrings(item.Features)
	return create(s.db.WithContext(ctx), item)
}

func (s *Store) UpdateService(ctx context.Context, item *models.Service) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.Features = cleanStrings(item.Features)
	return replace(s.db.WithContext(ctx), item.ID, item)
}

func (s *Store) DeleteService(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return deleteByID[models.Service](s.db.WithContext(ctx), id)
}

func (s *Store) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.Service](s.db.WithContext(ctx), "id", id)
}

func (s *Store) GetServiceBySlug(ctx context.Context, slug string) (*models.Service, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.Service](s.db.WithContext(ctx), "slug", slug)
}

func (s *Store) ListServices(ctx context.Context, params repository.ListServicesParams) ([]models.Service, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return list[models.Service](s.serviceQuery(ctx, params), params.ListParams, "sort_order", "created_at asc")
}

func (s *Store) CountServices(ctx context.Context, params repository.ListServicesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	return count(s.serviceQuery(ctx, params))
}

func (s *Store) serviceQuery(ctx context.Context, params repository.ListServicesParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Service{})
	return whereBool(query, "active", params.Active)
}

// --- products ----------------------------------------------------------------

func (s *Store) CreateProduct(ctx context.Context, item *models.Product) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return create(s.db.WithContext(ctx), item)
}

func (s *Store) UpdateProduct(ctx context.Context, item *models.Product) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return replace(s.db.WithContext(ctx), item.ID, item)
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return deleteByID[models.Product](s.db.WithContext(ctx), id)
}

func (s *Store) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.Product](s.db.WithContext(ctx), "id", id)
}

func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.Product](s.db.WithContext(ctx), "slug", slug)
}

func (s *Store) ListProducts(ctx context.Context, params repository.ListProductsParams) ([]models.Product, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return list[models.Product](s.productQuery(ctx, params), params.ListParams, "created_at")
}

func (s *Store) CountProducts(ctx context.Context, params repository.ListProductsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	return count(s.productQuery(ctx, params))
}

func (s *Store) productQuery(ctx context.Context, params repository.ListProductsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Product{})
	query = whereString(query, "category", params.Category)
	query = whereBool(query, "featured", params.Featured)
	return applySearch(query, params.Query, "name", "description")
}

// --- testimonials ------------------------------------------------------------

func (s *Store) CreateTestimonial(ctx context.Context, item *models.Testimonial) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return create(s.db.WithContext(ctx), item)
}

func (s *Store) UpdateTestimonial(ctx context.Context, item *models.Testimonial) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return replace(s.db.WithContext(ctx), item.ID, item)
}

func (s *Store) DeleteTestimonial(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return deleteByID[models.Testimonial](s.db.WithContext(ctx), id)
}

func (s *Store) GetTestimonialByID(ctx context.Context, id string) (*models.Testimonial, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.Testimonial](s.db.WithContext(ctx), "id", id)
}

func (s *Store) ListTestimonials(ctx context.Context, params repository.ListTestimonialsParams) ([]models.Testimonial, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return list[models.Testimonial](s.testimonialQuery(ctx, params), params.ListParams, "sort_order", "created_at desc")
}

func (s *Store) CountTestimonials(ctx context.Context, params repository.ListTestimonialsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	return count(s.testimonialQuery(ctx, params))
}

func (s *Store) testimonialQuery(ctx context.Context, params repository.ListTestimonialsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Testimonial{})
	return whereBool(query, "featured", params.Featured)
}

// --- partners & features -----------------------------------------------------

func (s *Store) CreatePartner(ctx context.Context, item *models.Partner) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return create(s.db.WithContext(ctx), item)
}

func (s *Store) UpdatePartner(ctx context.Context, item *models.Partner) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return replace(s.db.WithContext(ctx), item.ID, item)
}

func (s *Store) DeletePartner(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return deleteByID[models.Partner](s.db.WithContext(ctx), id)
}

func (s *Store) GetPartnerByID(ctx context.Context, id string) (*models.Partner, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.Partner](s.db.WithContext(ctx), "id", id)
}

func (s *Store) ListPartners(ctx context.Context, params repository.ListParams) ([]models.Partner, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return list[models.Partner](s.db.WithContext(ctx).Model(&models.Partner{}), params, "sort_order", "name asc")
}

func (s *Store) CountPartners(ctx context.Context, _ repository.ListParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	return count(s.db.WithContext(ctx).Model(&models.Partner{}))
}

func (s *Store) CreateFeature(ctx context.Context, item *models.Feature) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return create(s.db.WithContext(ctx), item)
}

func (s *Store) UpdateFeature(ctx context.Context, item *models.Feature) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return replace(s.db.WithContext(ctx), item.ID, item)
}

func (s *Store) DeleteFeature(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return deleteByID[models.Feature](s.db.WithContext(ctx), id)
}

func (s *Store) GetFeatureByID(ctx context.Context, id string) (*models.Feature, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.Feature](s.db.WithContext(ctx), "id", id)
}

func (s *Store) ListFeatures(ctx context.Context, params repository.ListParams) ([]models.Feature, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return list[models.Feature](s.db.WithContext(ctx).Model(&models.Feature{}), params, "sort_order", "created_at asc")
}

func (s *Store) CountFeatures(ctx context.Context, _ repository.ListParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	return count(s.db.WithContext(ctx).Model(&models.Feature{}))
}

// --- contacts ----------------------------------------------------------------

func (s *Store) CreateContact(ctx context.Context, item *models.Contact) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Status) == "" {
		item.Status = models.ContactStatusNew
	}
	return create(s.db.WithContext(ctx), item)
}

func (s *Store) UpdateContactStatus(ctx context.Context, id string, status string) error {
	if s == nil || s.db == nil {
		return nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("id = ?", strings.TrimSpace(id)).
		Update("status", strings.TrimSpace(status))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteContact(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return deleteByID[models.Contact](s.db.WithContext(ctx), id)
}

func (s *Store) GetContactByID(ctx context.Context, id string) (*models.Contact, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	return getBy[models.Contact](s.db.WithContext(ctx), "id", id)
}

func (s *Store) ListContacts(ctx context.Context, params repository.ListContactsParams) ([]models.Contact, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return list[models.Contact](s.contactQuery(ctx, params), params.ListParams, "created_at")
}

func (s *Store) CountContacts(ctx context.Context, params repository.ListContactsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	return count(s.contactQuery(ctx, params))
}

func (s *Store) contactQuery(ctx context.Context, params repository.ListContactsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Contact{})
	query = whereString(query, "status", params.Status)
	return applySearch(query, params.Query, "name", "email", "subject", "message")
}
