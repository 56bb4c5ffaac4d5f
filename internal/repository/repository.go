package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"dinoverse/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// ContentRepository covers the public site collections.
type ContentRepository interface {
	CreateBlogPost(ctx context.Context, item *models.BlogPost) error
	UpdateBlogPost(ctx context.Context, item *models.BlogPost) error
	DeleteBlogPost(ctx context.Context, id string) error
	GetBlogPostByID(ctx context.Context, id string) (*models.BlogPost, error)
	GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	ListBlogPosts(ctx context.Context, params ListBlogPostsParams) ([]models.BlogPost, error)
	CountBlogPosts(ctx context.Context, params ListBlogPostsParams) (int64, error)

	CreatePortfolioItem(ctx context.Context, item *models.PortfolioItem) error
	UpdatePortfolioItem(ctx context.Context, item *models.PortfolioItem) error
	DeletePortfolioItem(ctx context.Context, id string) error
	GetPortfolioItemByID(ctx context.Context, id string) (*models.PortfolioItem, error)
	GetPortfolioItemBySlug(ctx context.Context, slug string) (*models.PortfolioItem, error)
	ListPortfolioItems(ctx context.Context, params ListPortfolioItemsParams) ([]models.PortfolioItem, error)
	CountPortfolioItems(ctx context.Context, params ListPortfolioItemsParams) (int64, error)

	CreateService(ctx context.Context, item *models.Service) error
	UpdateService(ctx context.Context, item *models.Service) error
	DeleteService(ctx context.Context, id string) error
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	GetServiceBySlug(ctx context.Context, slug string) (*models.Service, error)
	ListServices(ctx context.Context, params ListServicesParams) ([]models.Service, error)
	CountServices(ctx context.Context, params ListServicesParams) (int64, error)

	CreateProduct(ctx context.Context, item *models.Product) error
	UpdateProduct(ctx context.Context, item *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]models.Product, error)
	CountProducts(ctx context.Context, params ListProductsParams) (int64, error)

	CreateTestimonial(ctx context.Context, item *models.Testimonial) error
	UpdateTestimonial(ctx context.Context, item *models.Testimonial) error
	DeleteTestimonial(ctx context.Context, id string) error
	GetTestimonialByID(ctx context.Context, id string) (*models.Testimonial, error)
	ListTestimonials(ctx context.Context, params ListTestimonialsParams) ([]models.Testimonial, error)
	CountTestimonials(ctx context.Context, params ListTestimonialsParams) (int64, error)

	CreatePartner(ctx context.Context, item *models.Partner) error
	UpdatePartner(ctx context.Context, item *models.Partner) error
	DeletePartner(ctx context.Context, id string) error
	GetPartnerByID(ctx context.Context, id string) (*models.Partner, error)
	ListPartners(ctx context.Context, params ListParams) ([]models.Partner, error)
	CountPartners(ctx context.Context, params ListParams) (int64, error)

	CreateFeature(ctx context.Context, item *models.Feature) error
	UpdateFeature(ctx context.Context, item *models.Feature) error
	DeleteFeature(ctx context.Context, id string) error
	GetFeatureByID(ctx context.Context, id string) (*models.Feature, error)
	ListFeatures(ctx context.Context, params ListParams) ([]models.Feature, error)
	CountFeatures(ctx context.Context, params ListParams) (int64, error)

	CreateContact(ctx context.Context, item *models.Contact) error
	UpdateContactStatus(ctx context.Context, id string, status string) error
	DeleteContact(ctx context.Context, id string) error
	GetContactByID(ctx context.Context, id string) (*models.Contact, error)
	ListContacts(ctx context.Context, params ListContactsParams) ([]models.Contact, error)
	CountContacts(ctx context.Context, params ListContactsParams) (int64, error)

	UpsertSiteContent(ctx context.Context, item *models.SiteContent) error
	GetSiteContentByKey(ctx context.Context, key string) (*models.SiteContent, error)
	ListSiteContents(ctx context.Context) ([]models.SiteContent, error)
}

// LifeRepository covers the admin-only Life-OS collections.
type LifeRepository interface {
	CreateGoal(ctx context.Context, item *models.Goal) error
	UpdateGoal(ctx context.Context, item *models.Goal) error
	DeleteGoal(ctx context.Context, id string) error
	GetGoalByID(ctx context.Context, id string) (*models.Goal, error)
	ListGoals(ctx context.Context, params ListGoalsParams) ([]models.Goal, error)
	CountGoals(ctx context.Context, params ListGoalsParams) (int64, error)

	// Habit writes keep Goal.HabitIDs in step inside the same transaction.
	CreateHabit(ctx context.Context, item *models.Habit) error
	UpdateHabit(ctx context.Context, item *models.Habit) error
	DeleteHabit(ctx context.Context, id string) error
	GetHabitByID(ctx context.Context, id string) (*models.Habit, error)
	ListHabits(ctx context.Context, params ListHabitsParams) ([]models.Habit, error)
	CountHabits(ctx context.Context, params ListHabitsParams) (int64, error)

	UpsertHabitLog(ctx context.Context, item *models.HabitLog) error
	DeleteHabitLog(ctx context.Context, id string) error
	GetHabitLogByID(ctx context.Context, id string) (*models.HabitLog, error)
	ListHabitLogs(ctx context.Context, params ListHabitLogsParams) ([]models.HabitLog, error)
	CountHabitLogs(ctx context.Context, params ListHabitLogsParams) (int64, error)
	ListAllHabitLogs(ctx context.Context, params ListHabitLogsParams) ([]models.HabitLog, error)

	CreateTrade(ctx context.Context, item *models.Trade) error
	UpdateTrade(ctx context.Context, item *models.Trade) error
	DeleteTrade(ctx context.Context, id string) error
	GetTradeByID(ctx context.Context, id string) (*models.Trade, error)
	ListTrades(ctx context.Context, params ListTradesParams) ([]models.Trade, error)
	CountTrades(ctx context.Context, params ListTradesParams) (int64, error)
	// ListAllTrades ignores paging; stats reduce over the whole filtered set.
	ListAllTrades(ctx context.Context, params ListTradesParams) ([]models.Trade, error)

	CreateTransaction(ctx context.Context, item *models.Transaction) error
	UpdateTransaction(ctx context.Context, item *models.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, params ListTransactionsParams) ([]models.Transaction, error)
	CountTransactions(ctx context.Context, params ListTransactionsParams) (int64, error)
	ListAllTransactions(ctx context.Context, params ListTransactionsParams) ([]models.Transaction, error)

	CreateRule(ctx context.Context, item *models.Rule) error
	UpdateRule(ctx context.Context, item *models.Rule) error
	DeleteRule(ctx context.Context, id string) error
	GetRuleByID(ctx context.Context, id string) (*models.Rule, error)
	ListRules(ctx context.Context, params ListRulesParams) ([]models.Rule, error)
	CountRules(ctx context.Context, params ListRulesParams) (int64, error)

	CreateReflection(ctx context.Context, item *models.Reflection) error
	UpdateReflection(ctx context.Context, item *models.Reflection) error
	DeleteReflection(ctx context.Context, id string) error
	GetReflectionByID(ctx context.Context, id string) (*models.Reflection, error)
	ListReflections(ctx context.Context, params ListReflectionsParams) ([]models.Reflection, error)
	CountReflections(ctx context.Context, params ListReflectionsParams) (int64, error)

	CreateQuote(ctx context.Context, item *models.Quote) error
	UpdateQuote(ctx context.Context, item *models.Quote) error
	DeleteQuote(ctx context.Context, id string) error
	GetQuoteByID(ctx context.Context, id string) (*models.Quote, error)
	RandomQuote(ctx context.Context) (*models.Quote, error)
	ListQuotes(ctx context.Context, params ListQuotesParams) ([]models.Quote, error)
	CountQuotes(ctx context.Context, params ListQuotesParams) (int64, error)
}

type Repository interface {
	ContentRepository
	LifeRepository

	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ListParams carries paging and ordering shared by every list query.
type ListParams struct {
	Limit   int
	Offset  int
	OrderBy string
	Asc     *bool
}

type ListBlogPostsParams struct {
	ListParams
	Query     *string
	Tag       *string
	Published *bool
}

type ListPortfolioItemsParams struct {
	ListParams
	Query    *string
	Category *string
	Featured *bool
}

type ListServicesParams struct {
	ListParams
	Active *bool
}

type ListProductsParams struct {
	ListParams
	Query    *string
	Category *string
	Featured *bool
}

type ListTestimonialsParams struct {
	ListParams
	Featured *bool
}

type ListContactsParams struct {
	ListParams
	Query  *string
	Status *string
}

type ListGoalsParams struct {
	ListParams
	Query    *string
	Status   *string
	Category *string
}

type ListHabitsParams struct {
	ListParams
	Active *bool
	GoalID *string
}

type ListHabitLogsParams struct {
	ListParams
	HabitID *string
	From    *time.Time
	To      *time.Time
}

type ListTradesParams struct {
	ListParams
	Query      *string
	Status     *string
	Instrument *string
	Direction  *string
	From       *time.Time
	To         *time.Time
}

type ListTransactionsParams struct {
	ListParams
	Type     *string
	Category *string
	From     *time.Time
	To       *time.Time
}

type ListRulesParams struct {
	ListParams
	Category *string
	Active   *bool
}

type ListReflectionsParams struct {
	ListParams
	Period *string
	From   *time.Time
	To     *time.Time
}

type ListQuotesParams struct {
	ListParams
	Query    *string
	Favorite *bool
}
