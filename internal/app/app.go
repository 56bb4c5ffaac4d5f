// Package app assembles the process: storage, services and the HTTP router.
package app

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"dinoverse/internal/auth"
	"dinoverse/internal/cache"
	"dinoverse/internal/config"
	"dinoverse/internal/db"
	"dinoverse/internal/handler"
	"dinoverse/internal/middleware"
	"dinoverse/internal/notification"
	gormrepository "dinoverse/internal/repository/gorm"
	"dinoverse/internal/service"
	"dinoverse/internal/web"
)

type App struct {
	Config   config.Config
	Logger   *zap.Logger
	DB       *db.DB
	Store    *gormrepository.Store
	Cache    cache.Store
	Notifier *notification.Notifier
	Gate     *auth.Gate

	Site     *service.SiteContentService
	Contacts *service.ContactService
	Metrics  *service.MetricsService
	Digest   *service.DigestService
}

// New opens the database and builds every service. It does not migrate.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := db.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := db.SetTimezone(conn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	store, err := cache.New(cfg.Cache)
	if err != nil {
		_ = db.Close(conn)
		return nil, err
	}

	repo := gormrepository.New(conn.Gorm)
	notifier := notification.New(cfg.Notify, logger)
	metrics := &service.MetricsService{Repo: repo, Location: cfg.App.Location()}

	return &App{
		Config:   cfg,
		Logger:   logger,
		DB:       conn,
		Store:    repo,
		Cache:    store,
		Notifier: notifier,
		Gate:     auth.New(cfg.Auth),
		Site: &service.SiteContentService{
			Repo:   repo,
			Cache:  store,
			TTL:    cfg.Cache.TTL,
			Logger: logger,
		},
		Contacts: &service.ContactService{Repo: repo, Notifier: notifier},
		Metrics:  metrics,
		Digest:   &service.DigestService{Metrics: metrics, Notifier: notifier, Logger: logger},
	}, nil
}

func (a *App) Migrate() error {
	return db.AutoMigrate(a.DB)
}

// Seed stores the default site content sections that are still missing.
func (a *App) Seed(ctx context.Context) (int, error) {
	return a.Site.SeedDefaults(ctx)
}

func (a *App) Close() error {
	if closer, ok := a.Cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			a.Logger.Warn("cache close failed", zap.Error(err))
		}
	}
	return db.Close(a.DB)
}

// Router builds the gin engine with every route registered.
func (a *App) Router() (*gin.Engine, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}
	handler.RegisterValidators()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.AccessLog(a.Logger))
	engine.Use(middleware.CORS(a.Config.Server.CORSOrigins))
	engine.HTMLRender = renderer

	repo := a.Store
	registrars := []interface{ Register(*gin.Engine) }{
		&handler.HealthHandler{DB: a.DB, Cache: a.Cache},
		&handler.AuthHandler{Gate: a.Gate},
		&handler.SiteContentHandler{Service: a.Site, Gate: a.Gate},
		&handler.BlogHandler{Repo: repo, Gate: a.Gate},
		&handler.PortfolioHandler{Repo: repo, Gate: a.Gate},
		&handler.ServiceHandler{Repo: repo, Gate: a.Gate},
		&handler.ProductHandler{Repo: repo, Gate: a.Gate},
		&handler.TestimonialHandler{Repo: repo, Gate: a.Gate},
		&handler.PartnerHandler{Repo: repo, Gate: a.Gate},
		&handler.FeatureHandler{Repo: repo, Gate: a.Gate},
		&handler.ContactHandler{Repo: repo, Service: a.Contacts, Gate: a.Gate},
		&handler.GoalHandler{Repo: repo, Gate: a.Gate},
		&handler.HabitHandler{Repo: repo, Gate: a.Gate},
		&handler.HabitLogHandler{Repo: repo, Metrics: a.Metrics, Gate: a.Gate},
		&handler.TradeHandler{Repo: repo, Metrics: a.Metrics, Gate: a.Gate},
		&handler.TransactionHandler{Repo: repo, Metrics: a.Metrics, Gate: a.Gate},
		&handler.RuleHandler{Repo: repo, Gate: a.Gate},
		&handler.ReflectionHandler{Repo: repo, Metrics: a.Metrics, Gate: a.Gate},
		&handler.QuoteHandler{Repo: repo, Gate: a.Gate},
		&handler.DashboardHandler{Metrics: a.Metrics, Gate: a.Gate},
		&handler.PagesHandler{Repo: repo, Site: a.Site, Contacts: a.Contacts, Logger: a.Logger},
	}
	for _, r := range registrars {
		r.Register(engine)
	}

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return engine, nil
}
