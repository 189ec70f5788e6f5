package app

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"konsert-backend/internal/background"
	"konsert-backend/internal/config"
	"konsert-backend/internal/handlers"
	"konsert-backend/internal/middleware"
	"konsert-backend/internal/models"
	"konsert-backend/internal/repository"
	"konsert-backend/internal/seed"
	"konsert-backend/internal/service"
	"konsert-backend/pkg/cache"
	"konsert-backend/pkg/logger"
	"konsert-backend/pkg/utils"
	"konsert-backend/web"
)

const (
	seedPagesJob = "seed-pages"
	warmCacheJob = "warm-cache"
)

type Application struct {
	cfg *config.Config

	db    *gorm.DB
	cache *cache.Cache

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	jobs        *background.Runner
	rateLimits  *middleware.RateLimitManager
	stopWorkers context.CancelFunc

	templateHandler *handlers.TemplateHandler
	router          *gin.Engine
	server          *http.Server
}

type repositoryContainer struct {
	Artist  repository.ArtistRepository
	Venue   repository.VenueRepository
	Page    repository.PageRepository
	Setting repository.SettingRepository
}

type serviceContainer struct {
	Artist   *service.ArtistService
	Venue    *service.VenueService
	Page     *service.PageService
	Homepage *service.HomepageService
	Draft    *service.DraftService
}

type handlerContainer struct {
	Artist   *handlers.ArtistHandler
	Venue    *handlers.VenueHandler
	Page     *handlers.PageHandler
	Homepage *handlers.HomepageHandler
	Slug     *handlers.SlugHandler
	Draft    *handlers.DraftHandler
}

func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{cfg: cfg}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.runMigrations(); err != nil {
		return nil, err
	}

	app.initCache()
	app.initRepositories()
	app.initServices()
	app.initWorkers()

	if err := app.initHandlers(); err != nil {
		return nil, err
	}

	if err := app.initRouter(); err != nil {
		return nil, err
	}

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
		"draft_mode":  a.cfg.DraftModeEnabled(),
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.jobs != nil {
		if err := a.jobs.Shutdown(ctx); err != nil {
			logger.Error(err, "Background jobs did not stop in time", nil)
		}
	}

	if a.rateLimits != nil {
		_ = a.rateLimits.Shutdown()
	}

	if a.stopWorkers != nil {
		a.stopWorkers()
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", map[string]interface{}{"host": a.cfg.DBHost, "name": a.cfg.DBName})

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(
		&models.Artist{},
		&models.Venue{},
		&models.Page{},
		&models.Setting{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) initCache() {
	c, err := cache.NewCache(a.cfg.RedisURL, a.cfg.EnableCache, a.cfg.CacheTTL)
	if err != nil {
		logger.Error(err, "Redis unavailable, continuing without cache", map[string]interface{}{"addr": a.cfg.RedisURL})
		c, _ = cache.NewCache("", false, a.cfg.CacheTTL)
	}
	a.cache = c
}

func (a *Application) initRepositories() {
	a.repositories = repositoryContainer{
		Artist:  repository.NewArtistRepository(a.db),
		Venue:   repository.NewVenueRepository(a.db),
		Page:    repository.NewPageRepository(a.db),
		Setting: repository.NewSettingRepository(a.db),
	}
}

func (a *Application) initServices() {
	artists := service.NewArtistService(a.repositories.Artist, a.cache)
	venues := service.NewVenueService(a.repositories.Venue, a.cache)

	a.services = serviceContainer{
		Artist:   artists,
		Venue:    venues,
		Page:     service.NewPageService(a.repositories.Page, a.cache),
		Homepage: service.NewHomepageService(a.repositories.Setting, artists, venues, a.cache, a.cfg.SiteName),
		Draft:    service.NewDraftService(a.cfg.DraftModeSecret, a.cfg.DraftModeSigningKey, a.cfg.DraftModeTTL),
	}
}

// initWorkers starts the job runner and the rate limiter cleanup, then queues
// the default pages and an initial cache fill.
func (a *Application) initWorkers() {
	ctx, cancel := context.WithCancel(context.Background())
	a.stopWorkers = cancel

	a.rateLimits = middleware.NewRateLimitManager(ctx)

	a.jobs = background.NewRunner(2, 16)
	a.jobs.Start(ctx)

	if err := a.jobs.Enqueue(background.Job{
		Name:       seedPagesJob,
		Timeout:    30 * time.Second,
		MaxRetries: 5,
		Backoff:    2 * time.Second,
		Run: func(ctx context.Context) error {
			return seed.EnsureDefaultPages(a.services.Page)
		},
	}); err != nil {
		logger.Error(err, "Failed to queue default pages", nil)
	}

	a.scheduleCacheWarm()
}

// scheduleCacheWarm refills the published listings and the homepage so the
// first visitors after a flush hit redis.
func (a *Application) scheduleCacheWarm() {
	if !a.cache.Enabled() {
		return
	}

	err := a.jobs.Enqueue(background.Job{
		Name:    warmCacheJob,
		Timeout: 30 * time.Second,
		Run: func(ctx context.Context) error {
			if _, err := a.services.Artist.GetAll(false); err != nil {
				return err
			}
			if _, err := a.services.Venue.GetAll(false); err != nil {
				return err
			}
			if _, err := a.services.Page.GetAll(false); err != nil {
				return err
			}
			_, err := a.services.Homepage.Resolve(false)
			return err
		},
	})
	if err != nil {
		logger.Warn("Cache warm-up not queued", map[string]interface{}{"error": err.Error()})
	}
}

func (a *Application) initHandlers() error {
	a.handlers = handlerContainer{
		Artist:   handlers.NewArtistHandler(a.services.Artist),
		Venue:    handlers.NewVenueHandler(a.services.Venue),
		Page:     handlers.NewPageHandler(a.services.Page),
		Homepage: handlers.NewHomepageHandler(a.services.Homepage),
		Slug:     handlers.NewSlugHandler(),
		Draft:    handlers.NewDraftHandler(a.services.Draft, a.cfg.IsProduction()),
	}

	templates, err := utils.LoadTemplates(web.FS, web.TemplatesDir)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	logger.Info("Templates loaded successfully", map[string]interface{}{"count": len(templates.Templates())})

	templateHandler, err := handlers.NewTemplateHandler(
		a.services.Artist,
		a.services.Venue,
		a.services.Page,
		a.services.Homepage,
		a.cfg,
		templates,
	)
	if err != nil {
		return err
	}
	a.templateHandler = templateHandler

	return nil
}

func (a *Application) initRouter() error {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.WithRateLimitManager(a.rateLimits))
	router.Use(middleware.RateLimitMiddleware(a.cfg))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.DraftModeMiddleware(a.services.Draft))

	router.GET("/health", a.health)

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	staticFS, err := fs.Sub(web.FS, "static")
	if err != nil {
		return fmt.Errorf("failed to open static assets: %w", err)
	}
	router.StaticFS("/static", http.FS(staticFS))

	router.GET("/", a.templateHandler.RenderIndex)
	router.GET("/artists", a.templateHandler.RenderArtists)
	router.GET("/artists/:slug", a.templateHandler.RenderArtist)
	router.GET("/venues", a.templateHandler.RenderVenues)
	router.GET("/venues/:slug", a.templateHandler.RenderVenue)
	router.GET("/:slug", a.templateHandler.RenderPage)

	draft := router.Group("/api/draft-mode")
	{
		draft.GET("/enable", a.handlers.Draft.Enable)
		draft.GET("/disable", a.handlers.Draft.Disable)
	}

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("")
		{
			public.GET("/artists", a.handlers.Artist.GetAll)
			public.GET("/artists/:slug", a.handlers.Artist.GetBySlug)
			public.GET("/venues", a.handlers.Venue.GetAll)
			public.GET("/venues/:slug", a.handlers.Venue.GetBySlug)
			public.GET("/pages", a.handlers.Page.GetAll)
			public.GET("/pages/:slug", a.handlers.Page.GetBySlug)
			public.GET("/homepage", a.handlers.Homepage.Get)

			public.POST("/slugs/generate", a.handlers.Slug.Generate)
			public.POST("/slugs/validate", a.handlers.Slug.Validate)
			public.POST("/slugs/normalize", a.handlers.Slug.Normalize)
		}

		studio := v1.Group("/studio")
		studio.Use(middleware.StudioAuthMiddleware(a.cfg.StudioAPIToken))
		{
			studio.GET("/artists", a.handlers.Artist.GetAllAdmin)
			studio.POST("/artists", a.handlers.Artist.Create)
			studio.GET("/artists/:id", a.handlers.Artist.GetByID)
			studio.PUT("/artists/:id", a.handlers.Artist.Update)
			studio.DELETE("/artists/:id", a.handlers.Artist.Delete)
			studio.PUT("/artists/:id/publish", a.handlers.Artist.Publish)
			studio.PUT("/artists/:id/unpublish", a.handlers.Artist.Unpublish)

			studio.GET("/venues", a.handlers.Venue.GetAllAdmin)
			studio.POST("/venues", a.handlers.Venue.Create)
			studio.GET("/venues/:id", a.handlers.Venue.GetByID)
			studio.PUT("/venues/:id", a.handlers.Venue.Update)
			studio.DELETE("/venues/:id", a.handlers.Venue.Delete)
			studio.PUT("/venues/:id/publish", a.handlers.Venue.Publish)
			studio.PUT("/venues/:id/unpublish", a.handlers.Venue.Unpublish)

			studio.GET("/pages", a.handlers.Page.GetAllAdmin)
			studio.POST("/pages", a.handlers.Page.Create)
			studio.GET("/pages/:id", a.handlers.Page.GetByID)
			studio.PUT("/pages/:id", a.handlers.Page.Update)
			studio.DELETE("/pages/:id", a.handlers.Page.Delete)
			studio.PUT("/pages/:id/publish", a.handlers.Page.Publish)
			studio.PUT("/pages/:id/unpublish", a.handlers.Page.Unpublish)

			studio.GET("/homepage", a.handlers.Homepage.GetSettings)
			studio.PUT("/homepage", a.handlers.Homepage.Update)

			studio.DELETE("/cache", handlers.ClearCache(a.cache, a.scheduleCacheWarm))
		}
	}

	router.NoRoute(a.templateHandler.RenderNotFound)

	a.router = router
	return nil
}

func (a *Application) health(c *gin.Context) {
	status := http.StatusOK
	health := "healthy"
	database := "ok"

	if sqlDB, err := a.db.DB(); err != nil {
		database = "unavailable"
		status = http.StatusServiceUnavailable
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			database = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}
	if status != http.StatusOK {
		health = "degraded"
	}

	c.JSON(status, gin.H{
		"status":   health,
		"database": database,
		"cache":    a.cache.Enabled(),
		"time":     time.Now().Format(time.RFC3339),
	})
}
