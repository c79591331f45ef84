package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/authorization"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/background"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/config"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/handlers"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/middleware"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/repository"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/service"
	"github.com/momentouslyfe-web/funnelcart-sub001/pkg/cache"
	"github.com/momentouslyfe-web/funnelcart-sub001/pkg/logger"
)

type Application struct {
	cfg *config.Config

	db    *gorm.DB
	cache *cache.Cache

	rateLimits   *middleware.RateLimitManager
	scheduler    *background.Scheduler
	aiProviders  *service.AIProviderRegistry
	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	router *gin.Engine
	server *http.Server
}

type repositoryContainer struct {
	Setting        repository.SettingRepository
	FunnelPage     repository.FunnelPageRepository
	PageGeneration repository.PageGenerationRepository
}

type serviceContainer struct {
	PageGeneration *service.PageGenerationService
	AISettings     *service.AISettingsService
	FunnelPage     *service.FunnelPageService
}

type handlerContainer struct {
	AIPage     *handlers.AIPageHandler
	FunnelPage *handlers.FunnelPageHandler
}

func New(ctx context.Context, cfg *config.Config) (*Application, error) {
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

	if err := app.createIndexes(); err != nil {
		return nil, err
	}

	if err := app.initCache(); err != nil {
		return nil, err
	}
	app.initRepositories()
	if err := app.initServices(); err != nil {
		return nil, err
	}
	app.initHandlers()

	if err := app.initScheduler(ctx); err != nil {
		return nil, err
	}

	app.rateLimits = middleware.NewRateLimitManager(ctx)
	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   cfg.AIRequestTimeout + 15*time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.rateLimits != nil {
		a.rateLimits.Shutdown()
	}

	if a.scheduler != nil {
		if err := a.scheduler.Shutdown(ctx); err != nil {
			logger.Error(err, "Failed to stop background scheduler", nil)
		}
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
	logger.Info("Connecting to database", nil)

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
	sqlDB.SetMaxOpenConns(100)
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
		&models.Setting{},
		&models.FunnelPage{},
		&models.PageGeneration{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) createIndexes() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Creating database indexes", nil)

	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_funnel_pages_published ON funnel_pages(slug) WHERE published = true",
		"CREATE INDEX IF NOT EXISTS idx_funnel_pages_funnel_position ON funnel_pages(funnel_id, position)",
		"CREATE INDEX IF NOT EXISTS idx_funnel_pages_blocks ON funnel_pages USING GIN (blocks)",
		"CREATE INDEX IF NOT EXISTS idx_page_generations_created_at ON page_generations(created_at DESC)",
	}

	for _, stmt := range statements {
		if err := a.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func (a *Application) initCache() error {
	cacheService, err := cache.NewCache(a.cfg.RedisURL, a.cfg.EnableCache)
	if err != nil {
		return err
	}
	a.cache = cacheService
	if cacheService.Enabled() {
		logger.Info("Redis cache connected", nil)
	}
	return nil
}

func (a *Application) initRepositories() {
	a.repositories = repositoryContainer{
		Setting:        repository.NewSettingRepository(a.db),
		FunnelPage:     repository.NewFunnelPageRepository(a.db),
		PageGeneration: repository.NewPageGenerationRepository(a.db),
	}
}

func (a *Application) initServices() error {
	a.aiProviders = service.NewAIProviderRegistry(service.AIProviderOptions{
		DefaultProvider:   a.cfg.AIDefaultProvider,
		GeminiBaseURL:     a.cfg.GeminiBaseURL,
		OpenRouterBaseURL: a.cfg.OpenRouterBaseURL,
		MaxTokens:         a.cfg.AIMaxTokens,
		AppURL:            a.cfg.AppURL,
		AppName:           a.cfg.AppName,
	})

	envKeys := map[string]string{
		models.AIProviderGemini:     a.cfg.GeminiAPIKey,
		models.AIProviderOpenRouter: a.cfg.OpenRouterAPIKey,
	}
	for provider, key := range envKeys {
		if key == "" {
			continue
		}
		if err := a.aiProviders.Configure(provider, key); err != nil {
			return fmt.Errorf("failed to configure %s: %w", provider, err)
		}
	}

	a.services = serviceContainer{
		PageGeneration: service.NewPageGenerationService(a.aiProviders, a.repositories.PageGeneration, service.PageGenerationOptions{
			StrictBlockTypes: a.cfg.AIStrictBlockTypes,
			Timeout:          a.cfg.AIRequestTimeout,
		}),
		AISettings: service.NewAISettingsService(a.repositories.Setting, a.aiProviders),
		FunnelPage: service.NewFunnelPageService(a.repositories.FunnelPage, a.repositories.PageGeneration, a.cache),
	}

	if err := a.services.AISettings.LoadPersisted(); err != nil {
		return err
	}

	status := a.aiProviders.Status()
	logger.Info("AI providers ready", map[string]interface{}{
		"default":    a.aiProviders.ResolveProvider(""),
		"gemini":     status.Gemini,
		"openrouter": status.OpenRouter,
		"strict":     a.cfg.AIStrictBlockTypes,
	})
	return nil
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		AIPage:     handlers.NewAIPageHandler(a.services.PageGeneration, a.services.AISettings),
		FunnelPage: handlers.NewFunnelPageHandler(a.services.FunnelPage),
	}
}

const generationPruneInterval = 6 * time.Hour

func (a *Application) initScheduler(ctx context.Context) error {
	a.scheduler = background.NewScheduler(background.SchedulerConfig{WorkerCount: 1})
	a.scheduler.Start(ctx)

	retention := a.cfg.AIGenerationRetention
	if retention <= 0 {
		return nil
	}

	generations := a.services.PageGeneration
	return a.scheduler.Every(background.Job{
		Name:        "prune_page_generations",
		Timeout:     time.Minute,
		RetryPolicy: background.RetryPolicy{MaxRetries: 2, Backoff: 30 * time.Second},
		Run: func(ctx context.Context) error {
			_, err := generations.PruneGenerations(ctx, retention)
			return err
		},
	}, generationPruneInterval)
}

func (a *Application) initRouter() {
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
	router.Use(middleware.RateLimitMiddleware(a.rateLimits, a.cfg))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", a.health)

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("")
		{
			public.GET("/pages/:slug", a.handlers.FunnelPage.GetBySlug)
		}

		ai := v1.Group("/ai/pages")
		ai.Use(middleware.AuthMiddleware(a.cfg.JWTSecret))
		ai.Use(middleware.RequirePermission(authorization.PermissionGeneratePages))
		{
			ai.POST("/generate", middleware.GenerationRateLimitMiddleware(a.rateLimits, a.cfg), a.handlers.AIPage.Generate)
			ai.GET("/catalog", a.handlers.AIPage.Catalog)
			ai.GET("/templates", a.handlers.AIPage.Templates)
			ai.GET("/templates/:type", a.handlers.AIPage.Template)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(a.cfg.JWTSecret))
		{
			providers := admin.Group("/ai/providers", middleware.RequirePermission(authorization.PermissionManageAIProviders))
			providers.GET("/status", a.handlers.AIPage.ProviderStatus)
			providers.PUT("/:provider", a.handlers.AIPage.ConfigureProvider)
			providers.DELETE("/:provider", a.handlers.AIPage.RemoveProvider)

			generations := admin.Group("/ai/generations", middleware.RequirePermission(authorization.PermissionViewGenerations))
			generations.GET("", a.handlers.AIPage.RecentGenerations)
			generations.GET("/:id", a.handlers.AIPage.GetGeneration)

			pages := admin.Group("/funnel-pages", middleware.RequirePermission(authorization.PermissionManagePages))
			pages.POST("", a.handlers.FunnelPage.Create)
			pages.GET("", a.handlers.FunnelPage.List)
			pages.GET("/:id", a.handlers.FunnelPage.GetByID)
			pages.PUT("/:id/blocks", a.handlers.FunnelPage.UpdateBlocks)
			pages.POST("/:id/apply/:generationId", a.handlers.FunnelPage.ApplyGeneration)
			pages.DELETE("/:id", a.handlers.FunnelPage.Delete)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})

	a.router = router
}

func (a *Application) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	healthy := true

	if sqlDB, err := a.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		checks["database"] = "unavailable"
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if a.cache.Enabled() {
		if err := a.cache.Ping(ctx); err != nil {
			checks["cache"] = "unavailable"
			healthy = false
		} else {
			checks["cache"] = "ok"
		}
	}

	status := a.aiProviders.Status()
	var configured []string
	if status.Gemini {
		configured = append(configured, models.AIProviderGemini)
	}
	if status.OpenRouter {
		configured = append(configured, models.AIProviderOpenRouter)
	}
	checks["ai_providers"] = strings.Join(configured, ",")

	code := http.StatusOK
	state := "healthy"
	if !healthy {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{
		"status": state,
		"checks": checks,
		"time":   time.Now().Format(time.RFC3339),
	})
}
