package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"book-inventory/internal/config"
	infraCache "book-inventory/internal/infrastructure/cache"
	"book-inventory/internal/infrastructure/database"
	"book-inventory/internal/infrastructure/queue"
	"book-inventory/internal/infrastructure/storage"
	"book-inventory/pkg/cache"
	"book-inventory/pkg/jwt"
	"book-inventory/pkg/logger"

	adminHandler "book-inventory/internal/domains/admin/handler"
	adminService "book-inventory/internal/domains/admin/service"
	authorHandler "book-inventory/internal/domains/author/handler"
	authorRepo "book-inventory/internal/domains/author/repository"
	authorService "book-inventory/internal/domains/author/service"
	bookHandler "book-inventory/internal/domains/book/handler"
	bookRepo "book-inventory/internal/domains/book/repository"
	bookService "book-inventory/internal/domains/book/service"
	reportHandler "book-inventory/internal/domains/report/handler"
	reportService "book-inventory/internal/domains/report/service"
	searchHandler "book-inventory/internal/domains/search/handler"
	searchRepo "book-inventory/internal/domains/search/repository"
	searchService "book-inventory/internal/domains/search/service"
	taxonomyHandler "book-inventory/internal/domains/taxonomy/handler"
	taxonomyModel "book-inventory/internal/domains/taxonomy/model"
	taxonomyRepo "book-inventory/internal/domains/taxonomy/repository"
	taxonomyService "book-inventory/internal/domains/taxonomy/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph shared by the API and the worker
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Storage    *storage.MinIOStorage // nil when MinIO is unreachable
	Queue      *asynq.Client

	// Repositories
	BookRepo     bookRepo.Repository
	AuthorRepo   authorRepo.Repository
	TaxonomyRepo taxonomyRepo.Repository
	SearchRepo   searchRepo.Repository

	// Services
	BookService     *bookService.BookService
	AuthorService   authorService.Service
	GenreService    taxonomyService.Service
	LanguageService taxonomyService.Service
	SearchService   searchService.Service
	AdminService    adminService.Service
	ReportService   reportService.Service

	// Handlers
	BookHandler     *bookHandler.Handler
	AuthorHandler   *authorHandler.AuthorHandler
	GenreHandler    *taxonomyHandler.TaxonomyHandler
	LanguageHandler *taxonomyHandler.TaxonomyHandler
	SearchHandler   *searchHandler.SearchHandler
	AdminHandler    *adminHandler.AdminHandler
	ReportHandler   *reportHandler.ReportHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer connects the infrastructure and wires every domain.
// Order: infrastructure, repositories, services, handlers.
// PostgreSQL is required; Redis falls back to an in-process cache and
// MinIO to no cover/report storage.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Str("env", cfg.App.Environment).Msg("[CONTAINER] Initializing")

	c := &Container{Config: cfg}

	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initRepositories()

	if err := c.initServices(); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	c.initHandlers()

	log.Info().Msg("[CONTAINER] Ready")
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	// PostgreSQL
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(connectCtx); err != nil {
		db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// Redis cache, non-critical
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(connectCtx); err != nil {
		logger.Warn("[CONTAINER] Redis unavailable, using in-memory cache", err)
		_ = redisCache.Close()
		c.Cache = cache.NewMemoryCache()
	} else {
		c.Cache = redisCache
	}

	// MinIO, non-critical
	store, err := storage.NewMinIOStorage(connectCtx, cfg.MinIO)
	if err != nil {
		logger.Warn("[CONTAINER] MinIO unavailable, cover uploads and report archiving disabled", err)
	} else {
		c.Storage = store
	}

	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	c.JWTManager = jwt.NewManager(cfg.Admin.JWTSecret, cfg.Admin.SessionTTL)

	_, redis := c.Cache.(*infraCache.RedisCache)
	logger.Info("[CONTAINER] Infrastructure ready", map[string]interface{}{
		"redis": redis,
		"minio": c.Storage != nil,
	})
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.AuthorRepo = authorRepo.NewPostgresRepository(pool)
	c.TaxonomyRepo = taxonomyRepo.NewPostgresRepository(pool)
	c.SearchRepo = searchRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() error {
	ttl := c.Config.Cache.TTL

	// left nil without MinIO
	var covers bookService.CoverStorage
	var reportStore reportService.Uploader
	if c.Storage != nil {
		covers = c.Storage
		reportStore = c.Storage
	}

	c.BookService = bookService.NewService(c.BookRepo, c.Cache, ttl, storage.NewImageProcessor(), covers, c.Queue)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.BookRepo, c.Cache, ttl)
	c.GenreService = taxonomyService.NewService(taxonomyModel.Genres, c.TaxonomyRepo, c.BookRepo, c.Cache, ttl)
	c.LanguageService = taxonomyService.NewService(taxonomyModel.Languages, c.TaxonomyRepo, c.BookRepo, c.Cache, ttl)
	c.SearchService = searchService.NewSearchService(c.SearchRepo)
	c.ReportService = reportService.NewReportService(c.BookRepo, reportStore)

	admin, err := adminService.NewAdminService(c.Config.Admin, c.JWTManager)
	if err != nil {
		return err
	}
	c.AdminService = admin

	return nil
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.GenreHandler = taxonomyHandler.NewTaxonomyHandler(c.GenreService)
	c.LanguageHandler = taxonomyHandler.NewTaxonomyHandler(c.LanguageService)
	c.SearchHandler = searchHandler.NewSearchHandler(c.SearchService)
	c.AdminHandler = adminHandler.NewAdminHandler(c.AdminService, c.JWTManager, c.Config.Admin.CookieSecure)
	c.ReportHandler = reportHandler.NewReportHandler(c.ReportService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases every connection the container opened. Safe on a partial container.
func (c *Container) Cleanup() {
	log.Info().Msg("[CONTAINER] Cleaning up")

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Error("[CONTAINER] Failed to close queue client", err)
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("[CONTAINER] Failed to close Redis", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("[CONTAINER] Failed to close database", err)
		}
	}
}
