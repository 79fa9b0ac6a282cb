package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"book-inventory/internal/shared/middleware"
	"book-inventory/internal/shared/response"
	"book-inventory/pkg/container"
)

func SetupRouter(c *container.Container) (*gin.Engine, error) {
	router := gin.New()

	// c.ClientIP keys the admin login limiter
	if err := router.SetTrustedProxies(c.Config.App.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigins),
	)

	requireAdmin := middleware.RequireAdmin(c.JWTManager)

	// browser target of RequireAdmin redirects
	router.GET(middleware.AdminLoginPagePath, c.AdminHandler.Page)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))
		v1.GET("/search", c.SearchHandler.Search)

		setupAdminRoutes(v1, c)
		setupBookRoutes(v1, c, requireAdmin)
		setupAuthorRoutes(v1, c, requireAdmin)
		setupGenreRoutes(v1, c, requireAdmin)
		setupLanguageRoutes(v1, c, requireAdmin)
		setupReportRoutes(v1, c, requireAdmin)
	}

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	return router, nil
}

// ========================================
// ADMIN SESSION ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	{
		admin.POST("/login", c.AdminHandler.Login)
		admin.POST("/logout", c.AdminHandler.Logout)
		admin.GET("/status", c.AdminHandler.Status)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container, requireAdmin gin.HandlerFunc) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/form-options", c.BookHandler.GetFormOptions)
		books.GET("/:id", c.BookHandler.GetBook)

		books.GET("/:id/edit", requireAdmin, c.BookHandler.GetEditForm)
		books.POST("", requireAdmin, c.BookHandler.CreateBook)
		books.PATCH("/:id", requireAdmin, c.BookHandler.UpdateBook)
		books.DELETE("/:id", requireAdmin, c.BookHandler.DeleteBook)
		books.POST("/:id/cover", requireAdmin, c.BookHandler.UploadCover)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container, requireAdmin gin.HandlerFunc) {
	authors := v1.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.GET("/:id/books", c.AuthorHandler.Books)

		authors.GET("/:id/edit", requireAdmin, c.AuthorHandler.GetEditForm)
		authors.POST("", requireAdmin, c.AuthorHandler.Create)
		authors.PATCH("/:id", requireAdmin, c.AuthorHandler.Update)
		authors.DELETE("/:id", requireAdmin, c.AuthorHandler.Delete)
	}
}

// ========================================
// GENRE & LANGUAGE ROUTES
// ========================================
func setupGenreRoutes(v1 *gin.RouterGroup, c *container.Container, requireAdmin gin.HandlerFunc) {
	genres := v1.Group("/genres")
	{
		genres.GET("", c.GenreHandler.List)
		genres.GET("/:id", c.GenreHandler.GetByID)
		genres.GET("/:id/books", c.GenreHandler.Books)
		genres.PATCH("/:id", requireAdmin, c.GenreHandler.Update)
		genres.DELETE("/:id", requireAdmin, c.GenreHandler.Delete)
	}
}

func setupLanguageRoutes(v1 *gin.RouterGroup, c *container.Container, requireAdmin gin.HandlerFunc) {
	languages := v1.Group("/languages")
	{
		languages.GET("", c.LanguageHandler.List)
		languages.GET("/:id", c.LanguageHandler.GetByID)
		languages.GET("/:id/books", c.LanguageHandler.Books)
		languages.PATCH("/:id", requireAdmin, c.LanguageHandler.Update)
		languages.DELETE("/:id", requireAdmin, c.LanguageHandler.Delete)
	}
}

// ========================================
// REPORT ROUTES
// ========================================
func setupReportRoutes(v1 *gin.RouterGroup, c *container.Container, requireAdmin gin.HandlerFunc) {
	reports := v1.Group("/reports", requireAdmin)
	{
		reports.GET("/inventory.xlsx", c.ReportHandler.Inventory)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{"database": "ok", "cache": "ok"}

		if err := c.DB.HealthCheck(checkCtx); err != nil {
			status = http.StatusServiceUnavailable
			checks["database"] = err.Error()
		}
		if err := c.Cache.Ping(checkCtx); err != nil {
			checks["cache"] = err.Error()
		}

		data := gin.H{
			"version": c.Config.App.Version,
			"checks":  checks,
		}
		if stats, err := c.DB.Stats(); err == nil {
			data["pool"] = stats
		}

		if status != http.StatusOK {
			response.ErrorWithDetails(ctx, status, "UNHEALTHY", "Service unavailable", data)
			return
		}
		response.Success(ctx, status, "healthy", data)
	}
}
