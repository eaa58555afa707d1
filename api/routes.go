package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/marginote/annotator-api/api/annotations"
	"github.com/marginote/annotator-api/api/export"
	"github.com/marginote/annotator-api/api/health"
	"github.com/marginote/annotator-api/api/media"
	"github.com/marginote/annotator-api/api/types"
	"github.com/marginote/annotator-api/api/version"
	_ "github.com/marginote/annotator-api/docs/swagger"
	annotationService "github.com/marginote/annotator-api/internal/services/annotations"
	mediaService "github.com/marginote/annotator-api/internal/services/media"
	"github.com/marginote/annotator-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Swagger documentation
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler())

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if deps == nil {
		deps = &types.Dependencies{}
	}
	deps.Export = cfg.Export

	// Wire services from the database if the caller didn't inject them
	if deps.DB != nil && deps.DB.DB != nil {
		if deps.AnnotationService == nil {
			repo := annotationService.NewRepository(deps.DB.DB)
			deps.AnnotationService = annotationService.NewService(repo)
		}
		if deps.MediaService == nil {
			deps.MediaService = mediaService.NewService(mediaService.NewRepository(deps.DB.DB))
		}
	}

	rps := cfg.RateLimiting.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.RateLimiting.Burst
	if burst <= 0 {
		burst = 20
	}

	// All annotation traffic hangs off a per-media group so handlers can
	// pull the media id straight from the path.
	v1 := engine.Group("/api/v1")

	mediaGroup := v1.Group("/media")
	mediaGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rps, burst))
	media.RegisterRoutes(mediaGroup, deps)

	perMedia := mediaGroup.Group("/:mediaId")
	annotations.RegisterRoutes(perMedia, deps)
	export.RegisterRoutes(perMedia, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
