package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/venueflow/portal-backend/internal/handler"
	"github.com/venueflow/portal-backend/internal/middleware"
	"github.com/venueflow/portal-backend/pkg/jwt"
)

// Handlers bundles everything the router needs
type Handlers struct {
	Content  *handler.ContentHandler
	Versions *handler.VersionHandler
	Locks    *handler.LockHandler
	Public   *handler.PublicHandler
	Activity *handler.ActivityHandler
}

// Setup configures the CMS admin API and the public content read API
func Setup(router *gin.Engine, h Handlers, jwtManager *jwt.Manager, redisClient *redis.Client, publicCacheTTL time.Duration) {
	auth := middleware.JWTAuth(jwtManager)
	editor := middleware.RequireEditor()
	admin := middleware.RequireAdmin()

	// Admin CMS API
	cms := router.Group("/api/cms", auth, editor)

	cms.GET("/content-types", h.Content.ListTypes)
	cms.POST("/content-types", admin, h.Content.CreateType)
	cms.PUT("/content-types/:id", admin, h.Content.UpdateType)

	content := cms.Group("/content")
	content.GET("", h.Content.List)
	content.POST("", h.Content.Create)
	content.GET("/:id", h.Content.GetByKey) // :id carries the item key here
	content.PUT("/:id", h.Content.Update)
	content.DELETE("/:id", admin, h.Content.Delete)
	content.POST("/:id/publish", admin, h.Content.Publish)
	content.POST("/:id/unpublish", admin, h.Content.Unpublish)

	content.GET("/:id/versions", h.Versions.List)
	content.POST("/:id/restore/:versionId", admin, h.Versions.Restore)

	content.POST("/:id/lock", h.Locks.Acquire)
	content.GET("/:id/lock", h.Locks.Status)
	content.DELETE("/lock/:lockToken", h.Locks.Release)
	content.PUT("/lock/:lockToken/renew", h.Locks.Renew)

	cms.GET("/activity", admin, h.Activity.List)

	// Public content read API (published items only)
	public := router.Group("/api/content")
	if redisClient != nil {
		public.Use(middleware.CacheWithTTL(redisClient, publicCacheTTL))
	}
	public.GET("", h.Public.Bulk)
	public.GET("/:key", h.Public.GetByKey)
}
