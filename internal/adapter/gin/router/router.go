package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"event-registry-service/internal/adapter/gin/handler"
	"event-registry-service/internal/adapter/gin/middleware"
	redisclient "event-registry-service/pkg/redis"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	eventHandler *handler.EventHandler,
	blobHandler *handler.BlobHandler,
	redisClient *redisclient.Client,
	rateLimitCfg middleware.RateLimiterConfig,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	if redisClient != nil {
		router.Use(middleware.RateLimiter(redisClient.Client, rateLimitCfg, log))
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "event-registry-service",
		})
	})

	// Raw blob proxy surface
	router.GET("/list", blobHandler.List)
	blobs := router.Group("/blob")
	{
		blobs.GET("/*key", blobHandler.Get)
		blobs.POST("/*key", blobHandler.Post)
		blobs.PUT("/*key", blobHandler.Put)
		blobs.DELETE("/*key", blobHandler.Delete)
	}

	// API v1 routes
	v1 := router.Group("/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		events := v1.Group("/events")
		{
			events.POST("", eventHandler.CreateEvent)
			events.GET("", eventHandler.ListEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.PUT("/:id", eventHandler.UpdateEvent)
			events.DELETE("/:id", eventHandler.DeleteEvent)

			events.POST("/:id/participants", eventHandler.AddParticipant)
			events.DELETE("/:id/participants/:userId", eventHandler.RemoveParticipant)
			events.PUT("/:id/participants/:userId/payment", eventHandler.UpdatePaymentStatus)
		}
	}

	return router
}
