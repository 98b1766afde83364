package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"event-registry-service/cmd/api/di"
	ginrouter "event-registry-service/internal/adapter/gin/router"
	"event-registry-service/internal/adapter/gin/middleware"
)

// SetupHTTPServer creates and configures the REST API server
func SetupHTTPServer(c *di.Container, addr string, l *zap.Logger) *http.Server {
	router := ginrouter.SetupRouter(
		c.UserHandler,
		c.EventHandler,
		c.BlobHandler,
		c.RedisClient,
		middleware.RateLimiterConfig{
			RequestsPerSecond: c.Config.RateLimit.RequestsPerSecond,
			BurstCapacity:     c.Config.RateLimit.BurstCapacity,
			Enabled:           c.Config.RateLimit.Enabled,
		},
		l,
	)

	l.Info("REST API configured", zap.String("address", addr))

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
