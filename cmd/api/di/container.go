package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"event-registry-service/cmd/api/infrastructure"
	"event-registry-service/internal/adapter/cache"
	"event-registry-service/internal/adapter/db/sqldb"
	ginhandler "event-registry-service/internal/adapter/gin/handler"
	"event-registry-service/internal/adapter/repository/blobstore"
	"event-registry-service/internal/adapter/repository/cached"
	"event-registry-service/internal/blob"
	"event-registry-service/internal/collection"
	"event-registry-service/internal/config"
	"event-registry-service/internal/usecase/event"
	"event-registry-service/internal/usecase/user"
	redisclient "event-registry-service/pkg/redis"

	eventdomain "event-registry-service/internal/domain/event"
	userdomain "event-registry-service/internal/domain/user"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	DB           *gorm.DB
	RedisClient  *redisclient.Client
	BlobClient   *blob.Client
	UserUC       user.Usecase
	EventUC      event.Usecase
	UserHandler  *ginhandler.UserHandler
	EventHandler *ginhandler.EventHandler
	BlobHandler  *ginhandler.BlobHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}

	// Blob client is always built: the proxy surface is served even when
	// entities live in the sql backend.
	c.BlobClient = infrastructure.NewBlobClient(cfg, l)

	// Entity repositories per the configured backend
	var userRepo user.Repository
	var eventRepo event.Repository

	switch cfg.App.StorageBackend {
	case config.BackendBlob:
		store := collection.NewStore(c.BlobClient, l)
		userRepo = blobstore.NewUserRepository(store, l)
		eventRepo = blobstore.NewEventRepository(store, l)
	case config.BackendSQL:
		db, err := infrastructure.NewDatabase(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		userRepo = sqldb.NewUserRepository(db, l)
		eventRepo = sqldb.NewEventRepository(db, l)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %q", cfg.App.StorageBackend)
	}

	// Optional Redis cache layer
	if cfg.Redis.Enabled {
		rdb, err := infrastructure.NewRedisClient(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb

		ttl := time.Duration(cfg.Redis.CacheTTL) * time.Second
		userCache := cache.NewRedisEntityCache[userdomain.User](rdb.Client, "user", ttl, l)
		eventCache := cache.NewRedisEntityCache[eventdomain.Event](rdb.Client, "event", ttl, l)

		userRepo = cached.NewUserRepository(userRepo, userCache, l)
		eventRepo = cached.NewEventRepository(eventRepo, eventCache, l)
	}

	// Usecases
	c.UserUC = user.New(userRepo, l)
	c.EventUC = event.New(eventRepo, userRepo, l)

	// Handlers
	c.UserHandler = ginhandler.NewUserHandler(c.UserUC, l)
	c.EventHandler = ginhandler.NewEventHandler(c.EventUC, l)
	c.BlobHandler = ginhandler.NewBlobHandler(c.BlobClient, l)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
