package infrastructure

import (
	"time"

	"go.uber.org/zap"

	"event-registry-service/internal/blob"
	"event-registry-service/internal/config"
)

// NewBlobClient creates the object store client from explicit configuration.
func NewBlobClient(cfg *config.Config, l *zap.Logger) *blob.Client {
	client := blob.NewClient(blob.Config{
		BaseURL: cfg.Blob.BaseURL,
		Token:   cfg.Blob.Token,
		Timeout: time.Duration(cfg.Blob.TimeoutSeconds) * time.Second,
	}, l)

	l.Info("blob store client configured", zap.String("base_url", cfg.Blob.BaseURL))
	return client
}
