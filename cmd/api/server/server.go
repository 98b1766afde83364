package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"event-registry-service/cmd/api/di"
	"event-registry-service/internal/config"
)

// Server holds the HTTP server and its dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance over the container's handlers
func New(cfg *config.Config, l *zap.Logger, c *di.Container) *Server {
	return &Server{
		Config: cfg,
		Logger: l,
		HTTP:   SetupHTTPServer(c, ":"+cfg.App.HTTPPort, l),
	}
}

// Start runs the HTTP server until it is shut down
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))

	if err := s.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
