package app

import (
	"context"
	"log"
	"time"

	"fridgechef/internal/config"
	httpserver "fridgechef/internal/http"
	"fridgechef/internal/oauth"
	"fridgechef/internal/repository/postgres"
)

const stateCleanupInterval = 5 * time.Minute

// Service represents the auth gateway application
type Service struct {
	config     *config.Config
	db         *postgres.DB
	stateStore *oauth.StateStore
	server     *httpserver.Server
}

// NewService creates and initializes a new Service instance
// This is a convenience wrapper around InitializeService
func NewService() (*Service, error) {
	return InitializeService()
}

// Start starts the service and all background tasks
func (s *Service) Start() error {
	// Start state-nonce cleanup goroutine
	go s.startStateCleanup()

	log.Println("Starting auth gateway...")
	return s.server.Start(":" + s.config.Server.Port)
}

// startStateCleanup runs a background task to clear expired login state nonces
func (s *Service) startStateCleanup() {
	ticker := time.NewTicker(stateCleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.stateStore.Clear()
	}
}

// Shutdown gracefully shuts down the service
func (s *Service) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	s.db.Close()
	return err
}

// ShutdownTimeout exposes the configured graceful-shutdown window so the
// entrypoint can bound the shutdown context.
func (s *Service) ShutdownTimeout() time.Duration {
	return s.config.Server.ShutdownTimeout
}
