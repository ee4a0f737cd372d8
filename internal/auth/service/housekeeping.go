package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/slimyai/gatehouse/internal/auth/store"
)

// sessionRetention keeps expired sessions around briefly for audit before
// deletion.
const sessionRetention = 7 * 24 * time.Hour

// HousekeepingService periodically deletes dead records so the sessions,
// reset_tokens, and login_attempts tables do not grow without bound.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping worker. If interval is 0 or
// negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the worker, blocking until any in-progress
// cleanup finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup deletes dead records. Each deletion is independent; a failure in
// one does not stop the others.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	now := time.Now().UTC()
	s.Logger.Debug("starting housekeeping cleanup")

	if err := s.Store.Sessions().DeleteSessionsExpiredBefore(ctx, now.Add(-sessionRetention)); err != nil {
		s.Logger.Error("failed to delete dead sessions", "error", err)
	}

	if err := s.Store.ResetTokens().DeleteDeadResetTokens(ctx, now); err != nil {
		s.Logger.Error("failed to delete dead reset tokens", "error", err)
	}

	if err := s.Store.LoginAttempts().DeleteAttemptsBefore(ctx, now.Add(-attemptRetention)); err != nil {
		s.Logger.Error("failed to prune login attempts", "error", err)
	}

	s.Logger.Debug("housekeeping cleanup completed")
}
