package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/housekey/internal/invite/store"
)

// rateWindowRetention keeps closed rate limit windows around long enough
// to debug a limiting incident before the sweeper drops them.
const rateWindowRetention = 24 * time.Hour

// HousekeepingService periodically deletes terminal invite tokens past
// their retention period and rate limit windows that have closed, so
// neither table grows without bound. Access grants are never touched;
// they outlive the tokens that created them.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Retention is how long a token stays queryable after reaching a
	// terminal state. Listings keep showing revoked and exhausted
	// tokens for this long.
	Retention time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service.
// If interval is 0 or negative, defaults to 1 hour. If retention is 0 or
// negative, defaults to 30 days.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}

	return &HousekeepingService{
		Store:     store,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		"interval", s.Interval,
		"retention", s.Retention,
	)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

// run is the main background worker loop.
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

// cleanup performs the actual deletion of stale records.
// Each deletion is independent - failures in one won't stop the others.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	now := time.Now()
	s.Logger.Info("starting housekeeping cleanup")

	// Drop terminal tokens whose retention period has lapsed.
	removed, err := s.Store.Tokens().DeleteTerminalTokensBefore(ctx, now.Add(-s.Retention))
	if err != nil {
		s.Logger.Error("failed to delete stale invite tokens", "error", err)
	} else if removed > 0 {
		s.Logger.Debug("deleted stale invite tokens", "removed", removed)
	}

	// Drop rate limit windows that closed long ago.
	removed, err = s.Store.RateLimits().DeleteWindowsBefore(ctx, now.Add(-rateWindowRetention))
	if err != nil {
		s.Logger.Error("failed to delete closed rate limit windows", "error", err)
	} else if removed > 0 {
		s.Logger.Debug("deleted closed rate limit windows", "removed", removed)
	}

	s.Logger.Info("housekeeping cleanup completed")
}
