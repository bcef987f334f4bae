package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/republichq/republic/internal/republic/store"
	"github.com/republichq/republic/pkg/metricsx"
)

// HousekeepingService periodically deletes expired password reset tokens.
// Expired tokens are already unusable; this only keeps the table small.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Metrics  *metricsx.Metrics // optional

	// Now is overridable in tests.
	Now func() time.Time

	mu      sync.Mutex
	started bool
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewHousekeepingService defaults a non-positive interval to one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		Now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs a sweep immediately and then every Interval until Stop. It is a
// no-op once the service was started or stopped.
func (s *HousekeepingService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop waits for an in-flight sweep to finish. Stopping a service that never
// started only prevents a later Start.
func (s *HousekeepingService) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	started := s.started
	s.mu.Unlock()

	if !started {
		return
	}
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep removes tokens whose expiration has passed and returns how many.
func (s *HousekeepingService) Sweep(ctx context.Context) int64 {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	n, err := s.Store.ResetTokens().DeleteExpired(ctx, s.Now().UTC())
	if err != nil {
		s.Logger.Error("failed to delete expired reset tokens", "error", err)
		return 0
	}
	if s.Metrics != nil {
		s.Metrics.ObserveSweep(n)
	}
	s.Logger.Debug("housekeeping sweep completed", "tokens_deleted", n)
	return n
}
