package source

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/nickcwilkins/gtfsrt-arrivals/arrivals"
	"github.com/nickcwilkins/gtfsrt-arrivals/config"
	"github.com/nickcwilkins/gtfsrt-arrivals/gtfsrt"
	"github.com/nickcwilkins/gtfsrt-arrivals/metrics"
	"github.com/nickcwilkins/gtfsrt-arrivals/report"
)

// Source runs the refresh cycle for one configured GTFS-RT publisher and
// owns the snapshot it produces. Readers always see either the previous
// complete snapshot or the new one, never a partial build.
type Source struct {
	name     string
	cfg      config.SourceConfig
	client   *gtfsrt.Client
	logger   *slog.Logger
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time

	mu          sync.RWMutex
	snapshot    *arrivals.Snapshot
	alerts      *arrivals.AlertIndex
	generation  uint64
	lastRefresh time.Time
	lastErr     error
}

// New builds a Source from its configuration. The logger must not be nil.
func New(cfg config.SourceConfig, logger *slog.Logger) *Source {
	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = config.DefaultTimeoutSec
	}
	if cfg.RefreshIntervalSec <= 0 {
		cfg.RefreshIntervalSec = config.DefaultRefreshIntervalSec
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	return &Source{
		name:     cfg.Name,
		cfg:      cfg,
		client:   gtfsrt.NewClient(&http.Client{Timeout: timeout}, cfg.Headers),
		logger:   logger.With("source", cfg.Name),
		interval: time.Duration(cfg.RefreshIntervalSec) * time.Second,
		timeout:  timeout,
		now:      time.Now,
	}
}

// Name returns the configured source name.
func (s *Source) Name() string { return s.name }

// Refresh runs one fetch-merge-index cycle and publishes the result. On any
// failure the previously published snapshot stays in effect and the error is
// recorded for health reporting.
func (s *Source) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := s.now()
	err := s.refresh(ctx)
	elapsed := s.now().Sub(start)
	metrics.RefreshDuration.WithLabelValues(s.name).Observe(elapsed.Seconds())

	if err != nil {
		metrics.RefreshTotal.WithLabelValues(s.name, "failure").Inc()
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		s.logger.Error("refresh failed", "error", err, "duration", elapsed)
		report.RefreshFailed(s.name, err)
		return err
	}
	metrics.RefreshTotal.WithLabelValues(s.name, "success").Inc()
	return nil
}

func (s *Source) refresh(ctx context.Context) error {
	tu, vp, sa, err := s.client.FetchAll(ctx, s.cfg.TripUpdatesURL, s.cfg.VehiclePositionsURL, s.cfg.ServiceAlertsURL)
	if err != nil {
		metrics.FetchFailures.WithLabelValues(s.name).Inc()
		return err
	}

	feed, err := gtfsrt.DecodeAll(tu, vp, sa)
	if err != nil {
		return err
	}

	idx := arrivals.BuildVehicleIndex(feed)
	snap := arrivals.BuildSnapshot(feed, idx, s.now)
	alerts := arrivals.BuildAlertIndex(feed)

	s.mu.Lock()
	s.snapshot = snap
	s.alerts = alerts
	s.generation++
	s.lastRefresh = s.now()
	s.lastErr = nil
	s.mu.Unlock()

	metrics.SnapshotArrivals.WithLabelValues(s.name).Set(float64(snap.TotalArrivals()))
	metrics.LastRefreshTimestamp.WithLabelValues(s.name).Set(float64(snap.BuiltAt().Unix()))
	s.logger.Info("refresh complete",
		"entities", len(feed.Entity),
		"arrivals", snap.TotalArrivals(),
		"alerts", len(alerts.All()))
	return nil
}

// Run refreshes immediately and then on a fixed ticker until ctx is
// cancelled. A cycle always runs to completion (or its timeout) before the
// next tick fires, so cycles for one source never overlap.
func (s *Source) Run(ctx context.Context) {
	_ = s.Refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.Refresh(ctx)
		}
	}
}

// Snapshot returns the most recently published snapshot, or nil when no
// cycle has succeeded yet.
func (s *Source) Snapshot() *arrivals.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Alerts returns the alert index published with the current snapshot.
func (s *Source) Alerts() *arrivals.AlertIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alerts
}

// Generation increments every time a new snapshot is published. Response
// caches key on it to invalidate stale entries.
func (s *Source) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Status reports the last successful refresh time and the error of the last
// cycle, if it failed.
func (s *Source) Status() (lastRefresh time.Time, lastErr error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh, s.lastErr
}

// FetchStaticArchive downloads the configured static GTFS archive, when one
// is configured. The body is returned as-is.
func (s *Source) FetchStaticArchive(ctx context.Context) ([]byte, error) {
	return s.client.FetchStatic(ctx, s.cfg.StaticURL)
}
