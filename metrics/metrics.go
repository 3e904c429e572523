// Package metrics exposes Prometheus instrumentation for the refresh cycles.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchFailures counts failed feed fetches per source.
	FetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gtfsrt_fetch_failures_total",
		Help: "Number of failed GTFS-RT feed fetches",
	}, []string{"source"})

	// RefreshTotal counts refresh cycles per source and outcome.
	RefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gtfsrt_refresh_total",
		Help: "Number of refresh cycles, labelled by outcome (success/failure)",
	}, []string{"source", "outcome"})

	// RefreshDuration observes how long one fetch-merge-index cycle takes.
	RefreshDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gtfsrt_refresh_duration_seconds",
		Help:    "Duration of one full refresh cycle",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})

	// SnapshotArrivals reports the number of arrival records in the
	// currently published snapshot.
	SnapshotArrivals = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gtfsrt_snapshot_arrivals",
		Help: "Number of arrival records in the current snapshot",
	}, []string{"source"})

	// LastRefreshTimestamp is the unix time of the last successful refresh.
	LastRefreshTimestamp = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gtfsrt_last_refresh_timestamp_seconds",
		Help: "Unix timestamp of the last successful refresh",
	}, []string{"source"})
)
