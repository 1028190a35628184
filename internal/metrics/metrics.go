// Package metrics provides Prometheus metrics for the companion backend.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dex_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dex_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Dataset Metrics
	SpeciesLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dex_species_loaded",
			Help: "Number of species in the loaded dataset",
		},
	)

	AreasIndexed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dex_areas_indexed",
			Help: "Number of (region, map) pairs in the area index",
		},
	)

	// Matcher Metrics
	AreaMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dex_area_matches_total",
			Help: "Area match attempts by outcome",
		},
		[]string{"result"}, // "hit" or "miss"
	)

	AreaSearchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dex_area_searches_total",
			Help: "Total number of area search queries",
		},
	)

	// Caught List Metrics
	CaughtEntriesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dex_caught_entries_total",
			Help: "Number of caught flags in the database",
		},
	)

	CaughtExportsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dex_caught_exports_total",
			Help: "Total number of caught-list exports created",
		},
	)

	// External API Metrics
	MarketRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dex_market_requests_total",
			Help: "GTL market requests by outcome",
		},
		[]string{"result"}, // "ok", "fallback", "error"
	)

	SmogonFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dex_smogon_fetches_total",
			Help: "Smogon moveset fetches by source",
		},
		[]string{"source"}, // "cache" or "api"
	)

	AbilityLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dex_ability_lookups_total",
			Help: "Ability description lookups by source",
		},
		[]string{"source"}, // "cache" or "api"
	)
)
