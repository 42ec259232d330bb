package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the party finder
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business Metrics
	PartyFindActionsTotal *prometheus.CounterVec
	CharacterWritesTotal  *prometheus.CounterVec
	PostsExpiredTotal     prometheus.Counter
	ExpirySweepDuration   prometheus.Histogram
	CatalogSeedsTotal     *prometheus.CounterVec
}

// NewMetricsRegistry registers every metric with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh prometheus.NewRegistry() in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "partyfinder_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "partyfinder_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "partyfinder_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		// Business Metrics
		PartyFindActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "partyfinder_post_actions_total",
				Help: "Party find post actions by action and outcome (ok or error kind)",
			},
			[]string{"action", "outcome"},
		),
		CharacterWritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "partyfinder_character_writes_total",
				Help: "Character add/edit/delete calls by outcome",
			},
			[]string{"action", "outcome"},
		),
		PostsExpiredTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "partyfinder_posts_expired_total",
				Help: "Posts moved to EXPIRED by the sweep job",
			},
		),
		ExpirySweepDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "partyfinder_expiry_sweep_duration_seconds",
				Help:    "Expiry sweep execution time in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
		),
		CatalogSeedsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "partyfinder_catalog_seeds_total",
				Help: "Seed runs by catalog",
			},
			[]string{"catalog"},
		),
	}
}
