package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors exported on /metrics.
// All methods are safe on a nil receiver so callers may run without metrics.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec
	DroppedDetails   *prometheus.CounterVec
	RateLimitHits    prometheus.Counter
	SearchDuration   prometheus.Histogram
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
// A nil reg skips registration (handy in tests).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moviebuddy_upstream_requests_total",
				Help: "Count of OMDb requests by phase and outcome",
			},
			[]string{"phase", "status"},
		),
		DroppedDetails: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moviebuddy_dropped_details_total",
				Help: "Detail lookups dropped from a result set",
			},
			[]string{"reason"},
		),
		RateLimitHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "moviebuddy_rate_limit_hits_total",
				Help: "Searches rejected because the OMDb quota was exhausted",
			},
		),
		SearchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "moviebuddy_search_duration_seconds",
				Help:    "Time taken by a full search-and-aggregate run",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5},
			},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moviebuddy_http_requests_total",
				Help: "Count of inbound HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moviebuddy_http_request_duration_seconds",
				Help:    "Time taken to serve inbound HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.UpstreamRequests,
			m.DroppedDetails,
			m.RateLimitHits,
			m.SearchDuration,
			m.HTTPRequests,
			m.HTTPDuration,
		)
	}
	return m
}

// ObserveUpstream counts one OMDb call; phase is "search" or "detail".
func (m *Metrics) ObserveUpstream(phase, status string) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(phase, status).Inc()
}

// ObserveDropped counts a detail that was left out of the result.
func (m *Metrics) ObserveDropped(reason string) {
	if m == nil {
		return
	}
	m.DroppedDetails.WithLabelValues(reason).Inc()
}

// ObserveRateLimit counts a search rejected by the upstream quota.
func (m *Metrics) ObserveRateLimit() {
	if m == nil {
		return
	}
	m.RateLimitHits.Inc()
}

// ObserveSearch records the wall time of one Search call.
func (m *Metrics) ObserveSearch(d time.Duration) {
	if m == nil {
		return
	}
	m.SearchDuration.Observe(d.Seconds())
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, path, status).Inc()
	m.HTTPDuration.WithLabelValues(method, path).Observe(d.Seconds())
}
