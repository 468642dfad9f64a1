package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for analytics requests.
const (
	OutcomeSuccess   = "success"
	OutcomeTransport = "transport_error"
	OutcomeMalformed = "malformed_response"
)

var (
	analyticsRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "customerdesk",
			Name:      "analytics_requests_total",
			Help:      "Analytics requests issued, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	analyticsRequestSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "customerdesk",
			Name:      "analytics_request_seconds",
			Help:      "Analytics round-trip latency in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		},
	)

	rosterRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "customerdesk",
			Name:      "roster_records",
			Help:      "Customer records currently held in the in-memory roster.",
		},
	)
)

// Register attaches customerdesk collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		analyticsRequestsTotal,
		analyticsRequestSeconds,
		rosterRecords,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveAnalyticsRequest records a request duration and outcome label.
func ObserveAnalyticsRequest(duration time.Duration, outcome string) {
	switch outcome {
	case OutcomeSuccess, OutcomeTransport, OutcomeMalformed:
	default:
		outcome = OutcomeTransport
	}
	analyticsRequestsTotal.WithLabelValues(outcome).Inc()
	if duration < 0 {
		duration = 0
	}
	analyticsRequestSeconds.Observe(duration.Seconds())
}

// SetRosterRecords publishes the roster size.
func SetRosterRecords(n int) {
	rosterRecords.Set(float64(n))
}
