package resource

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutboundInFlightGauge   = "resource_client_inflight_requests"
	OutboundRequestDuration = "resource_client_request_duration_seconds"
	OutboundRequestCounter  = "resource_client_requests_total"
)

// Metrics instruments outbound requests. Pass it through ClientConfig.Metrics.
type Metrics struct {
	InFlight        prometheus.Gauge
	RequestDuration *prometheus.HistogramVec
	RequestCounter  *prometheus.CounterVec
}

// NewMetrics creates the outbound collectors and registers them with r.
func NewMetrics(r prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: OutboundInFlightGauge,
			Help: "The number of active, in-flight resource requests",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    OutboundRequestDuration,
			Help:    "The durations of resource requests",
			Buckets: []float64{.25, .5, 1, 2.5, 5, 10},
		}, []string{"method"}),
		RequestCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: OutboundRequestCounter,
			Help: "The count of resource requests by status code",
		}, []string{"code", "method"}),
	}

	for _, c := range []prometheus.Collector{m.InFlight, m.RequestDuration, m.RequestCounter} {
		if err := r.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return m, nil
}

// instrument decorates next with the in-flight gauge, the request counter
// and the duration histogram.
func (m *Metrics) instrument(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperInFlight(m.InFlight,
		promhttp.InstrumentRoundTripperCounter(m.RequestCounter,
			promhttp.InstrumentRoundTripperDuration(m.RequestDuration, next)))
}
