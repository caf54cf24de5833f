package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics of the conversion service.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RegistryRecords prometheus.Gauge
}

// NewMetrics creates the service metric set.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "curies",
				Subsystem: "service",
				Name:      "requests_total",
				Help:      "Total number of conversion requests handled",
			},
			[]string{"operation", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "curies",
				Subsystem: "service",
				Name:      "request_duration_seconds",
				Help:      "Conversion request handling duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		RegistryRecords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "curies",
				Subsystem: "registry",
				Name:      "records",
				Help:      "Number of records in the served registry",
			},
		),
	}
}

// Register registers all service metrics with the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{
		m.RequestsTotal,
		m.RequestDuration,
		m.RegistryRecords,
	} {
		if err := reg.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// observe records one handled request.
func (m *Metrics) observe(operation, status string, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(operation, status).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
