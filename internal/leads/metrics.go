package leads

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts lead deliveries per form type and outcome.
type Metrics struct {
	deliveries *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	inFlight   prometheus.Gauge
}

// MustNewMetrics registers the lead metrics with reg. It panics on duplicate registration. A nil reg creates
// unregistered collectors.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "site",
			Subsystem: "leads",
			Name:      "deliveries_total",
			Help:      "Lead deliveries by form type and outcome.",
		}, []string{"form_type", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "site",
			Subsystem: "leads",
			Name:      "delivery_duration_seconds",
			Help:      "Time spent posting a lead to the endpoint.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"form_type"}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "site",
			Subsystem: "leads",
			Name:      "in_flight",
			Help:      "Deliveries started but not finished.",
		}),
	}
}

func (m *Metrics) observe(d Delivery) {
	if m == nil {
		return
	}
	formType := string(d.Record.FormType())
	m.deliveries.WithLabelValues(formType, string(d.Outcome)).Inc()
	m.duration.WithLabelValues(formType).Observe(d.Finished.Sub(d.Started).Seconds())
}

func (m *Metrics) started() {
	if m != nil {
		m.inFlight.Inc()
	}
}

func (m *Metrics) finished() {
	if m != nil {
		m.inFlight.Dec()
	}
}
