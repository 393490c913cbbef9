package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the IBAN service.
type Metrics struct {
	ValidationsTotal *prometheus.CounterVec
	GeneratedTotal   prometheus.Counter
	BICLookupsTotal  *prometheus.CounterVec
	BatchSize        prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ValidationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "schwifty_iban_validations_total",
			Help: "Total IBAN validations by outcome",
		}, []string{"outcome"}),
		GeneratedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "schwifty_iban_generated_total",
			Help: "Total IBANs generated",
		}),
		BICLookupsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "schwifty_bic_lookups_total",
			Help: "Total BIC directory lookups by outcome",
		}, []string{"outcome"}),
		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "schwifty_iban_batch_size",
			Help:    "Number of IBANs per batch validation request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		}),
	}
}

// ObserveValidation records one validation by outcome ("valid" or the
// failure reason).
func (m *Metrics) ObserveValidation(outcome string) {
	m.ValidationsTotal.WithLabelValues(outcome).Inc()
}

// IncrementGenerated increments the generated counter by 1.
func (m *Metrics) IncrementGenerated() {
	m.GeneratedTotal.Inc()
}

// ObserveBICLookup records one directory lookup by outcome ("hit", "miss",
// or "error").
func (m *Metrics) ObserveBICLookup(outcome string) {
	m.BICLookupsTotal.WithLabelValues(outcome).Inc()
}

// ObserveBatchSize records the size of a batch validation request.
func (m *Metrics) ObserveBatchSize(n int) {
	m.BatchSize.Observe(float64(n))
}
