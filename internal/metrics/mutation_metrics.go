package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты мутаций для лейбла result.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// MutationMetrics содержит метрики пайплайна валидируемых мутаций.
type MutationMetrics struct {
	mutationsTotal     *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	mutationDuration   *prometheus.HistogramVec
	bulkRowsTotal      *prometheus.CounterVec
}

// NewMutationMetrics создаёт и регистрирует метрики мутаций в default registerer.
func NewMutationMetrics() *MutationMetrics {
	return newMutationMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newMutationMetricsWithRegisterer(registerer prometheus.Registerer) *MutationMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &MutationMetrics{
		mutationsTotal: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "crm_mutations_total",
			Help: "Total number of mutation calls grouped by mutation and result.",
		}, []string{"mutation", "result"}),
		validationFailures: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "crm_validation_failures_total",
			Help: "Total number of business validation failures grouped by mutation.",
		}, []string{"mutation"}),
		mutationDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "crm_mutation_duration_seconds",
			Help:    "Duration of mutation calls in seconds.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"mutation"}),
		bulkRowsTotal: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "crm_bulk_rows_total",
			Help: "Total number of bulk import rows grouped by result.",
		}, []string{"result"}),
	}
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordMutation фиксирует результат и длительность вызова мутации.
func (m *MutationMetrics) RecordMutation(mutation, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.mutationsTotal.WithLabelValues(mutation, result).Inc()
	m.mutationDuration.WithLabelValues(mutation).Observe(duration.Seconds())
}

// RecordValidationFailure увеличивает счётчик бизнес-отказов мутации.
func (m *MutationMetrics) RecordValidationFailure(mutation string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(mutation).Inc()
}

// RecordBulkRow фиксирует результат обработки одной строки bulk-импорта.
func (m *MutationMetrics) RecordBulkRow(result string) {
	if m == nil {
		return
	}
	m.bulkRowsTotal.WithLabelValues(result).Inc()
}
