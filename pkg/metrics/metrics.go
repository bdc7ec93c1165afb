package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/medcare-web/medcare/pkg/forms"
)

// FormMetrics counts field validations and submissions. A nil *FormMetrics
// is valid and records nothing.
type FormMetrics struct {
	validations *prometheus.CounterVec
	submissions *prometheus.CounterVec
	inFlight    prometheus.Gauge
	latency     *prometheus.HistogramVec
}

// NewFormMetrics registers the collectors with reg, or with the default
// registerer when reg is nil.
func NewFormMetrics(reg prometheus.Registerer) *FormMetrics {
	m := &FormMetrics{
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medcare",
			Subsystem: "forms",
			Name:      "field_validations_total",
			Help:      "Field validations by form, field and result",
		}, []string{"form", "field", "result"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medcare",
			Subsystem: "forms",
			Name:      "submissions_total",
			Help:      "Form submissions by outcome",
		}, []string{"form", "outcome"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "medcare",
			Subsystem: "forms",
			Name:      "submissions_in_flight",
			Help:      "Submissions started and not yet settled",
		}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medcare",
			Subsystem: "forms",
			Name:      "submission_duration_seconds",
			Help:      "Time from submit to settlement",
			Buckets:   []float64{0.1, 0.5, 1, 2, 3, 5, 10},
		}, []string{"form", "outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.validations, m.submissions, m.inFlight, m.latency)
	return m
}

// FieldValidated implements forms.Observer. The result label is "valid" or
// the key of the failed rule.
func (m *FormMetrics) FieldValidated(form, field string, res forms.Result) {
	if m == nil {
		return
	}
	result := "valid"
	if !res.Valid {
		result = res.Key
	}
	m.validations.WithLabelValues(form, field, result).Inc()
}

// SubmissionStarted implements submission.Metrics.
func (m *FormMetrics) SubmissionStarted(string) {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

// SubmissionFinished implements submission.Metrics. Rejected submissions
// never started, so they leave the in-flight gauge alone.
func (m *FormMetrics) SubmissionFinished(form, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(form, outcome).Inc()
	if outcome == "rejected" {
		return
	}
	m.inFlight.Dec()
	m.latency.WithLabelValues(form, outcome).Observe(took.Seconds())
}
