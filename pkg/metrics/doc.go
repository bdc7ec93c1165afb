// Package metrics exposes Prometheus collectors for form validation and
// submission. FormMetrics satisfies both forms.Observer and submission.Metrics.
package metrics
