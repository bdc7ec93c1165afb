package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/medcare-web/medcare/pkg/forms"
	"github.com/medcare-web/medcare/pkg/metrics"
	"github.com/medcare-web/medcare/pkg/submission"
)

var (
	_ forms.Observer     = (*metrics.FormMetrics)(nil)
	_ submission.Metrics = (*metrics.FormMetrics)(nil)
)

func TestFormMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.NewFormMetrics(reg)

	m.FieldValidated("contact-form", "email", forms.Result{Valid: true})
	m.FieldValidated("contact-form", "email", forms.Result{Valid: false, Key: "validation.email"})
	m.FieldValidated("contact-form", "email", forms.Result{Valid: false, Key: "validation.email"})

	m.SubmissionStarted("contact-form")
	m.SubmissionFinished("contact-form", "rejected", 0)
	m.SubmissionFinished("contact-form", "succeeded", 2*time.Second)

	count, err := testutil.GatherAndCount(reg, "medcare_forms_field_validations_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, count, "one series per result")

	count, err = testutil.GatherAndCount(reg, "medcare_forms_submissions_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "medcare_forms_submission_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFormMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var m *metrics.FormMetrics
	assert.NotPanics(t, func() {
		m.FieldValidated("f", "x", forms.Result{})
		m.SubmissionStarted("f")
		m.SubmissionFinished("f", "failed", time.Second)
	})
}
