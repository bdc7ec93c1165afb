package appointments_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcare-web/medcare/modules/appointments"
	"github.com/medcare-web/medcare/pkg/httpserver"
	"github.com/medcare-web/medcare/pkg/logger"
	"github.com/medcare-web/medcare/pkg/metrics"
)

func TestRouter(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log := logger.New(
		logger.WithOutput(&logs),
		logger.WithContextExtractors(logger.RequestIDExtractor(middleware.GetReqID)),
	)
	reg := prometheus.NewRegistry()
	svc, _ := newService(t, appointments.WithMetrics(metrics.NewFormMetrics(reg)), appointments.WithLogger(log))
	h := appointments.Router(appointments.RouterOptions{
		Site:    svc,
		Metrics: reg,
		Checks:  []httpserver.Check{{Name: "catalog", Fn: svc.Ready}},
		Logger:  log,
	})

	// Subtests share the log buffer and run in order.
	t.Run("liveness", func(t *testing.T) {
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ALIVE", rec.Body.String())
	})

	t.Run("readiness", func(t *testing.T) {
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "READY", rec.Body.String())
	})

	t.Run("validations are counted", func(t *testing.T) {
		rec := serve(h, action(http.MethodPost, "/forms/appointment/validate/email", signals(t, validAppointment())))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "medcare_forms_field_validations_total")
		assert.Contains(t, rec.Body.String(), `field="email"`)
	})

	t.Run("requests are logged with their id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/contact", nil)
		r.Header.Set(middleware.RequestIDHeader, "req-42")
		serve(h, r)

		out := logs.String()
		assert.Contains(t, out, `"msg":"request completed"`)
		assert.Contains(t, out, `"path":"/contact"`)
		assert.Contains(t, out, `"request_id":"req-42"`)
		assert.Contains(t, out, `"status":200`)
	})
}

func TestRouter_NotReady(t *testing.T) {
	t.Parallel()

	down := errors.New("catalog unavailable")
	svc, _ := newService(t)
	h := appointments.Router(appointments.RouterOptions{
		Site:   svc,
		Checks: []httpserver.Check{{Name: "catalog", Fn: func(context.Context) error { return down }}},
	})

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NOT_READY", rec.Body.String())

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
