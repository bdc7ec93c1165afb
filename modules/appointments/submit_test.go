package appointments_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcare-web/medcare/handler"
	"github.com/medcare-web/medcare/modules/appointments"
	"github.com/medcare-web/medcare/pkg/metrics"
	"github.com/medcare-web/medcare/pkg/submission"
)

const (
	timeoutShort = 2 * time.Second
	tick         = 5 * time.Millisecond
)

func jsonSubmit(t *testing.T, values map[string]string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/forms/appointment", signals(t, values))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Accept", "application/json")
	return r
}

func TestSubmit_Datastar(t *testing.T) {
	t.Parallel()

	t.Run("success patches the summary and resets the form", func(t *testing.T) {
		t.Parallel()
		h, _ := newSite(t)
		rec := serve(h, action(http.MethodPost, "/forms/appointment", signals(t, validAppointment())))

		body := rec.Body.String()
		assert.Contains(t, body, `{"submitting":true}`)
		assert.Contains(t, body, `{"submitting":false}`)
		assert.Contains(t, body, "Appointment scheduled successfully")
		assert.Contains(t, body, "<strong>Doctor:</strong> Dr. Sarah Mitchell")
		assert.Contains(t, body, "<strong>Date:</strong> Thursday, June 20, 2024")
		assert.Contains(t, body, "<strong>Time:</strong> 10:00 AM")
		assert.Contains(t, body, "Reference: rcpt-1")
		assert.Contains(t, body, `"firstName":""`)
		assert.Less(t, strings.Index(body, `{"submitting":true}`), strings.Index(body, "Appointment scheduled successfully"))
	})

	t.Run("invalid form shows every error and focuses the first", func(t *testing.T) {
		t.Parallel()
		h, _ := newSite(t)
		values := validAppointment()
		values["firstName"] = ""
		values["email"] = "nope"
		rec := serve(h, action(http.MethodPost, "/forms/appointment", signals(t, values)))

		body := rec.Body.String()
		assert.Contains(t, body, "First Name is required")
		assert.Contains(t, body, "Please enter a valid email address")
		assert.Contains(t, body, "Please correct the errors in the form")
		assert.Contains(t, body, `document.getElementById("firstName")?.focus()`)
		assert.NotContains(t, body, "submitting")
	})
}

func TestSubmit_DatastarFailure(t *testing.T) {
	t.Parallel()
	h, clock := newSite(t, appointments.WithSubmitter(fail()))

	req := action(http.MethodPost, "/forms/appointment", signals(t, validAppointment()))
	rec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(rec, req)
	}()

	require.Eventually(t, func() bool { return clock.Pending() == 1 }, timeoutShort, tick)
	clock.Advance(submission.DefaultBannerTTL)
	<-done

	body := rec.Body.String()
	shown := strings.Index(body, "There was an error scheduling your appointment. Please try again.")
	require.GreaterOrEqual(t, shown, 0)
	assert.Contains(t, body[shown:], `<div id="appointment-form-banner"></div>`)
	assert.Contains(t, body, `{"submitting":false}`)
	assert.NotContains(t, body, `"firstName":""`)
}

func TestSubmit_JSON(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		h, _ := newSite(t)
		rec := serve(h, jsonSubmit(t, validAppointment()))
		require.Equal(t, http.StatusCreated, rec.Code)

		var body struct {
			Data submission.Outcome `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "rcpt-1", body.Data.Receipt.ID)
		require.NotNil(t, body.Data.Summary)
		assert.Equal(t, "Jane O'Neil", body.Data.Summary.Patient)
		assert.Equal(t, "Cardiology", body.Data.Summary.Department)
		assert.Equal(t, "Follow-up Visit", body.Data.Summary.Type)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		h, _ := newSite(t)
		values := validAppointment()
		values["dateOfBirth"] = "2030-01-01"
		rec := serve(h, jsonSubmit(t, values))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var body handler.JSONResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotNil(t, body.Error)
		assert.Equal(t, []string{"Date of birth cannot be in the future"}, body.Error.Details["dateOfBirth"])
	})

	t.Run("failed", func(t *testing.T) {
		t.Parallel()
		h, _ := newSite(t, appointments.WithSubmitter(fail()))
		rec := serve(h, jsonSubmit(t, validAppointment()))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "submission_failed")
	})
}

func TestSubmit_InFlight(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	blocking := submission.SubmitterFunc(func(context.Context, submission.Request) (submission.Receipt, error) {
		close(started)
		<-release
		return submission.Receipt{ID: "slow"}, nil
	})
	reg := prometheus.NewRegistry()
	h, _ := newSite(t, appointments.WithSubmitter(blocking), appointments.WithMetrics(metrics.NewFormMetrics(reg)))

	req := jsonSubmit(t, validAppointment())
	first := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(first, req)
	}()
	<-started

	t.Run("json", func(t *testing.T) {
		rec := serve(h, jsonSubmit(t, validAppointment()))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "submission_in_flight")
	})

	t.Run("datastar gets a toast", func(t *testing.T) {
		rec := serve(h, action(http.MethodPost, "/forms/contact", signals(t, nil)))
		assert.Contains(t, rec.Body.String(), "#toast-container")
		assert.Contains(t, rec.Body.String(), appointments.MsgInFlight)
	})

	close(release)
	<-done
	assert.Equal(t, http.StatusCreated, first.Code)

	t.Run("rejections are counted", func(t *testing.T) {
		expected := `
# HELP medcare_forms_submissions_total Form submissions by outcome
# TYPE medcare_forms_submissions_total counter
medcare_forms_submissions_total{form="appointment-form",outcome="rejected"} 1
medcare_forms_submissions_total{form="appointment-form",outcome="succeeded"} 1
medcare_forms_submissions_total{form="contact-form",outcome="rejected"} 1
`
		assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "medcare_forms_submissions_total"))
	})
}

func TestSubmit_PlainPost(t *testing.T) {
	t.Parallel()

	t.Run("success renders the confirmation", func(t *testing.T) {
		t.Parallel()
		h, _ := newSite(t)
		rec := serve(h, postForm(validAppointment()))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `id="appointment-form-success" class="success-modal"`)
		assert.Contains(t, rec.Body.String(), "Appointment scheduled successfully")
	})

	t.Run("invalid is 422 with inline errors", func(t *testing.T) {
		t.Parallel()
		h, _ := newSite(t)
		values := validAppointment()
		values["reason"] = "pain"
		rec := serve(h, postForm(values))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Reason for Visit must be at least 10 characters long")
		assert.Contains(t, rec.Body.String(), `value="Jane"`)
	})

	t.Run("failure keeps the values and shows the banner", func(t *testing.T) {
		t.Parallel()
		h, _ := newSite(t, appointments.WithSubmitter(fail()))
		rec := serve(h, postForm(validAppointment()))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), `class="alert alert--error" role="alert"`)
		assert.Contains(t, rec.Body.String(), `value="jane@example.com"`)
	})
}
