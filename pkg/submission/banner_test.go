package submission_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/medcare-web/medcare/pkg/forms"
	"github.com/medcare-web/medcare/pkg/submission"
	"github.com/medcare-web/medcare/pkg/timer"
)

func TestBanner(t *testing.T) {
	t.Parallel()

	t.Run("auto dismisses", func(t *testing.T) {
		t.Parallel()
		clock := timer.NewManualClock(today)
		var changes []string
		b := submission.NewBanner(
			submission.WithBannerClock(clock),
			submission.WithBannerOnChange(func(m string) { changes = append(changes, m) }),
		)

		b.Show("oops")
		assert.True(t, b.Visible())
		clock.Advance(4999 * time.Millisecond)
		assert.Equal(t, "oops", b.Message())
		clock.Advance(time.Millisecond)
		assert.False(t, b.Visible())
		assert.Equal(t, []string{"oops", ""}, changes)
	})

	t.Run("new message restarts the countdown", func(t *testing.T) {
		t.Parallel()
		clock := timer.NewManualClock(today)
		b := submission.NewBanner(submission.WithBannerClock(clock), submission.WithBannerTTL(time.Second))

		b.Show("first")
		clock.Advance(800 * time.Millisecond)
		b.Show("second")
		clock.Advance(800 * time.Millisecond)
		assert.Equal(t, "second", b.Message())
		clock.Advance(200 * time.Millisecond)
		assert.False(t, b.Visible())
		assert.Equal(t, 0, clock.Pending())
	})

	t.Run("dismiss", func(t *testing.T) {
		t.Parallel()
		clock := timer.NewManualClock(today)
		b := submission.NewBanner(submission.WithBannerClock(clock))
		b.Show("x")
		b.Dismiss()
		assert.False(t, b.Visible())
		assert.Equal(t, 0, clock.Pending())
	})
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	values := map[string]string{
		forms.FieldFirstName:       "<b>Ann</b>",
		forms.FieldLastName:        "Smith",
		forms.FieldDepartment:      "womens-health",
		forms.FieldAppointmentDate: "2024-07-01",
		forms.FieldAppointmentTime: "09:00",
		forms.FieldAppointmentType: "telehealth",
	}
	s := submission.Summarize(values, forms.AppointmentForm(nil), nil)

	assert.Equal(t, "Ann Smith", s.Patient)
	assert.Equal(t, "womens-health", s.Department, "no table and no matching choice keeps the key")
	assert.Empty(t, s.Doctor)
	assert.Equal(t, "Monday, July 1, 2024", s.Date)
	assert.Equal(t, "9:00 AM", s.Time)
	assert.Equal(t, "Telehealth Visit", s.Type)
	assert.Equal(t, []string{
		"Patient: Ann Smith",
		"Department: womens-health",
		"Date: Monday, July 1, 2024",
		"Time: 9:00 AM",
		"Type: Telehealth Visit",
	}, s.Lines())
}
