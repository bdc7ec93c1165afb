package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/medcare-web/medcare/cmd/medcare/cli"
	"github.com/medcare-web/medcare/pkg/directory"
	"github.com/medcare-web/medcare/pkg/submission"
)

// script answers questions by message, simulating a user who keeps typing
// until the answer passes validation.
type script struct {
	answers  map[string][]string
	confirm  bool
	rejected []string
}

func (s *script) Ask(q cli.Question) (string, error) {
	for {
		queue := s.answers[q.Message]
		if len(queue) == 0 {
			return "", fmt.Errorf("no answer scripted for %q", q.Message)
		}
		answer := queue[0]
		s.answers[q.Message] = queue[1:]
		if q.Validate != nil {
			if err := q.Validate(answer); err != nil {
				s.rejected = append(s.rejected, err.Error())
				continue
			}
		}
		return answer, nil
	}
}

func (s *script) Confirm(string, bool) (bool, error) { return s.confirm, nil }

func execute(t *testing.T, p cli.Prompter, env map[string]string, args ...string) (string, string, error) {
	t.Helper()
	if env == nil {
		env = map[string]string{}
	}
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCommand(cli.WithEnviron(env), cli.WithPrompter(p))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func appointmentAnswers() map[string][]string {
	next := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	return map[string][]string{
		"First Name *":            {"Jane"},
		"Last Name *":             {"O'Neil"},
		"Date of Birth *":         {"1990-05-01"},
		"Email Address *":         {"jane@", "jane@example.com"},
		"Phone Number *":          {"555-123-4567"},
		"Department *":            {"Cardiology"},
		"Preferred Doctor":        {"Dr. Sarah Mitchell"},
		"Preferred Date *":        {"2000-01-01", next},
		"Preferred Time *":        {"10:00 AM"},
		"Appointment Type *":      {"Follow-up Visit"},
		"Reason for Visit *":      {"pain", "Follow up on blood pressure"},
		"Emergency Contact Name":  {""},
		"Emergency Contact Phone": {""},
	}
}

func TestBook(t *testing.T) {
	t.Parallel()

	t.Run("appointment", func(t *testing.T) {
		t.Parallel()
		p := &script{answers: appointmentAnswers(), confirm: true}
		out, _, err := execute(t, p, nil, "book", "--delay", "0")
		require.NoError(t, err)

		assert.Equal(t, []string{
			"Please enter a valid email address",
			"Appointment date cannot be in the past",
			"Reason for Visit must be at least 10 characters long",
		}, p.rejected)
		assert.Contains(t, out, "Submitting...")
		assert.Contains(t, out, "Appointment scheduled successfully")
		assert.Contains(t, out, "Patient: Jane O'Neil")
		assert.Contains(t, out, "Doctor: Dr. Sarah Mitchell")
		assert.Contains(t, out, "Time: 10:00 AM")
		assert.Contains(t, out, "Reference: ")
	})

	t.Run("doctor must belong to the department", func(t *testing.T) {
		t.Parallel()
		answers := appointmentAnswers()
		answers["Preferred Doctor"] = []string{"Dr. Emily Chen", "No preference"}
		p := &script{answers: answers, confirm: true}
		out, _, err := execute(t, p, nil, "book", "--delay", "0")
		require.NoError(t, err)
		assert.Contains(t, p.rejected, "choose one of: No preference, Dr. Sarah Mitchell, Dr. Robert Chen, Dr. Maria Gonzalez")
		assert.NotContains(t, out, "Doctor:")
	})

	t.Run("backend failure", func(t *testing.T) {
		t.Parallel()
		p := &script{answers: appointmentAnswers(), confirm: true}
		out, _, err := execute(t, p, nil, "book", "--delay", "0", "--fail")
		require.ErrorIs(t, err, submission.ErrSubmissionFailed)
		assert.Contains(t, out, "Error: There was an error scheduling your appointment. Please try again.")
	})

	t.Run("contact declined", func(t *testing.T) {
		t.Parallel()
		p := &script{answers: map[string][]string{
			"First Name *":    {"Sam"},
			"Last Name *":     {"Lee"},
			"Email Address *": {"sam@example.com"},
			"Phone Number":    {""},
			"Subject *":       {"Billing"},
			"Message *":       {"Question about my last invoice"},
		}}
		out, _, err := execute(t, p, nil, "book", "--form", "contact")
		require.NoError(t, err)
		assert.Empty(t, p.rejected)
		assert.Contains(t, out, "Nothing was submitted.")
	})

	t.Run("unknown form", func(t *testing.T) {
		t.Parallel()
		_, _, err := execute(t, &script{}, nil, "book", "--form", "survey")
		assert.ErrorIs(t, err, cli.ErrUnknownForm)
	})
}

func TestDoctors(t *testing.T) {
	t.Parallel()

	t.Run("table", func(t *testing.T) {
		t.Parallel()
		out, _, err := execute(t, nil, nil, "doctors", "-d", "neurology")
		require.NoError(t, err)
		assert.Contains(t, out, "ID")
		assert.Contains(t, out, "amanda-taylor")
		assert.Contains(t, out, "East Campus")
		assert.Contains(t, out, "Showing 3 doctors")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		out, _, err := execute(t, nil, nil, "doctors", "-s", "chen", "-f", "json")
		require.NoError(t, err)
		var docs []directory.Doctor
		require.NoError(t, json.Unmarshal([]byte(out), &docs))
		require.Len(t, docs, 2)
		assert.Equal(t, "emily-chen", docs[0].ID)
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		out, _, err := execute(t, nil, nil, "doctors", "-l", "north", "--format", "yaml")
		require.NoError(t, err)
		var docs []directory.Doctor
		require.NoError(t, yaml.Unmarshal([]byte(out), &docs))
		assert.NotEmpty(t, docs)
		for _, d := range docs {
			assert.Equal(t, "north", d.Location)
		}
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()
		out, _, err := execute(t, nil, nil, "doctors", "-s", "dermatology")
		require.NoError(t, err)
		assert.Equal(t, "No doctors found\n", out)
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		_, _, err := execute(t, nil, nil, "doctors", "-f", "csv")
		assert.ErrorIs(t, err, cli.ErrUnknownFormat)
	})
}

func TestServe(t *testing.T) {
	t.Parallel()

	t.Run("stops with its context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var stderr bytes.Buffer
		cmd := cli.NewRootCommand(cli.WithEnviron(map[string]string{
			"MEDCARE_HTTP_ADDR":  "127.0.0.1:0",
			"MEDCARE_LOG_FORMAT": "text",
		}))
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{"serve"})

		require.NoError(t, cmd.ExecuteContext(ctx))
		assert.Contains(t, stderr.String(), "starting medcare")
		assert.Contains(t, stderr.String(), "http server stopped")
	})

	t.Run("invalid log format", func(t *testing.T) {
		t.Parallel()
		_, _, err := execute(t, nil, map[string]string{"MEDCARE_LOG_FORMAT": "xml"}, "serve")
		assert.ErrorIs(t, err, cli.ErrInvalidConfig)
	})
}
