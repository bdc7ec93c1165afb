package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/medcare-web/medcare/pkg/announce"
	"github.com/medcare-web/medcare/pkg/directory"
	"github.com/medcare-web/medcare/pkg/forms"
	"github.com/medcare-web/medcare/pkg/selection"
	"github.com/medcare-web/medcare/pkg/submission"
)

// ErrUnknownForm rejects a --form value other than appointment or contact.
var ErrUnknownForm = errors.New("unknown form")

const noPreference = "No preference"

func newBookCommand(o *options) *cobra.Command {
	var (
		formName string
		delay    time.Duration
		fail     bool
	)
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Fill in a form interactively",
		Long: `Walk through the appointment or contact form on the terminal.

Every answer is checked with the rules of the web site and asked again
until it passes. The filled form is submitted to the simulated backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(o)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("delay") {
				delay = cfg.Appointments.SubmitDelay
			}
			if !cmd.Flags().Changed("fail") {
				fail = cfg.Appointments.SimulateFailure
			}

			w, err := newWizard(formName, o.prompter, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			submitter := submission.NewSimulatedSubmitter(
				submission.WithDelay(delay),
				submission.WithFailure(fail),
			)
			return w.run(cmd.Context(), submitter)
		},
	}
	cmd.Flags().StringVar(&formName, "form", "appointment", "form to fill in: appointment or contact")
	cmd.Flags().DurationVar(&delay, "delay", submission.DefaultDelay, "simulated backend delay")
	cmd.Flags().BoolVar(&fail, "fail", false, "make the simulated backend fail")
	return cmd
}

// wizard asks for each enabled field in order and submits the form.
type wizard struct {
	form    *forms.Form
	engine  *forms.Engine
	table   *directory.Table
	sel     *selection.DoctorSelect
	prompts Prompter
	out     io.Writer
}

func newWizard(name string, p Prompter, out io.Writer) (*wizard, error) {
	catalog := directory.Default()
	w := &wizard{engine: forms.New(), table: catalog.Table, prompts: p, out: out}

	switch name {
	case "appointment":
		depts := catalog.Table.Departments()
		choices := make([]forms.Choice, 0, len(depts))
		for _, d := range depts {
			choices = append(choices, forms.Choice{Value: d.Key, Label: d.Label})
		}
		w.form = forms.AppointmentForm(choices)
		sel, err := selection.New(w.form, catalog.Table)
		if err != nil {
			return nil, err
		}
		w.sel = sel
	case "contact":
		w.form = forms.ContactForm()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}
	return w, nil
}

func (w *wizard) run(ctx context.Context, submitter submission.Submitter) error {
	for _, f := range w.form.Fields() {
		// the department answer changes the doctor field
		current, _ := w.form.Field(f.Name)
		if current.Disabled {
			continue
		}
		if err := w.ask(ctx, current); err != nil {
			return err
		}
	}

	ok, err := w.prompts.Confirm("Submit?", true)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w.out, "Nothing was submitted.")
		return nil
	}
	return w.submit(ctx, submitter)
}

func (w *wizard) ask(ctx context.Context, f forms.Field) error {
	q := Question{
		Message:   f.Label,
		Help:      f.Help,
		Multiline: f.Kind == forms.KindTextarea,
	}
	switch f.Kind {
	case forms.KindDate:
		q.Help = "YYYY-MM-DD"
	case forms.KindTel:
		q.Help = "(555) 123-4567"
	}

	var values []string
	if f.Kind == forms.KindSelect {
		for _, c := range f.Choices {
			label := c.Label
			if c.Value == "" {
				if f.Required {
					continue
				}
				label = noPreference
			}
			q.Options = append(q.Options, label)
			values = append(values, c.Value)
		}
	}

	q.Validate = func(answer string) error {
		value := answer
		if values != nil {
			i := slices.Index(q.Options, answer)
			if i < 0 {
				return fmt.Errorf("choose one of: %s", strings.Join(q.Options, ", "))
			}
			value = values[i]
		}
		if _, err := w.form.Input(f.Name, value); err != nil {
			return err
		}
		res, err := w.engine.Check(w.form, f.Name)
		if err != nil {
			return err
		}
		if !res.Valid {
			return errors.New(res.Message)
		}
		return nil
	}

	answer, err := w.prompts.Ask(q)
	if err != nil {
		return err
	}
	// The prompt validated the answer; apply it once more so the form holds it.
	if err := q.Validate(answer); err != nil {
		return err
	}
	if f.Name == forms.FieldDepartment && w.sel != nil {
		return w.sel.ChangeDepartment(ctx, w.form.Value(forms.FieldDepartment))
	}
	return nil
}

func (w *wizard) submit(ctx context.Context, submitter submission.Submitter) error {
	seq, err := submission.NewSequencer(submitter)
	if err != nil {
		return err
	}

	opts := []submission.ControllerOption{
		submission.WithTable(w.table),
		submission.WithAnnouncer(announce.Func(func(_ context.Context, msg string) {
			fmt.Fprintln(w.out, msg)
		})),
		submission.WithBanner(submission.NewBanner(submission.WithBannerOnChange(func(msg string) {
			if msg != "" {
				fmt.Fprintln(w.out, "Error: "+msg)
			}
		}))),
	}
	if w.sel != nil {
		opts = append(opts, submission.WithSelection(w.sel))
	}
	ctl, err := submission.NewController(w.form, w.engine, seq, opts...)
	if err != nil {
		return err
	}

	fut, err := ctl.Submit(ctx, submission.ControlFunc(func(loading bool) {
		if loading {
			fmt.Fprintln(w.out, "Submitting...")
		}
	}))
	if err != nil {
		return err
	}
	outcome, err := fut.AwaitContext(ctx)
	if err != nil {
		return err
	}

	if outcome.Summary != nil {
		for _, line := range outcome.Summary.Lines() {
			fmt.Fprintln(w.out, "  "+line)
		}
	}
	fmt.Fprintln(w.out, "Reference: "+outcome.Receipt.ID)
	return nil
}
