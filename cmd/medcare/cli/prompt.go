package cli

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("aborted")

// Question is one prompt of the booking wizard. A question with options is
// a single choice; the answer is the chosen option.
type Question struct {
	Message   string
	Help      string
	Default   string
	Options   []string
	Multiline bool
	// Validate rejects an answer with the message to show; the prompt repeats.
	Validate func(answer string) error
}

// Prompter asks questions on behalf of the wizard.
type Prompter interface {
	Ask(q Question) (string, error)
	Confirm(message string, def bool) (bool, error)
}

// surveyPrompter asks on the terminal.
type surveyPrompter struct{}

func (surveyPrompter) Ask(q Question) (string, error) {
	var prompt survey.Prompt
	switch {
	case len(q.Options) > 0:
		sel := &survey.Select{Message: q.Message, Options: q.Options, Help: q.Help, PageSize: 12}
		if q.Default != "" {
			sel.Default = q.Default
		}
		prompt = sel
	case q.Multiline:
		prompt = &survey.Multiline{Message: q.Message, Help: q.Help, Default: q.Default}
	default:
		prompt = &survey.Input{Message: q.Message, Help: q.Help, Default: q.Default}
	}

	var opts []survey.AskOpt
	if q.Validate != nil {
		opts = append(opts, survey.WithValidator(func(ans any) error {
			switch v := ans.(type) {
			case string:
				return q.Validate(v)
			case survey.OptionAnswer:
				return q.Validate(v.Value)
			}
			return nil
		}))
	}

	var out string
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) Confirm(message string, def bool) (bool, error) {
	var out bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
