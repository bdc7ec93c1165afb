// Package cli holds the medcare commands: the web site server, the
// interactive booking wizard and the doctor listing.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/medcare-web/medcare/pkg/config"
)

// Option configures the root command.
type Option func(*options)

type options struct {
	environ  map[string]string
	prompter Prompter
}

// WithEnviron replaces the process environment and .env files as the
// configuration source.
func WithEnviron(vars map[string]string) Option {
	return func(o *options) { o.environ = vars }
}

// WithPrompter replaces the terminal prompts of the booking wizard.
func WithPrompter(p Prompter) Option {
	return func(o *options) { o.prompter = p }
}

func (o *options) configOptions() []config.Option {
	opts := []config.Option{config.WithPrefix(envPrefix)}
	if o.environ != nil {
		opts = append(opts, config.WithEnvironment(o.environ))
	}
	return opts
}

// NewRootCommand builds the medcare command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.prompter == nil {
		o.prompter = surveyPrompter{}
	}

	root := &cobra.Command{
		Use:   "medcare",
		Short: "MedCare hospital site and booking tools",
		Long: `MedCare serves the hospital web site with its appointment and contact
forms, and offers terminal tools over the same validation rules.

Examples:
  medcare serve --addr :8080            # run the web site
  medcare book                         # book an appointment interactively
  medcare book --form contact          # send a message interactively
  medcare doctors -d cardiology -f json # list cardiologists as JSON`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCommand(o),
		newBookCommand(o),
		newDoctorsCommand(),
	)
	return root
}
