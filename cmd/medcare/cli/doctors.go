package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/medcare-web/medcare/pkg/directory"
)

// ErrUnknownFormat rejects an output format other than table, json or yaml.
var ErrUnknownFormat = errors.New("unknown output format")

func newDoctorsCommand() *cobra.Command {
	var (
		filter directory.Filter
		format string
	)
	cmd := &cobra.Command{
		Use:     "doctors",
		Aliases: []string{"ls"},
		Short:   "List the doctor directory",
		Long: `List the doctors of the directory, optionally filtered.

Examples:
  medcare doctors                       # every doctor as a table
  medcare doctors -s chen               # search name, specialty and department
  medcare doctors -d neurology -l east  # department and location filters
  medcare doctors -f yaml               # full profiles as YAML`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := directory.Default().Directory
			doctors := dir.Filter(filter)
			out := cmd.OutOrStdout()

			switch strings.ToLower(format) {
			case "table":
				return writeDoctorTable(out, dir, doctors)
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(doctors)
			case "yaml":
				enc := yaml.NewEncoder(out)
				defer enc.Close()
				return enc.Encode(doctors)
			default:
				return fmt.Errorf("%w: %q (use table, json or yaml)", ErrUnknownFormat, format)
			}
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&filter.Search, "search", "s", "", "search name, specialty or department")
	flags.StringVarP(&filter.Department, "department", "d", "", "department key, e.g. cardiology")
	flags.StringVarP(&filter.Location, "location", "l", "", "location key: main, north, south or east")
	flags.StringVarP(&format, "format", "f", "table", "output format: table, json or yaml")
	return cmd
}

func writeDoctorTable(out io.Writer, dir *directory.Directory, doctors []directory.Doctor) error {
	if len(doctors) == 0 {
		_, err := fmt.Fprintln(out, directory.ResultsAnnouncement(0))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSPECIALTY\tLOCATION")
	for _, d := range doctors {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Specialty, dir.LocationLabel(d.Location))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, directory.CountText(len(doctors)))
	return err
}
