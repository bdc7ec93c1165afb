package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/medcare-web/medcare/modules/appointments"
	"github.com/medcare-web/medcare/pkg/httpserver"
	"github.com/medcare-web/medcare/pkg/metrics"
)

func newServeCommand(o *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MedCare web site",
		Long: `Run the web site until interrupted.

Configuration comes from MEDCARE_* environment variables and an optional
.env file, e.g. MEDCARE_HTTP_ADDR, MEDCARE_LOG_LEVEL, MEDCARE_SUBMIT_DELAY,
MEDCARE_SIMULATE_FAILURE and MEDCARE_COOKIE_SECURE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(o)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			log := newLogger(cfg, cmd.ErrOrStderr())

			svcOpts := []appointments.Option{appointments.WithLogger(log)}
			var gatherer prometheus.Gatherer
			if cfg.Metrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				svcOpts = append(svcOpts, appointments.WithMetrics(metrics.NewFormMetrics(reg)))
				gatherer = reg
			}

			svc, err := appointments.NewService(cfg.Appointments, svcOpts...)
			if err != nil {
				return err
			}
			h := appointments.Router(appointments.RouterOptions{
				Site:    svc,
				Metrics: gatherer,
				Checks:  []httpserver.Check{{Name: "catalog", Fn: svc.Ready}},
				Logger:  log,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.InfoContext(ctx, "starting medcare",
				slog.String("addr", cfg.HTTP.Addr),
				slog.Bool("metrics", cfg.Metrics),
				slog.Bool("simulate_failure", cfg.Appointments.SimulateFailure),
			)
			return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, h)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides MEDCARE_HTTP_ADDR")
	return cmd
}
