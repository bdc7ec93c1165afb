package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/medcare-web/medcare/modules/appointments"
	"github.com/medcare-web/medcare/pkg/config"
	"github.com/medcare-web/medcare/pkg/httpserver"
	"github.com/medcare-web/medcare/pkg/logger"
)

const envPrefix = "MEDCARE_"

// ErrInvalidConfig reports a configuration value outside its allowed set.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the process configuration, read from MEDCARE_* variables.
type Config struct {
	HTTP httpserver.Config

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	// Metrics mounts /metrics and records form metrics.
	Metrics bool `env:"METRICS_ENABLED" envDefault:"true"`

	Appointments appointments.Config
}

func loadConfig(o *options) (Config, error) {
	cfg, err := config.Load[Config](o.configOptions()...)
	if err != nil {
		return Config{}, err
	}
	switch logger.Format(cfg.LogFormat) {
	case logger.FormatJSON, logger.FormatText:
	default:
		return Config{}, fmt.Errorf("%w: log format %q", ErrInvalidConfig, cfg.LogFormat)
	}
	return cfg, nil
}

func newLogger(cfg Config, w io.Writer) *slog.Logger {
	return logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithOutput(w),
		logger.WithAttr(slog.String("service", "medcare")),
		logger.WithContextExtractors(logger.RequestIDExtractor(middleware.GetReqID)),
	)
}
