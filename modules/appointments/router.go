package appointments

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medcare-web/medcare/pkg/httpserver"
	"github.com/medcare-web/medcare/pkg/logger"
)

// Mountable is a service exposing its own routes.
type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures the application router. Site is required; the
// metrics endpoint is only mounted when Metrics is set.
type RouterOptions struct {
	Site    Mountable
	Metrics prometheus.Gatherer
	Checks  []httpserver.Check
	Logger  *slog.Logger
}

// Router assembles the site with the shared middleware and the operational endpoints.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	svc, err := appointments.NewService(cfg, appointments.WithMetrics(metrics.NewFormMetrics(reg)))
//	h := appointments.Router(appointments.RouterOptions{Site: svc, Metrics: reg})
func Router(opts RouterOptions) chi.Router {
	log := logger.OrNop(opts.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthHandler(log))
	r.Get("/readyz", httpserver.HealthHandler(log, opts.Checks...))
	if opts.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Metrics, promhttp.HandlerOpts{}))
	}
	if opts.Site != nil {
		r.Mount("/", opts.Site.Handle())
	}
	return r
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	log = logger.With(log, "http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
