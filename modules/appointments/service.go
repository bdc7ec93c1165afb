package appointments

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/medcare-web/medcare/handler"
	"github.com/medcare-web/medcare/pkg/binder"
	"github.com/medcare-web/medcare/pkg/cookie"
	"github.com/medcare-web/medcare/pkg/directory"
	"github.com/medcare-web/medcare/pkg/forms"
	"github.com/medcare-web/medcare/pkg/logger"
	"github.com/medcare-web/medcare/pkg/metrics"
	"github.com/medcare-web/medcare/pkg/submission"
	"github.com/medcare-web/medcare/pkg/timer"
)

// Service serves the pages and Datastar actions of the MedCare site.
type Service struct {
	cfg          Config
	catalog      *directory.Catalog
	engine       *forms.Engine
	seq          *submission.Sequencer
	submitter    submission.Submitter
	metrics      *metrics.FormMetrics
	cookies      *cookie.Manager
	views        *Views
	testimonials []Testimonial
	viewers      *viewers
	clock        timer.Clock
	log          *slog.Logger
	errorHandler handler.ErrorHandler
}

// Option configures a Service.
type Option func(*Service)

// WithCatalog replaces the embedded doctor listing.
func WithCatalog(c *directory.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithViews overrides some or all of the default views.
func WithViews(v *Views) Option {
	return func(s *Service) { s.views = v }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithClock(c timer.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithSubmitter replaces the simulated submitter.
func WithSubmitter(sub submission.Submitter) Option {
	return func(s *Service) { s.submitter = sub }
}

// WithMetrics records validation and submission metrics.
func WithMetrics(m *metrics.FormMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithTestimonials(t []Testimonial) Option {
	return func(s *Service) {
		if len(t) > 0 {
			s.testimonials = t
		}
	}
}

// NewService wires the form engine, the shared submission sequencer and the views.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	s := &Service{
		cfg:     cfg,
		catalog: directory.Default(),
		viewers: newViewers(),
		clock:   timer.Real(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.With(s.log, "appointments")
	s.views = s.views.withDefaults()
	s.cookies = cookie.NewFromConfig(cfg.Cookie)
	if s.testimonials == nil {
		s.testimonials = DefaultTestimonials()
	}

	engineOpts := []forms.Option{forms.WithClock(s.clock)}
	seqOpts := []submission.SequencerOption{
		submission.WithSequencerClock(s.clock),
		submission.WithLogger(s.log),
	}
	if s.metrics != nil {
		engineOpts = append(engineOpts, forms.WithObserver(s.metrics))
		seqOpts = append(seqOpts, submission.WithMetrics(s.metrics))
	}
	s.engine = forms.New(engineOpts...)

	if s.submitter == nil {
		s.submitter = submission.NewSimulatedSubmitter(
			submission.WithDelay(cfg.SubmitDelay),
			submission.WithClock(s.clock),
			submission.WithFailure(cfg.SimulateFailure),
		)
	}
	seq, err := submission.NewSequencer(s.submitter, seqOpts...)
	if err != nil {
		return nil, fmt.Errorf("appointments: %w", err)
	}
	s.seq = seq

	s.errorHandler = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{
		ErrorPage:   s.views.ErrorPage,
		ErrorToast:  s.views.ErrorToast,
		ToastTarget: "#" + ToastContainerID,
		Classifiers: []handler.Classifier{classifyDomainError},
		RequestID:   middleware.GetReqID,
	})
	return s, nil
}

// Viewers returns the number of open testimonial streams.
func (s *Service) Viewers() int { return s.viewers.len() }

// Ready fails when the doctor listing is empty.
func (s *Service) Ready(context.Context) error {
	if len(s.catalog.Directory.All()) == 0 {
		return ErrEmptyCatalog
	}
	return nil
}

// Handle returns the routes of the site.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", wrap(s.home, s.errorHandler))
	r.Get("/appointments", wrap(s.appointmentPage, s.errorHandler, binder.Query()))
	r.Get("/contact", wrap(s.contactPage, s.errorHandler))

	r.Route("/forms/{form}", func(r chi.Router) {
		bind := []handler.Bind{binder.Path(chi.URLParam), binder.Signals(), binder.Form()}
		r.Post("/", wrap(s.submit, s.errorHandler, bind...))
		r.Post("/validate/{field}", wrap(s.validateField, s.errorHandler, bind...))
		r.Post("/phone/{field}", wrap(s.formatPhone, s.errorHandler, bind...))
		r.Post("/department", wrap(s.changeDepartment, s.errorHandler, bind...))
		r.Post("/reset", wrap(s.reset, s.errorHandler, bind...))
	})

	r.Route("/doctors", func(r chi.Router) {
		r.Get("/", wrap(s.directoryPage, s.errorHandler, binder.Query()))
		r.Post("/search", wrap(s.search, s.errorHandler, binder.Query(), binder.Signals()))
		r.Get("/{id}", wrap(s.doctorProfile, s.errorHandler, binder.Path(chi.URLParam)))
	})

	r.Route("/theme", func(r chi.Router) {
		r.Post("/toggle", wrap(s.toggleTheme, s.errorHandler))
		r.Post("/system", wrap(s.systemTheme, s.errorHandler, binder.Query()))
	})

	r.Route("/testimonials", func(r chi.Router) {
		r.Get("/stream", wrap(s.testimonialStream, s.errorHandler))
		r.Post("/{viewer}/{action}", wrap(s.testimonialControl, s.errorHandler, binder.Path(chi.URLParam), binder.Query()))
	})

	r.NotFound(wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Error(handler.ErrNotFound)
	}, s.errorHandler))

	return r
}

func wrap[R any](h handler.HandlerFunc[R], eh handler.ErrorHandler, binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[R](binders...),
		handler.WithErrorHandler[R](eh),
	)
}
