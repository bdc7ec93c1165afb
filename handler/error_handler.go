package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/medcare-web/medcare/pkg/binder"
	"github.com/medcare-web/medcare/pkg/logger"
	"github.com/medcare-web/medcare/pkg/validator"
)

// MsgValidationFailed is the summary message of a 422 answer.
const MsgValidationFailed = "Please correct the highlighted fields"

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	StatusCode int
	Code       string
	Message    string
	Fields     map[string][]string
	Type       string // "error", "warning" or "info"
	LogLevel   slog.Level
}

// Detail converts the info to a JSON error detail.
func (i ErrorInfo) Detail() *ErrorDetail {
	return &ErrorDetail{Code: i.Code, Message: i.Message, Details: i.Fields}
}

// Classifier maps domain errors it recognizes to ErrorInfo. A matching
// classifier sets the log level itself; Type is derived when left empty.
type Classifier func(err error) (ErrorInfo, bool)

// Classify maps err to a status code and a visitor-safe message using the
// built-in rules: validation errors, HTTPError and binder errors.
// Unknown errors are 500 with a generic message.
func Classify(err error, classifiers ...Classifier) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrInternal.Key,
		Message:    "An error occurred processing your request",
	}

	var (
		httpErr HTTPError
		matched bool
	)
	for _, c := range classifiers {
		if ci, ok := c(err); ok {
			info, matched = ci, true
			break
		}
	}

	switch {
	case matched:
	case validator.IsValidationError(err):
		info.StatusCode = http.StatusUnprocessableEntity
		info.Code = ErrUnprocessable.Key
		info.Message = MsgValidationFailed
		info.Fields = validator.ExtractValidationErrors(err).Map()
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Code = httpErr.Key
		if httpErr.Message != "" {
			info.Message = httpErr.Message
		}
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		info.StatusCode = http.StatusUnsupportedMediaType
		info.Code = "unsupported_media_type"
		info.Message = http.StatusText(http.StatusUnsupportedMediaType)
	case errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrInvalidForm),
		errors.Is(err, binder.ErrInvalidQuery),
		errors.Is(err, binder.ErrInvalidPath),
		errors.Is(err, binder.ErrInvalidSignals):
		info.StatusCode = http.StatusBadRequest
		info.Code = ErrBadRequest.Key
		info.Message = "The request could not be read"
	}

	if info.Type == "" {
		info.Type = errorType(info.StatusCode)
	}
	if !matched {
		info.LogLevel = slog.LevelError
		if info.StatusCode < http.StatusInternalServerError {
			info.LogLevel = slog.LevelWarn
		}
	}
	return info
}

func errorType(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "error"
	case status >= http.StatusBadRequest:
		return "warning"
	default:
		return "info"
	}
}

// ErrorPageParams feeds the full error page.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams feeds the toast shown on datastar requests.
type ErrorToastParams struct {
	Message   string
	Type      string
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	ErrorPage  func(ErrorPageParams) templ.Component
	ErrorToast func(ErrorToastParams) templ.Component

	// ToastTarget defaults to "#toast-container", ToastMode to PatchPrepend.
	ToastTarget string
	ToastMode   datastar.ElementPatchMode

	Classifiers []Classifier
	RequestID   func(ctx context.Context) string
}

func (cfg ErrorHandlerConfig) withDefaults() ErrorHandlerConfig {
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}
	if cfg.RequestID == nil {
		cfg.RequestID = func(context.Context) string { return "" }
	}
	return cfg
}

// NewErrorHandler answers errors according to the request: an error
// envelope for JSON clients, a toast for datastar actions, a page otherwise.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler {
	cfg = cfg.withDefaults()
	log = logger.With(log, "error_handler")

	return func(ctx Context, err error) {
		r := ctx.Request()
		requestID := cfg.RequestID(r.Context())
		info := Classify(err, cfg.Classifiers...)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(requestID),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
		)

		switch {
		case WantsJSON(r):
			resp := jsonResponse{status: info.StatusCode, body: JSONResponse{Error: info.Detail()}}
			if rerr := resp.Render(ctx.ResponseWriter(), r); rerr != nil {
				log.ErrorContext(r.Context(), "render error json", logger.Error(rerr))
			}
		case IsDataStar(r):
			renderToast(ctx, cfg, info, requestID, log)
		default:
			renderPage(ctx, cfg, info, requestID, log)
		}
	}
}

func renderToast(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, requestID string, log *slog.Logger) {
	if cfg.ErrorToast == nil {
		log.Warn("no error toast configured", logger.RequestID(requestID))
		return
	}
	component := cfg.ErrorToast(ErrorToastParams{Message: info.Message, Type: info.Type, RequestID: requestID})
	sse := ctx.SSE()
	if sse == nil {
		return
	}
	if err := sse.PatchElementTempl(component, WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode)); err != nil {
		log.Error("render error toast", logger.RequestID(requestID), logger.Error(err))
	}
}

func renderPage(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, requestID string, log *slog.Logger) {
	w := ctx.ResponseWriter()
	if cfg.ErrorPage == nil {
		http.Error(w, info.Message, info.StatusCode)
		return
	}
	component := cfg.ErrorPage(ErrorPageParams{
		Error:      info.Message,
		StatusCode: info.StatusCode,
		RequestID:  requestID,
		RetryURL:   ctx.Request().URL.Path,
	})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(info.StatusCode)
	if err := component.Render(ctx, w); err != nil {
		log.Error("render error page", logger.RequestID(requestID), logger.Error(err))
	}
}
