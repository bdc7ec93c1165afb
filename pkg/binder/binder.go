package binder

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

// DefaultMaxMemory bounds the in-memory part of a parsed multipart form.
const DefaultMaxMemory = 1 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data
// bodies into fields tagged `form:"name"`. A map[string]string field tagged
// `form:"*"` collects the remaining fields.
//
//	type appointmentRequest struct {
//		Action string            `form:"_action"`
//		Values map[string]string `form:"*"`
//	}
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected a form body", ErrMissingContentType)
		}
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidForm, err)
		}

		var values map[string][]string
		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidForm, err)
			}
			values = r.PostForm
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidForm, err)
			}
			values = r.MultipartForm.Value
		case "application/json":
			return ErrBinderNotApplicable
		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
		}

		return bindValues(v, "form", values, ErrInvalidForm)
	}
}

// Query binds URL query parameters into fields tagged `query:"name"`.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindValues(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}

// Path binds route parameters into fields tagged `path:"name"`, reading
// them with lookup (chi.URLParam for chi routers).
func Path(lookup func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if lookup == nil {
			return fmt.Errorf("%w: nil lookup", ErrInvalidPath)
		}
		rv, err := target(v)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPath, err)
		}
		values := make(map[string][]string)
		rt := rv.Type()
		for i := range rt.NumField() {
			if name, ok := tagged(rt.Field(i), "path"); ok {
				if value := lookup(r, name); value != "" {
					values[name] = []string{value}
				}
			}
		}
		return bindValues(v, "path", values, ErrInvalidPath)
	}
}

// Signals decodes datastar signals into v using its json tags. Signals
// travel in the "datastar" query parameter on GET and as a JSON body
// otherwise; requests carrying neither are not applicable.
func Signals() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if !carriesSignals(r) {
			return ErrBinderNotApplicable
		}
		if _, err := target(v); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSignals, err)
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return errors.Join(ErrInvalidSignals, err)
		}
		return nil
	}
}

func carriesSignals(r *http.Request) bool {
	if r.Method == http.MethodGet {
		return r.URL.Query().Has("datastar")
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return strings.EqualFold(mediaType, "application/json")
}
