package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcare-web/medcare/handler"
	"github.com/medcare-web/medcare/pkg/binder"
	"github.com/medcare-web/medcare/pkg/logger"
	"github.com/medcare-web/medcare/pkg/validator"
)

var errSlow = errors.New("upstream slow")

func slowClassifier(err error) (handler.ErrorInfo, bool) {
	if !errors.Is(err, errSlow) {
		return handler.ErrorInfo{}, false
	}
	return handler.ErrorInfo{StatusCode: http.StatusBadGateway, Code: "slow", Message: "Try again", LogLevel: slog.LevelWarn}, true
}

func TestClassify(t *testing.T) {
	t.Parallel()

	verrs := validator.ValidationErrors{
		{Field: "email", Message: "Please enter a valid email address"},
		{Field: "phone", Message: "Please enter a valid phone number"},
	}

	tests := []struct {
		name   string
		err    error
		status int
		code   string
		typ    string
	}{
		{"generic", errors.New("boom"), http.StatusInternalServerError, "internal_error", "error"},
		{"validation", fmt.Errorf("submit: %w", verrs), http.StatusUnprocessableEntity, "validation_error", "warning"},
		{"http error", handler.ErrConflict, http.StatusConflict, "conflict", "warning"},
		{"wrapped http error", handler.ErrBadGateway.Wrap(errSlow), http.StatusBadGateway, "bad_gateway", "error"},
		{"bad form", fmt.Errorf("%w: x", binder.ErrInvalidForm), http.StatusBadRequest, "bad_request", "warning"},
		{"bad signals", binder.ErrInvalidSignals, http.StatusBadRequest, "bad_request", "warning"},
		{"media type", binder.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, "unsupported_media_type", "warning"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			info := handler.Classify(tt.err)
			assert.Equal(t, tt.status, info.StatusCode)
			assert.Equal(t, tt.code, info.Code)
			assert.Equal(t, tt.typ, info.Type)
		})
	}

	t.Run("validation details", func(t *testing.T) {
		t.Parallel()
		info := handler.Classify(verrs)
		assert.Equal(t, handler.MsgValidationFailed, info.Message)
		assert.Equal(t, []string{"Please enter a valid email address"}, info.Fields["email"])
		assert.Equal(t, slog.LevelWarn, info.LogLevel)
	})

	t.Run("wrapped validation details", func(t *testing.T) {
		t.Parallel()
		info := handler.Classify(fmt.Errorf("submit: %w", verrs))
		assert.Equal(t, map[string][]string{
			"email": {"Please enter a valid email address"},
			"phone": {"Please enter a valid phone number"},
		}, info.Fields)
	})

	t.Run("classifiers win", func(t *testing.T) {
		t.Parallel()
		info := handler.Classify(handler.ErrBadGateway.Wrap(errSlow), slowClassifier)
		assert.Equal(t, "slow", info.Code)
		assert.Equal(t, "error", info.Type)
		assert.Equal(t, slog.LevelWarn, info.LogLevel)
	})
}

func newErrorHandler(buf *bytes.Buffer) handler.ErrorHandler {
	log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatJSON))
	return handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage: func(p handler.ErrorPageParams) templ.Component {
			return text(fmt.Sprintf("<h1>%d</h1><p>%s</p>", p.StatusCode, p.Error))
		},
		ErrorToast: func(p handler.ErrorToastParams) templ.Component {
			return text(`<div class="toast ` + p.Type + `">` + p.Message + `</div>`)
		},
		Classifiers: []handler.Classifier{slowClassifier},
	})
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	t.Run("json client gets the envelope", func(t *testing.T) {
		t.Parallel()
		var logs bytes.Buffer
		h := newErrorHandler(&logs)

		r := httptest.NewRequest(http.MethodPost, "/appointments", nil)
		r.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		h(handler.NewContext(rec, r), validator.ValidationErrors{{Field: "email", Message: "Email Address is required"}})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var body handler.JSONResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotNil(t, body.Error)
		assert.Equal(t, map[string][]string{"email": {"Email Address is required"}}, body.Error.Details)

		assert.Contains(t, logs.String(), `"level":"WARN"`)
		assert.Contains(t, logs.String(), `"component":"error_handler"`)
	})

	t.Run("datastar action gets a toast", func(t *testing.T) {
		t.Parallel()
		h := newErrorHandler(&bytes.Buffer{})
		rec := httptest.NewRecorder()
		h(handler.NewContext(rec, datastarRequest(http.MethodPost, "/appointments", nil)), errSlow)

		body := rec.Body.String()
		assert.Contains(t, body, "datastar-patch-elements")
		assert.Contains(t, body, "#toast-container")
		assert.Contains(t, body, `toast error`)
		assert.Contains(t, body, "Try again")
	})

	t.Run("browser gets the error page", func(t *testing.T) {
		t.Parallel()
		h := newErrorHandler(&bytes.Buffer{})
		rec := httptest.NewRecorder()
		h(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil)), handler.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Body.String(), "<h1>404</h1>"))
	})
}
