package appointments

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/medcare-web/medcare/handler"
	"github.com/medcare-web/medcare/pkg/carousel"
	"github.com/medcare-web/medcare/pkg/directory"
	"github.com/medcare-web/medcare/pkg/forms"
	"github.com/medcare-web/medcare/pkg/selection"
	"github.com/medcare-web/medcare/pkg/submission"
)

var (
	ErrInvalidTestimonials = errors.New("appointments: invalid testimonials")
	ErrEmptyCatalog        = errors.New("appointments: doctor listing is empty")

	ErrUnknownForm   = handler.NewHTTPError(http.StatusNotFound, "unknown_form")
	ErrUnknownViewer = handler.NewHTTPError(http.StatusNotFound, "unknown_viewer")
	ErrUnknownAction = handler.NewHTTPError(http.StatusBadRequest, "unknown_action")
)

// Messages shown for domain errors.
const (
	MsgInFlight      = "A submission is already in progress. Please wait."
	MsgUnknownDoctor = "That doctor could not be found"
	MsgBadSelection  = "Please choose a doctor from the selected department"
)

func classifyDomainError(err error) (handler.ErrorInfo, bool) {
	info := handler.ErrorInfo{LogLevel: slog.LevelWarn}
	switch {
	case errors.Is(err, submission.ErrInFlight):
		info.StatusCode, info.Code, info.Message = http.StatusConflict, "submission_in_flight", MsgInFlight
	case errors.Is(err, directory.ErrUnknownDoctor):
		info.StatusCode, info.Code, info.Message = http.StatusNotFound, "unknown_doctor", MsgUnknownDoctor
	case errors.Is(err, forms.ErrUnknownField):
		info.StatusCode, info.Code, info.Message = http.StatusNotFound, "unknown_field", http.StatusText(http.StatusNotFound)
	case errors.Is(err, selection.ErrNotOffered), errors.Is(err, selection.ErrSelectDisabled):
		info.StatusCode, info.Code, info.Message = http.StatusBadRequest, "invalid_selection", MsgBadSelection
	case errors.Is(err, carousel.ErrOutOfRange):
		info.StatusCode, info.Code, info.Message = http.StatusBadRequest, "out_of_range", http.StatusText(http.StatusBadRequest)
	default:
		return handler.ErrorInfo{}, false
	}
	return info, true
}
