package handler

import (
	"errors"
	"net/http"
)

var (
	ErrNilResponse       = errors.New("handler returned nil response")
	ErrSSENotInitialized = errors.New("SSE not initialized for this request")
)

// HTTPError is an error with a status code, a machine key and a message
// safe to show to the visitor.
type HTTPError struct {
	Code    int
	Key     string
	Message string
	Err     error
}

func (e HTTPError) Error() string {
	if e.Err != nil {
		return e.Key + ": " + e.Err.Error()
	}
	return e.Key
}

func (e HTTPError) Unwrap() error { return e.Err }

// Wrap returns a copy of e carrying err as its cause.
func (e HTTPError) Wrap(err error) HTTPError {
	e.Err = err
	return e
}

// NewHTTPError creates an HTTPError. The message defaults to the status text.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key, Message: http.StatusText(code)}
}

var (
	ErrBadRequest    = NewHTTPError(http.StatusBadRequest, "bad_request")
	ErrNotFound      = NewHTTPError(http.StatusNotFound, "not_found")
	ErrConflict      = NewHTTPError(http.StatusConflict, "conflict")
	ErrUnprocessable = NewHTTPError(http.StatusUnprocessableEntity, "validation_error")
	ErrBadGateway    = NewHTTPError(http.StatusBadGateway, "bad_gateway")
	ErrInternal      = NewHTTPError(http.StatusInternalServerError, "internal_error")
)
