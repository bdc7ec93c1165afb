// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a request value decoded by the binders given to
// Wrap and returns a Response. Responses render themselves: Templ patches
// components over a datastar event stream when the request came from a
// datastar action and writes plain HTML otherwise, JSON writes an envelope,
// SSE keeps a stream open for pushed updates.
//
//	type fieldRequest struct {
//		Field  string            `path:"field"`
//		Values map[string]string `json:"fields"`
//	}
//
//	validate := func(ctx handler.Context, req fieldRequest) handler.Response {
//		field, err := check(req)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.Templ(views.Field(field), handler.WithTarget("#"+field.Name+"-group"))
//	}
//
//	r.Post("/appointments/validate/{field}", handler.Wrap(validate,
//		handler.WithBinders[fieldRequest](binder.Path(chi.URLParam), binder.Signals()),
//		handler.WithErrorHandler[fieldRequest](errorHandler),
//	))
//
// Errors returned from binding or rendering go to the ErrorHandler.
// NewErrorHandler classifies them (validation errors are 422, HTTPError
// keeps its code, malformed input is 400) and answers with a JSON envelope,
// a toast or an error page depending on the client.
package handler
