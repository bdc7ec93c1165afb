// Package binder decodes HTTP request data into structs.
//
// Each binder reads one source and only touches fields tagged for it, so
// several binders can fill one request value:
//
//	type fieldRequest struct {
//		Field  string            `path:"field"`
//		Values map[string]string `form:"*" json:"fields"`
//	}
//
//	handler.Wrap(validateField,
//		handler.WithBinders[fieldRequest](
//			binder.Path(chi.URLParam),
//			binder.Signals(),
//			binder.Form(),
//		),
//	)
//
// Signals reads datastar signals and returns ErrBinderNotApplicable for
// plain form posts; Form does the same for JSON bodies. Values are copied
// as posted. Normalizing them, such as phone formatting, is the caller's job.
package binder
