// Package logger builds slog loggers for the MedCare services.
//
// New returns a *slog.Logger configured by functional options: format (json
// or text), level, destination, static attributes and context extractors.
// Extractors run on every record and add values carried by the context,
// most notably the request id assigned by the HTTP middleware:
//
//	log := logger.New(
//	    logger.WithEnvironment("development", "medcare"),
//	    logger.WithContextExtractors(logger.RequestIDExtractor(middleware.GetReqID)),
//	)
//	log.InfoContext(ctx, "field validated", logger.Form(id), logger.Field(name))
//
// The attribute helpers keep key names consistent across packages. Helpers
// taking an error or an id return an empty Attr for zero values, so they can
// be passed unconditionally.
package logger
