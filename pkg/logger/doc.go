// Package logger builds *slog.Logger instances with a consistent set of
// options and attribute helpers.
//
// New returns a logger backed by slog's text or JSON handler. Options select
// the format, level, output and static attributes, and ContextExtractor
// callbacks add request-scoped values (for example a validation run id stored
// in the context) to every record logged with a *Context method.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "guardion"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	logger.SetAsDefault(log)
//
//	log.WarnContext(ctx, "mx lookup degraded",
//	    logger.Field("email"),
//	    logger.Domain("example.com"),
//	    logger.Error(err),
//	)
//
// Attribute helpers (Field, Rule, Severity, Domain, RunID, Duration, ...) keep
// key names identical across packages. Error and Errors return an empty
// attribute for nil errors so call sites need no nil checks.
package logger
