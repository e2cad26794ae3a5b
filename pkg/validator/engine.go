package validator

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rubiconsolutions/guardion/pkg/async"
	"github.com/rubiconsolutions/guardion/pkg/logger"
	"github.com/rubiconsolutions/guardion/pkg/mxresolver"
)

// DefaultMXTimeout bounds each MX lookup unless overridden.
const DefaultMXTimeout = 3 * time.Second

// RunOptions tune a single Validate call.
type RunOptions struct {
	Threshold   Severity
	MXEnabled   bool
	MXTimeout   time.Duration
	Concurrency int
}

// RunOption overrides one run setting.
type RunOption func(*RunOptions)

// WithThreshold sets the minimum severity that invalidates the result.
func WithThreshold(s Severity) RunOption {
	return func(o *RunOptions) { o.Threshold = s }
}

// WithMXCheck turns MX lookups on or off for the run. When off, email rules
// check syntax only.
func WithMXCheck(enabled bool) RunOption {
	return func(o *RunOptions) { o.MXEnabled = enabled }
}

// WithMXTimeout bounds each MX lookup. Zero or negative leaves lookups
// bounded only by the caller's context.
func WithMXTimeout(d time.Duration) RunOption {
	return func(o *RunOptions) { o.MXTimeout = d }
}

// WithConcurrency evaluates up to n fields at once. Result order does not
// depend on n.
func WithConcurrency(n int) RunOption {
	return func(o *RunOptions) { o.Concurrency = n }
}

// Engine evaluates schemas against records. It holds no per-run state and
// is safe for concurrent use.
type Engine struct {
	resolver mxresolver.Resolver
	logger   *slog.Logger
	defaults RunOptions
}

// Option configures an Engine.
type Option func(*Engine)

// WithResolver sets the MX resolver. Defaults to the system resolver.
func WithResolver(r mxresolver.Resolver) Option {
	return func(e *Engine) {
		if r != nil {
			e.resolver = r
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithConfig replaces the run defaults with cfg.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.defaults = cfg.RunOptions() }
}

// WithDefaults applies run options to every Validate call before the
// per-call options.
func WithDefaults(opts ...RunOption) Option {
	return func(e *Engine) {
		for _, opt := range opts {
			opt(&e.defaults)
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		resolver: mxresolver.NewNetResolver(nil),
		logger:   slog.Default(),
		defaults: RunOptions{
			Threshold:   SeverityError,
			MXEnabled:   true,
			MXTimeout:   DefaultMXTimeout,
			Concurrency: 1,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type fieldReport struct {
	errors   ValidationErrors
	warnings []Warning
}

// Validate evaluates every enabled rule of schema against record.
//
// Violations are collected into the Result, never returned as error. The
// error is non-nil only for configuration mistakes (matching
// ErrConfiguration) and for cancellation of ctx. Every enabled field must be
// present in record; a missing field aborts the run before any rule runs.
func (e *Engine) Validate(ctx context.Context, schema Schema, record Record, opts ...RunOption) (Result, error) {
	ro := e.defaults
	for _, opt := range opts {
		opt(&ro)
	}
	if !ro.Threshold.IsValid() {
		return Result{}, &ConfigError{Param: "threshold", Value: int(ro.Threshold), Err: ErrInvalidSeverity}
	}
	if record == nil {
		return Result{}, &ConfigError{Err: ErrNilRecord}
	}

	values := make([]any, len(schema.bindings))
	for i, b := range schema.bindings {
		if b.disabled {
			continue
		}
		v, ok := record.Lookup(b.field)
		if !ok {
			return Result{}, &ConfigError{Field: b.field, Err: ErrFieldNotInRecord}
		}
		values[i] = v
	}

	runID := uuid.NewString()
	start := time.Now()

	evalField := func(ctx context.Context, i int, b FieldBinding) (fieldReport, error) {
		return e.evaluateField(ctx, b, values[i], ro)
	}

	var (
		reports []fieldReport
		err     error
	)
	if ro.Concurrency > 1 && len(schema.bindings) > 1 {
		reports, err = async.Map(ctx, ro.Concurrency, schema.bindings, evalField)
	} else {
		reports = make([]fieldReport, 0, len(schema.bindings))
		for i, b := range schema.bindings {
			rep, ferr := evalField(ctx, i, b)
			if ferr != nil {
				err = ferr
				break
			}
			reports = append(reports, rep)
		}
	}
	if err != nil {
		e.logger.DebugContext(ctx, "validation aborted", logger.RunID(runID), logger.Error(err))
		return Result{}, err
	}

	result := Result{runID: runID, threshold: ro.Threshold}
	for _, rep := range reports {
		result.errors = append(result.errors, rep.errors...)
		result.warnings = append(result.warnings, rep.warnings...)
	}

	e.logger.DebugContext(ctx, "validation completed",
		logger.RunID(runID),
		logger.Count("fields", len(schema.bindings)),
		logger.Count("errors", len(result.errors)),
		logger.Count("warnings", len(result.warnings)),
		slog.Bool("valid", result.IsValid()),
		logger.Duration(time.Since(start)),
	)
	return result, nil
}

func (e *Engine) evaluateField(ctx context.Context, b FieldBinding, value any, ro RunOptions) (fieldReport, error) {
	var rep fieldReport
	if b.disabled {
		return rep, nil
	}
	if err := ctx.Err(); err != nil {
		return rep, err
	}
	for _, r := range b.rules {
		if !r.enabled {
			continue
		}
		violated, warning, err := e.evaluate(ctx, r, value, ro)
		if err != nil {
			return fieldReport{}, err
		}
		if violated {
			rep.errors = append(rep.errors, r.violation())
		}
		if warning != nil {
			rep.warnings = append(rep.warnings, *warning)
		}
	}
	return rep, nil
}
