package navigation

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/cristianoliveira/viewstack/pkg/navigation"

// Logger is the structured logging interface used by this package.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any) {}
func (noopLogger) Info(msg string, args ...any)  {}
func (noopLogger) Warn(msg string, args ...any)  {}
func (noopLogger) Error(msg string, args ...any) {}

// Option configures a ViewStack, ParameterViewStack or PopupStack.
type Option func(*options)

type options struct {
	logger  Logger
	metrics *Metrics
	tracer  trace.Tracer
}

func defaultOptions() options {
	return options{
		logger: noopLogger{},
		tracer: otel.Tracer(tracerName),
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l == nil {
			l = noopLogger{}
		}
		o.logger = l
	}
}

// WithMetrics records operation and reconciliation metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}
