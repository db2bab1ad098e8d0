package navigation

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func startSpan(ctx context.Context, tracer trace.Tracer, op, stack string, vm ViewModel) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("navigation.stack", stack),
	}
	if vm != nil {
		attrs = append(attrs, attribute.String("navigation.view_model", vm.ID()))
	}
	return tracer.Start(ctx, "navigation."+op, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
