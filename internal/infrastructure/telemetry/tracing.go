package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer used for application spans
const TracerName = "github.com/fintrak/backend"

// StartSpan starts an internal span named after the operation, e.g. "state.add_bill"
//
//	ctx, span := telemetry.StartSpan(ctx, "state.add_bill", attribute.String("document.field", "bills"))
//	defer span.End()
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordError marks the span failed. A nil error is ignored.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// End records err, if any, and ends the span. Meant for use with a named result:
//
//	defer func() { telemetry.End(span, err) }()
func End(span trace.Span, err error) {
	RecordError(span, err)
	span.End()
}
