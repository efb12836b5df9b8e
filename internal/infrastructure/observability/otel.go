package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/zatekoja/Claimsadministration"

// Metrics holds all application metrics
type Metrics struct {
	RequestCount          metric.Int64Counter
	RequestDuration       metric.Float64Histogram
	EligibilityCheckCount metric.Int64Counter
	DecisionDuration      metric.Float64Histogram
	RulesEvaluatedCount   metric.Int64Counter
	TransitionCount       metric.Int64Counter
}

// Setup initializes OpenTelemetry
func Setup(ctx context.Context, serviceName, serviceVersion, endpoint string) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	// Set up trace exporter
	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	// Set up trace provider
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	// Shutdown function
	shutdown := func(ctx context.Context) error {
		return tracerProvider.Shutdown(ctx)
	}

	return shutdown, nil
}

// InitMetrics initializes application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	requestCount, err := meter.Int64Counter(
		"http.server.request.count",
		metric.WithDescription("Number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	eligibilityCheckCount, err := meter.Int64Counter(
		"eligibility.check.count",
		metric.WithDescription("Number of eligibility checks by outcome"),
	)
	if err != nil {
		return nil, err
	}

	decisionDuration, err := meter.Float64Histogram(
		"eligibility.decision.duration",
		metric.WithDescription("Eligibility decision duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	rulesEvaluatedCount, err := meter.Int64Counter(
		"eligibility.rules.evaluated",
		metric.WithDescription("Number of rules evaluated across eligibility checks"),
	)
	if err != nil {
		return nil, err
	}

	transitionCount, err := meter.Int64Counter(
		"lifecycle.transition.count",
		metric.WithDescription("Number of claim and pre-authorization status transitions"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCount:          requestCount,
		RequestDuration:       requestDuration,
		EligibilityCheckCount: eligibilityCheckCount,
		DecisionDuration:      decisionDuration,
		RulesEvaluatedCount:   rulesEvaluatedCount,
		TransitionCount:       transitionCount,
	}, nil
}

// StartSpan starts a new trace span
func StartSpan(ctx context.Context, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(instrumentationName)
	return tracer.Start(ctx, spanName)
}

// RecordError records an error in the current span
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
}

// SetSpanAttributes sets attributes on a span
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
}

// RecordRequestMetric records an HTTP request metric with attributes
func RecordRequestMetric(ctx context.Context, metrics *Metrics, method, path string, statusCode int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.status_code", statusCode),
	}

	metrics.RequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.RequestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordEligibilityMetric records the outcome of one eligibility check
func RecordEligibilityMetric(ctx context.Context, metrics *Metrics, eligible bool, rulesEvaluated int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.Bool("eligibility.eligible", eligible),
	}

	metrics.EligibilityCheckCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.DecisionDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	metrics.RulesEvaluatedCount.Add(ctx, int64(rulesEvaluated), metric.WithAttributes(attrs...))
}

// RecordTransitionMetric records a lifecycle status transition
func RecordTransitionMetric(ctx context.Context, metrics *Metrics, entityType, fromStatus, toStatus string) {
	attrs := []attribute.KeyValue{
		attribute.String("lifecycle.entity", entityType),
		attribute.String("lifecycle.from", fromStatus),
		attribute.String("lifecycle.to", toStatus),
	}
	metrics.TransitionCount.Add(ctx, 1, metric.WithAttributes(attrs...))
}
