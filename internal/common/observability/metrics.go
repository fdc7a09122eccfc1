// internal/common/observability/metrics.go
package observability

import (
	"context"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability holds the OTel instruments exported through Prometheus.
type Observability struct {
	meterProvider   *metric.MeterProvider
	analyses        otelmetric.Int64Counter
	analysisScore   otelmetric.Int64Histogram
	recommendations otelmetric.Int64Counter
	jobDuration     otelmetric.Float64Histogram
}

// New registers the exporter with the default Prometheus registerer.
func New(serviceName string) (*Observability, error) {
	return NewWithRegisterer(serviceName, promclient.DefaultRegisterer)
}

func NewWithRegisterer(serviceName string, reg promclient.Registerer) (*Observability, error) {
	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		return nil, err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	meter := provider.Meter(serviceName)

	o := &Observability{meterProvider: provider}

	if o.analyses, err = meter.Int64Counter(
		"analyses.completed",
		otelmetric.WithDescription("Job descriptions analyzed"),
	); err != nil {
		return nil, err
	}
	if o.analysisScore, err = meter.Int64Histogram(
		"analyses.total_score",
		otelmetric.WithDescription("Overall automation score per analysis"),
	); err != nil {
		return nil, err
	}
	if o.recommendations, err = meter.Int64Counter(
		"recommendations.served",
		otelmetric.WithDescription("Workflow recommendations returned"),
	); err != nil {
		return nil, err
	}
	if o.jobDuration, err = meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Observability) RecordAnalysis(ctx context.Context, lang string, usedFallback bool, totalScore int) {
	if o == nil || o.analyses == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("lang", lang),
		attribute.Bool("fallback", usedFallback),
	)
	o.analyses.Add(ctx, 1, attrs)
	o.analysisScore.Record(ctx, int64(totalScore), attrs)
}

func (o *Observability) RecordRecommendations(ctx context.Context, strategy string, cached bool, count int) {
	if o == nil || o.recommendations == nil {
		return
	}
	o.recommendations.Add(ctx, int64(count), otelmetric.WithAttributes(
		attribute.String("strategy", strategy),
		attribute.Bool("cached", cached),
	))
}

func (o *Observability) RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string) {
	if o == nil || o.jobDuration == nil {
		return
	}
	o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	))
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.meterProvider == nil {
		return nil
	}
	return o.meterProvider.Shutdown(ctx)
}
