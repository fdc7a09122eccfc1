// internal/common/observability/stage.go
package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"automation-advisor/internal/common/logger"
	"automation-advisor/internal/common/metrics"
)

// StageObserver is notified around every pipeline stage. It is passed to the
// pipeline explicitly; nothing here is process-global. OnStageStart returns
// the context the stage should run with.
type StageObserver interface {
	OnStageStart(ctx context.Context, stage string) context.Context
	OnStageEnd(ctx context.Context, stage string, result map[string]interface{}, err error)
}

type stageStartKey struct{ stage string }

// markStart records the first start time of a stage in ctx.
func markStart(ctx context.Context, stage string) context.Context {
	if _, ok := ctx.Value(stageStartKey{stage}).(time.Time); ok {
		return ctx
	}
	return context.WithValue(ctx, stageStartKey{stage}, time.Now())
}

func elapsed(ctx context.Context, stage string) time.Duration {
	if start, ok := ctx.Value(stageStartKey{stage}).(time.Time); ok {
		return time.Since(start)
	}
	return 0
}

// ==========================
// Nop
// ==========================

type NopObserver struct{}

func (NopObserver) OnStageStart(ctx context.Context, _ string) context.Context { return ctx }

func (NopObserver) OnStageEnd(context.Context, string, map[string]interface{}, error) {}

// ==========================
// Logging
// ==========================

type LoggingObserver struct {
	log logger.Logger
}

func NewLoggingObserver(log logger.Logger) *LoggingObserver {
	return &LoggingObserver{log: logger.ForComponent(log, "pipeline")}
}

func (o *LoggingObserver) OnStageStart(ctx context.Context, stage string) context.Context {
	o.log.Debug("stage started", map[string]interface{}{"stage": stage})
	return markStart(ctx, stage)
}

func (o *LoggingObserver) OnStageEnd(ctx context.Context, stage string, result map[string]interface{}, err error) {
	fields := map[string]interface{}{
		"stage":      stage,
		"durationMs": elapsed(ctx, stage).Milliseconds(),
	}
	for k, v := range result {
		fields[k] = v
	}

	if err != nil {
		o.log.WithError(err).Error("stage failed", fields)
		return
	}
	o.log.Info("stage completed", fields)
}

// ==========================
// Prometheus
// ==========================

type MetricsObserver struct{}

func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

func (o *MetricsObserver) OnStageStart(ctx context.Context, stage string) context.Context {
	return markStart(ctx, stage)
}

func (o *MetricsObserver) OnStageEnd(ctx context.Context, stage string, _ map[string]interface{}, err error) {
	metrics.PipelineStageDuration.WithLabelValues(stage).Observe(elapsed(ctx, stage).Seconds())

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
	}
	metrics.PipelineStageOutcomes.WithLabelValues(stage, outcome).Inc()
}

// ==========================
// Tracing
// ==========================

type TracingObserver struct {
	tracer trace.Tracer
}

func NewTracingObserver(tp trace.TracerProvider) *TracingObserver {
	return &TracingObserver{tracer: tp.Tracer("automation-advisor/pipeline")}
}

func (o *TracingObserver) OnStageStart(ctx context.Context, stage string) context.Context {
	ctx, _ = o.tracer.Start(ctx, stage, trace.WithAttributes(attribute.String("pipeline.stage", stage)))
	return ctx
}

func (o *TracingObserver) OnStageEnd(ctx context.Context, stage string, result map[string]interface{}, err error) {
	span := trace.SpanFromContext(ctx)
	for k, v := range result {
		switch val := v.(type) {
		case int:
			span.SetAttributes(attribute.Int(k, val))
		case bool:
			span.SetAttributes(attribute.Bool(k, val))
		case string:
			span.SetAttributes(attribute.String(k, val))
		case float64:
			span.SetAttributes(attribute.Float64(k, val))
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// ==========================
// Multi
// ==========================

// MultiObserver fans out to several observers. Ends run in reverse order so
// a tracing observer listed first closes its span last.
type MultiObserver []StageObserver

func (m MultiObserver) OnStageStart(ctx context.Context, stage string) context.Context {
	for _, o := range m {
		ctx = o.OnStageStart(ctx, stage)
	}
	return ctx
}

func (m MultiObserver) OnStageEnd(ctx context.Context, stage string, result map[string]interface{}, err error) {
	for i := len(m) - 1; i >= 0; i-- {
		m[i].OnStageEnd(ctx, stage, result, err)
	}
}
