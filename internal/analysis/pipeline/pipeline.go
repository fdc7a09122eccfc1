// internal/analysis/pipeline/pipeline.go
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"automation-advisor/internal/analysis/classifier"
	"automation-advisor/internal/analysis/jobparser"
	"automation-advisor/internal/analysis/roi"
	"automation-advisor/internal/common/logger"
	"automation-advisor/internal/common/observability"
	"automation-advisor/internal/heuristics"
	"automation-advisor/internal/models"
)

const (
	StageParse     = "parse"
	StageClassify  = "classify"
	StageAggregate = "aggregate"
)

// Parser is the job parser as seen by the pipeline.
type Parser interface {
	Parse(ctx context.Context, jobText, lang string) (*jobparser.Result, error)
}

// Pipeline runs parse, classify and aggregate for one job description. It
// holds no per-run state and is safe for concurrent use.
type Pipeline struct {
	parser     Parser
	classifier *classifier.Classifier
	aggregator *roi.Aggregator
	observer   observability.StageObserver
	telemetry  *observability.Observability
	logger     logger.Logger
	now        func() time.Time
}

type Option func(*Pipeline)

// WithTelemetry records finished analyses on the OTel meter.
func WithTelemetry(o *observability.Observability) Option {
	return func(p *Pipeline) { p.telemetry = o }
}

// WithClock overrides the time source for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

func New(parser Parser, cfg *heuristics.Config, observer observability.StageObserver, log logger.Logger, opts ...Option) *Pipeline {
	if observer == nil {
		observer = observability.NopObserver{}
	}
	p := &Pipeline{
		parser:     parser,
		classifier: classifier.New(cfg),
		aggregator: roi.New(cfg.Aggregator),
		observer:   observer,
		logger:     logger.ForComponent(log, "analysis-pipeline"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Analyze returns the analysis for jobText. Parser errors end the run; the
// classify and aggregate stages cannot fail.
func (p *Pipeline) Analyze(ctx context.Context, jobText, lang string) (*models.AnalysisResult, error) {
	lang = jobparser.NormalizeLang(lang)

	parsed, err := p.parse(ctx, jobText, lang)
	if err != nil {
		return nil, err
	}

	tasks := p.classify(ctx, parsed)
	result := p.aggregate(ctx, tasks, jobText, lang)
	result.UsedFallback = parsed.UsedFallback

	p.telemetry.RecordAnalysis(ctx, lang, parsed.UsedFallback, result.TotalScore)
	p.logger.Info("analysis completed", map[string]interface{}{
		"analysisId":   result.ID,
		"taskCount":    len(result.Tasks),
		"totalScore":   result.TotalScore,
		"usedFallback": result.UsedFallback,
	})
	return result, nil
}

func (p *Pipeline) parse(ctx context.Context, jobText, lang string) (*jobparser.Result, error) {
	stageCtx := p.observer.OnStageStart(ctx, StageParse)
	parsed, err := p.parser.Parse(stageCtx, jobText, lang)
	if err != nil {
		p.observer.OnStageEnd(stageCtx, StageParse, nil, err)
		return nil, err
	}
	p.observer.OnStageEnd(stageCtx, StageParse, map[string]interface{}{
		"taskCount":    len(parsed.Tasks),
		"usedFallback": parsed.UsedFallback,
	}, nil)
	return parsed, nil
}

func (p *Pipeline) classify(ctx context.Context, parsed *jobparser.Result) []models.Task {
	stageCtx := p.observer.OnStageStart(ctx, StageClassify)
	tasks := make([]models.Task, 0, len(parsed.Tasks))
	for _, desc := range parsed.Tasks {
		tasks = append(tasks, p.classifier.ClassifyDescriptor(desc, parsed.JobTitle))
	}
	p.observer.OnStageEnd(stageCtx, StageClassify, map[string]interface{}{
		"taskCount": len(tasks),
	}, nil)
	return tasks
}

func (p *Pipeline) aggregate(ctx context.Context, tasks []models.Task, jobText, lang string) *models.AnalysisResult {
	stageCtx := p.observer.OnStageStart(ctx, StageAggregate)
	result := p.aggregator.Aggregate(tasks, jobText, lang)
	result.ID = uuid.NewString()
	result.CreatedAt = p.now().UTC()
	p.observer.OnStageEnd(stageCtx, StageAggregate, map[string]interface{}{
		"totalScore":      result.TotalScore,
		"recommendations": len(result.Recommendations),
	}, nil)
	return &result
}
