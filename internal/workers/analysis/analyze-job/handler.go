// internal/workers/analysis/analyze-job/handler.go
package analyzejob

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "automation-advisor/internal/common/errors"
	"automation-advisor/internal/common/logger"
	"automation-advisor/internal/common/metrics"
	"automation-advisor/internal/common/observability"
	"automation-advisor/internal/models"
)

const (
	TaskType = "analyze-job-text"
)

// Analyzer runs the parse, classify and aggregate stages for one job text.
type Analyzer interface {
	Analyze(ctx context.Context, jobText, lang string) (*models.AnalysisResult, error)
}

type Handler struct {
	config       *Config
	analyzer     Analyzer
	errorHandler *apperrors.ErrorHandler
	telemetry    *observability.Observability
	logger       logger.Logger
}

func NewHandler(config *Config, analyzer Analyzer, telemetry *observability.Observability, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		analyzer:     analyzer,
		errorHandler: apperrors.NewErrorHandler(l),
		telemetry:    telemetry,
		logger:       l,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job.Variables)
	if err != nil {
		h.fail(ctx, client, job, err, start)
		return
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, err, start)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.telemetry.RecordJobDuration(ctx, TaskType, time.Since(start), "completed")
}

func (h *Handler) parseInput(variables string) (*Input, error) {
	if res := inputSchema.ValidateBytes([]byte(variables)); !res.Valid {
		return nil, apperrors.NewInvalidAnalysisInputError(res.Error())
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewInvalidAnalysisInputError(err.Error())
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.JobText) == "" {
		return nil, apperrors.NewInvalidAnalysisInputError("jobText must not be blank")
	}

	lang := input.Lang
	if lang == "" {
		lang = h.config.DefaultLang
	}

	result, err := h.analyzer.Analyze(ctx, input.JobText, lang)
	if err != nil {
		return nil, err
	}

	h.logger.Info("job text analyzed", map[string]interface{}{
		"analysisId":   result.ID,
		"taskCount":    len(result.Tasks),
		"totalScore":   result.TotalScore,
		"usedFallback": result.UsedFallback,
	})

	return &Output{AnalysisResult: *result}, nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error, start time.Time) {
	code := apperrors.Normalize(err).Code
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(code)).Inc()
	h.telemetry.RecordJobDuration(ctx, TaskType, time.Since(start), "failed")
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
