// internal/workers/recommendation/recommend-workflows/handler.go
package recommendworkflows

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "automation-advisor/internal/common/errors"
	"automation-advisor/internal/common/logger"
	"automation-advisor/internal/common/metrics"
	"automation-advisor/internal/common/observability"
	"automation-advisor/internal/recommendation/service"
)

const (
	TaskType = "recommend-workflows"
)

// Recommender answers one recommendation request.
type Recommender interface {
	Recommend(ctx context.Context, req service.Request) (*service.Response, error)
}

type Handler struct {
	config       *Config
	recommender  Recommender
	errorHandler *apperrors.ErrorHandler
	telemetry    *observability.Observability
	logger       logger.Logger
}

func NewHandler(config *Config, recommender Recommender, telemetry *observability.Observability, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		recommender:  recommender,
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
		return nil, apperrors.NewInvalidRecommendationInputError(res.Error())
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewInvalidRecommendationInputError(err.Error())
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	topK := input.TopK
	if topK <= 0 {
		topK = h.config.DefaultTopK
	}

	resp, err := h.recommender.Recommend(ctx, service.Request{
		TaskText:             input.TaskText,
		SubtaskID:            input.SubtaskID,
		Subtasks:             input.Subtasks,
		SelectedIntegrations: input.SelectedIntegrations,
		TopK:                 topK,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("workflows recommended", map[string]interface{}{
		"subtaskId": input.SubtaskID,
		"strategy":  resp.Strategy,
		"cached":    resp.Cached,
		"count":     len(resp.Recommendations),
	})

	return &Output{
		Recommendations: resp.Recommendations,
		Strategy:        resp.Strategy,
		Cached:          resp.Cached,
	}, nil
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
