// internal/analysis/jobparser/parser.go
package jobparser

import (
	"context"
	"encoding/json"
	"strings"

	apperrors "automation-advisor/internal/common/errors"
	"automation-advisor/internal/common/genai"
	"automation-advisor/internal/common/logger"
	"automation-advisor/internal/common/metrics"
	"automation-advisor/internal/heuristics"
	"automation-advisor/internal/models"
)

// Result is the parser output for one job description.
type Result struct {
	JobTitle     string
	Tasks        []models.TaskDescriptor
	UsedFallback bool
}

// configChecker is implemented by completers that can report missing settings.
type configChecker interface {
	Missing() []string
}

// Parser turns a job description into task descriptors with one completion call.
type Parser struct {
	completer genai.Completer
	cfg       *heuristics.Config
	logger    logger.Logger
}

func New(completer genai.Completer, cfg *heuristics.Config, log logger.Logger) *Parser {
	return &Parser{
		completer: completer,
		cfg:       cfg,
		logger:    logger.ForComponent(log, "job-parser"),
	}
}

// NormalizeLang maps anything but "en" to "de".
func NormalizeLang(lang string) string {
	if strings.EqualFold(strings.TrimSpace(lang), LangEN) {
		return LangEN
	}
	return LangDE
}

// Parse issues exactly one completion call. Configuration errors and empty
// extractions are returned; a failed call degrades to a single fallback task.
func (p *Parser) Parse(ctx context.Context, jobText, lang string) (*Result, error) {
	if strings.TrimSpace(jobText) == "" {
		return nil, apperrors.NewInvalidAnalysisInputError("job text is empty")
	}
	lang = NormalizeLang(lang)
	jobTitle := JobTitle(jobText, p.cfg.Parser.JobTitleMaxLength)

	if err := p.checkConfigured(); err != nil {
		return nil, err
	}

	raw, err := p.completer.Complete(ctx, genai.Request{
		Prompt:  BuildPrompt(jobText, jobTitle, lang),
		JobText: jobText,
		Lang:    lang,
	})
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeGenAINotConfigured) {
			return nil, err
		}
		p.logger.WithError(err).Warn("completion failed, using local fallback", map[string]interface{}{
			"lang":     lang,
			"jobTitle": jobTitle,
		})
		metrics.ParserFallbacks.Inc()
		return &Result{JobTitle: jobTitle, Tasks: p.fallback(jobText, lang), UsedFallback: true}, nil
	}

	tasks, err := p.decode(raw)
	if err != nil {
		return nil, err
	}

	descriptors := p.convert(tasks, jobTitle, lang)
	p.logger.Info("job description parsed", map[string]interface{}{
		"lang":      lang,
		"jobTitle":  jobTitle,
		"taskCount": len(descriptors),
	})

	return &Result{JobTitle: jobTitle, Tasks: descriptors}, nil
}

func (p *Parser) checkConfigured() error {
	if p.completer == nil {
		return apperrors.NewGenAINotConfiguredError([]string{"apis.genai.base_url", "apis.genai.api_key"})
	}
	if checker, ok := p.completer.(configChecker); ok {
		if missing := checker.Missing(); len(missing) > 0 {
			return apperrors.NewGenAINotConfiguredError(missing)
		}
	}
	return nil
}

func (p *Parser) decode(raw json.RawMessage) ([]completionTask, error) {
	if result := completionSchema.ValidateBytes(raw); !result.Valid {
		return nil, apperrors.NewNoTasksExtractedError("completion response has an unexpected shape: " + result.Error())
	}

	var resp completionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, apperrors.NewNoTasksExtractedError(err.Error())
	}
	if len(resp.Tasks) == 0 {
		return nil, apperrors.NewNoTasksExtractedError("completion returned an empty task list")
	}
	return resp.Tasks, nil
}
