// internal/analysis/classifier/classifier.go
package classifier

import (
	"strings"

	"automation-advisor/internal/analysis/detector"
	"automation-advisor/internal/analysis/scorer"
	"automation-advisor/internal/heuristics"
	"automation-advisor/internal/models"
)

// Classifier builds classified tasks from task text and parser descriptors.
type Classifier struct {
	cfg    *heuristics.Config
	scorer *scorer.Scorer
}

func New(cfg *heuristics.Config) *Classifier {
	return &Classifier{
		cfg:    cfg,
		scorer: scorer.New(cfg.Automation),
	}
}

// Classify runs the local keyword path for a single task. jobTitleHint may be
// empty. The category is named in German, the default analysis language.
func (c *Classifier) Classify(taskText, jobTitleHint string) models.Task {
	tag := detector.DetectTaskCategory(taskText)
	score := c.scorer.Score(taskText, tag)

	return c.buildTask(taskText, c.industryFor(taskText, jobTitleHint), detector.CategoryName(tag, detector.LangDE), score, c.cfg.Classifier.LocalConfidence)
}

// ClassifyDescriptor converts a parser descriptor into a task. An external
// automation potential is the task score; the keyword scorer only rates
// descriptors without one. Parser derived category, complexity and trend
// take precedence over the local ones.
func (c *Classifier) ClassifyDescriptor(desc models.TaskDescriptor, jobTitleHint string) models.Task {
	tag := detector.DetectTaskCategory(desc.Text)

	var score int
	if desc.AutomationPotential != nil {
		score = clamp(*desc.AutomationPotential, c.cfg.Automation.MinScore, c.cfg.Automation.MaxScore)
	} else {
		score = c.scorer.Score(desc.Text, tag)
	}

	confidence := c.cfg.Classifier.LocalConfidence
	if desc.Confidence > 0 {
		confidence = float64(desc.Confidence) / 100
	} else if desc.External {
		confidence = c.cfg.Classifier.ExternalConfidence
	}

	category := detector.CategoryName(tag, detector.LangDE)
	if desc.Category != "" {
		category = desc.Category
	}

	task := c.buildTask(desc.Text, c.industryFor(desc.Text, jobTitleHint), category, score, confidence)
	if desc.Complexity != "" {
		task.Complexity = desc.Complexity
	}
	if desc.Trend != "" {
		task.AutomationTrend = desc.Trend
	}
	task.Subtasks = desc.Subtasks
	task.BusinessCase = desc.BusinessCase
	task.AITools = desc.AITools
	task.Reasoning = desc.Reasoning

	return task
}

func (c *Classifier) industryFor(taskText, jobTitleHint string) string {
	if strings.TrimSpace(jobTitleHint) == "" {
		return detector.DetectIndustry(taskText)
	}
	return detector.DetectIndustry(jobTitleHint + " " + taskText)
}

func (c *Classifier) buildTask(text, industry, category string, score int, confidence float64) models.Task {
	labels := c.cfg.Labels
	return models.Task{
		Text:            text,
		Score:           score,
		Label:           models.LabelForScore(score, labels.AutomatableMin, labels.PartialMin),
		Category:        category,
		Industry:        industry,
		Complexity:      models.ComplexityForScore(score, labels.AutomatableMin, labels.PartialMin),
		AutomationTrend: models.TrendIncreasing,
		Confidence:      confidence,
		AutomationRatio: score,
		HumanRatio:      100 - score,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
