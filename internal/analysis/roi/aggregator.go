// internal/analysis/roi/aggregator.go
package roi

import (
	"fmt"
	"math"
	"strings"

	"automation-advisor/internal/heuristics"
	"automation-advisor/internal/models"
)

// Aggregator combines classified tasks into the final analysis result.
type Aggregator struct {
	cfg heuristics.AggregatorConfig
}

func New(cfg heuristics.AggregatorConfig) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Aggregate builds the result for tasks. ID and CreatedAt are left to the caller.
func (a *Aggregator) Aggregate(tasks []models.Task, originalText, lang string) models.AnalysisResult {
	scores := make([]float64, len(tasks))
	for i, t := range tasks {
		scores[i] = float64(t.Score)
	}

	overall := OverallAutomationPotential(scores)
	actual := ActualAutomationPotential(scores)

	if tasks == nil {
		tasks = []models.Task{}
	}

	return models.AnalysisResult{
		TotalScore: overall,
		Ratio: models.Ratio{
			Automatisierbar: actual,
			Mensch:          100 - actual,
		},
		Tasks:                      tasks,
		Summary:                    a.Summary(overall, len(tasks), lang),
		Recommendations:            a.Recommendations(tasks, overall, lang),
		OriginalText:               originalText,
		OverallAutomationPotential: overall,
		ActualAutomationPotential:  actual,
	}
}

// Summary describes the overall potential in one of three bands.
func (a *Aggregator) Summary(overall, taskCount int, lang string) string {
	t := textsFor(lang)
	switch {
	case taskCount == 0:
		return t.noTasks
	case overall >= a.cfg.HighBandMin:
		return fmt.Sprintf(t.summaryHigh, overall, taskCount)
	case overall >= a.cfg.MediumBandMin:
		return fmt.Sprintf(t.summaryMedium, overall, taskCount)
	default:
		return fmt.Sprintf(t.summaryLow, overall, taskCount)
	}
}

// Recommendations are built in a fixed order: band message, tools of the
// most frequent industry, AI tools referenced by tasks, general statements.
// The list is cut to MaxRecommendations and not reordered.
func (a *Aggregator) Recommendations(tasks []models.Task, overall int, lang string) []string {
	t := textsFor(lang)
	recs := make([]string, 0, a.cfg.MaxRecommendations)

	switch {
	case overall >= a.cfg.HighBandMin:
		recs = append(recs, t.bandHigh)
	case overall >= a.cfg.MediumBandMin:
		recs = append(recs, t.bandMedium)
	default:
		recs = append(recs, t.bandLow)
	}

	if industry := ModalIndustry(tasks); industry != "" {
		tools := t.industryTools[industry]
		recs = append(recs, tools[:minInt(len(tools), a.cfg.MaxIndustryTools)]...)
	}

	if tools := TopAITools(tasks, a.cfg.MaxReferencedAITools); len(tools) > 0 {
		recs = append(recs, t.aiToolsPrefix+strings.Join(tools, ", "))
	}

	recs = append(recs, t.general...)

	if len(recs) > a.cfg.MaxRecommendations {
		recs = recs[:a.cfg.MaxRecommendations]
	}
	return recs
}

// ModalIndustry returns the most frequent task industry that has a tool
// table. Ties go to the industry seen first.
func ModalIndustry(tasks []models.Task) string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, task := range tasks {
		if _, ok := localized["de"].industryTools[task.Industry]; !ok {
			continue
		}
		if counts[task.Industry] == 0 {
			order = append(order, task.Industry)
		}
		counts[task.Industry]++
	}

	best, bestCount := "", 0
	for _, industry := range order {
		if counts[industry] > bestCount {
			best, bestCount = industry, counts[industry]
		}
	}
	return best
}

// TopAITools returns up to limit distinct tools by reference count, ties in
// order of first appearance. Names compare case-insensitively.
func TopAITools(tasks []models.Task, limit int) []string {
	counts := make(map[string]int)
	names := make(map[string]string)
	order := make([]string, 0)
	for _, task := range tasks {
		for _, tool := range task.AITools {
			tool = strings.TrimSpace(tool)
			key := strings.ToLower(tool)
			if key == "" {
				continue
			}
			if _, seen := counts[key]; !seen {
				order = append(order, key)
				names[key] = tool
			}
			counts[key]++
		}
	}

	picked := make([]string, 0, limit)
	used := make(map[string]bool)
	for len(picked) < limit {
		best, bestCount := "", math.MinInt
		for _, key := range order {
			if !used[key] && counts[key] > bestCount {
				best, bestCount = key, counts[key]
			}
		}
		if best == "" {
			break
		}
		used[best] = true
		picked = append(picked, names[best])
	}
	return picked
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
