// internal/analysis/jobparser/convert.go
package jobparser

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"automation-advisor/internal/analysis/detector"
	"automation-advisor/internal/heuristics"
	"automation-advisor/internal/models"
)

const (
	LangDE = detector.LangDE
	LangEN = detector.LangEN
)

const (
	PatternExternal = "external"
	PatternFallback = "fallback"
)

var (
	highComplexityTriggers = []string{
		"debug", "fehlerbehebung", "fehleranalyse", "integration", "integrier", "optimier",
		"optimiz", "entwickl", "develop", "programmier", "architektur", "architecture",
	}
	mediumComplexityTriggers = []string{
		"dokumentation", "dokumentier", "documentation", "document", "test", "review", "prüf",
		"qualitätssicherung",
	}
	stableTrendTriggers = []string{
		"support", "wartung", "maintenance", "instandhaltung", "betreuung",
	}
	decreasingTrendTriggers = []string{
		"fax", "papierbasiert", "paper-based", "legacy",
	}
)

var financeTitleKeywords = []string{"buchhalt", "finanz", "controlling", "accountant", "accounting", "finance"}

// JobTitle is the first non-empty line of the job text, cut to maxLen runes.
func JobTitle(jobText string, maxLen int) string {
	for _, line := range strings.Split(jobText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if maxLen > 0 && utf8.RuneCountInString(line) > maxLen {
			line = string([]rune(line)[:maxLen])
		}
		return line
	}
	return ""
}

// DeriveComplexity applies, in order: high triggers, medium triggers, then
// the business case potential thresholds. fallbackPotential is used when the
// business case carries no potential; nil means medium.
func DeriveComplexity(text string, bc *models.BusinessCase, fallbackPotential *int, cfg heuristics.ParserConfig) models.Complexity {
	lower := strings.ToLower(text)
	if detector.ContainsAny(lower, highComplexityTriggers) {
		return models.ComplexityHigh
	}
	if detector.ContainsAny(lower, mediumComplexityTriggers) {
		return models.ComplexityMedium
	}

	potential := fallbackPotential
	if bc != nil && bc.AutomationPotential != nil {
		potential = bc.AutomationPotential
	}
	if potential == nil {
		return models.ComplexityMedium
	}

	switch {
	case *potential >= cfg.LowComplexityMin:
		return models.ComplexityLow
	case *potential >= cfg.MediumComplexityMin:
		return models.ComplexityMedium
	default:
		return models.ComplexityHigh
	}
}

// DeriveTrend biases support and maintenance work toward stable.
func DeriveTrend(text string) models.Trend {
	lower := strings.ToLower(text)
	switch {
	case detector.ContainsAny(lower, stableTrendTriggers):
		return models.TrendStable
	case detector.ContainsAny(lower, decreasingTrendTriggers):
		return models.TrendDecreasing
	default:
		return models.TrendIncreasing
	}
}

// DetectCategoryWithContext returns a display category for a task, using the
// job title to disambiguate domain specific names.
func DetectCategoryWithContext(text, jobTitle, lang string) string {
	lower := strings.ToLower(text)
	lowerTitle := strings.ToLower(jobTitle)

	if strings.Contains(lower, "personal") {
		if detector.IsHRTitle(jobTitle) {
			return detector.CategoryName(detector.CategoryHR, lang)
		}
		return detector.CategoryName(detector.CategoryAdministrative, lang)
	}

	category := detector.DetectTaskCategory(text)
	if category == detector.CategoryAdministrative && detector.ContainsAny(lowerTitle, financeTitleKeywords) {
		return detector.CategoryName(detector.CategoryFinance, lang)
	}
	return detector.CategoryName(category, lang)
}

func (p *Parser) convert(tasks []completionTask, jobTitle, lang string) []models.TaskDescriptor {
	generalName := detector.CategoryName(detector.CategoryGeneral, lang)

	out := make([]models.TaskDescriptor, 0, len(tasks))
	for _, t := range tasks {
		potential := roundPtr(t.AutomationPotential)
		bc := convertBusinessCase(t.BusinessCase)

		category := DetectCategoryWithContext(t.Text, jobTitle, lang)
		if category == generalName && strings.TrimSpace(t.Category) != "" {
			category = strings.TrimSpace(t.Category)
		}

		out = append(out, models.TaskDescriptor{
			Text:                strings.TrimSpace(t.Text),
			AutomationPotential: potential,
			Reasoning:           t.Reasoning,
			Subtasks:            convertSubtasks(t.Subtasks),
			BusinessCase:        bc,
			AITools:             dedupe(t.AITools),
			Category:            category,
			Complexity:          DeriveComplexity(t.Text, bc, potential, p.cfg.Parser),
			Trend:               DeriveTrend(t.Text),
			Confidence:          int(math.Round(p.cfg.Classifier.ExternalConfidence * 100)),
			Pattern:             PatternExternal,
			External:            true,
		})
	}
	return out
}

func (p *Parser) fallback(jobText, lang string) []models.TaskDescriptor {
	potential := p.cfg.Parser.FallbackPotential
	return []models.TaskDescriptor{{
		Text:                strings.TrimSpace(jobText),
		AutomationPotential: &potential,
		Subtasks:            []models.Subtask{},
		Category:            detector.CategoryName(detector.CategoryGeneral, lang),
		Trend:               models.TrendIncreasing,
		Confidence:          p.cfg.Parser.FallbackConfidence,
		Pattern:             PatternFallback,
	}}
}

func convertSubtasks(in []completionSubtask) []models.Subtask {
	out := make([]models.Subtask, 0, len(in))
	for _, s := range in {
		id := s.ID
		if id == "" {
			id = uuid.NewString()
		}
		out = append(out, models.Subtask{
			ID:                  id,
			Title:               s.Title,
			Description:         s.Description,
			AutomationPotential: clampPercent(int(math.Round(s.AutomationPotential))),
			EstimatedTime:       int(math.Round(s.EstimatedTime)),
			Priority:            parsePriority(s.Priority),
			Complexity:          parseComplexity(s.Complexity),
			Systems:             s.Systems,
			Risks:               s.Risks,
			Opportunities:       s.Opportunities,
			Dependencies:        s.Dependencies,
		})
	}
	return out
}

// convertBusinessCase copies the estimate as produced; savedHours is not
// recomputed here.
func convertBusinessCase(in *completionBusiness) *models.BusinessCase {
	if in == nil {
		return nil
	}
	employment := models.EmploymentEmployee
	if in.EmploymentType == string(models.EmploymentFreelancer) {
		employment = models.EmploymentFreelancer
	}
	return &models.BusinessCase{
		ManualHours:          in.ManualHours,
		AutomatedHours:       in.AutomatedHours,
		SavedHours:           in.SavedHours,
		SetupCostHours:       in.SetupCostHours,
		SetupCostMoney:       in.SetupCostMoney,
		ROI:                  in.ROI,
		PaybackPeriodYears:   in.PaybackPeriodYears,
		HourlyRateEmployee:   in.HourlyRateEmployee,
		HourlyRateFreelancer: in.HourlyRateFreelancer,
		EmploymentType:       employment,
		Reasoning:            in.Reasoning,
		AutomationPotential:  roundPtr(in.AutomationPotential),
	}
}

func parsePriority(s string) models.Priority {
	switch p := models.Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityCritical:
		return p
	default:
		return models.PriorityMedium
	}
}

func parseComplexity(s string) models.Complexity {
	switch c := models.Complexity(strings.ToLower(strings.TrimSpace(s))); c {
	case models.ComplexityLow, models.ComplexityMedium, models.ComplexityHigh:
		return c
	default:
		return models.ComplexityMedium
	}
}

func roundPtr(v *float64) *int {
	if v == nil || math.IsNaN(*v) {
		return nil
	}
	r := clampPercent(int(math.Round(*v)))
	return &r
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
