// internal/recommendation/scoring/scorer.go
package scoring

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"automation-advisor/internal/analysis/detector"
	"automation-advisor/internal/heuristics"
	"automation-advisor/internal/models"
)

// Context is the task side of a relevance computation.
type Context struct {
	TaskText             string
	Subtasks             []models.Subtask
	SelectedIntegrations []string
	// Category is compared with the workflow category after both are mapped
	// to a category tag. It may be a tag or a display name in either
	// language. When empty it is detected from TaskText.
	Category string
}

// Scorer computes additive relevance of workflows for a task.
type Scorer struct {
	cfg heuristics.SolutionConfig
}

func New(cfg heuristics.SolutionConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Prepared holds the task-side values shared by every candidate of one request.
type Prepared struct {
	keywords     []string
	integrations map[string]bool
	complexity   string
	category     string
}

// Prepare extracts keywords, integrations, complexity and category once per
// request so scoring many candidates stays cheap.
func (s *Scorer) Prepare(c Context) Prepared {
	integrations := make(map[string]bool)
	for _, name := range c.SelectedIntegrations {
		integrations[Normalize(name)] = true
	}
	for _, st := range c.Subtasks {
		for _, sys := range st.Systems {
			integrations[Normalize(sys)] = true
		}
	}
	delete(integrations, "")

	category := detector.CanonicalCategory(c.Category)
	if category == "" {
		category = detector.DetectTaskCategory(c.TaskText)
	}

	return Prepared{
		keywords:     s.keywords(c),
		integrations: integrations,
		complexity:   InferComplexity(c.TaskText, c.Subtasks, s.cfg),
		category:     category,
	}
}

// Score rates one workflow against a prepared task. Each signal adds to the
// score and to the confidence; both are capped at 1.
func (s *Scorer) Score(w models.CandidateSolution, p Prepared) models.ScoredRecommendation {
	var score float64
	confidence := s.cfg.ConfidenceBase
	var reasons []string

	text := solutionText(w)
	if matches := countMatches(text, p.keywords); matches > 0 {
		score += minFloat(float64(matches)*s.cfg.KeywordMatchWeight, s.cfg.KeywordMatchCap)
		confidence += s.cfg.KeywordConfidence
		reasons = append(reasons, fmt.Sprintf("%d keyword matches", matches))
	}

	if shared := sharedIntegrations(w.Integrations, p.integrations); len(shared) > 0 {
		score += minFloat(float64(len(shared))*s.cfg.IntegrationWeight, s.cfg.IntegrationCap)
		confidence += s.cfg.IntegrationConfidence
		reasons = append(reasons, "uses "+strings.Join(shared, ", "))
	}

	if w.IsAIGenerated {
		score += s.cfg.AIGeneratedBonus
		confidence += s.cfg.AIGeneratedConfidence
		reasons = append(reasons, "AI generated")
	}
	if w.Verified {
		score += s.cfg.VerifiedBonus
		confidence += s.cfg.VerifiedConfidence
		reasons = append(reasons, "verified")
	}
	if w.Rating > s.cfg.RatingThreshold {
		score += s.cfg.RatingBonus
		confidence += s.cfg.RatingConfidence
		reasons = append(reasons, fmt.Sprintf("rated %.1f", w.Rating))
	}
	if w.Popularity > s.cfg.PopularityThreshold {
		score += s.cfg.PopularityBonus
		confidence += s.cfg.PopularityConfidence
		reasons = append(reasons, "popular")
	}
	if w.Downloads > s.cfg.DownloadsThreshold {
		score += s.cfg.DownloadsBonus
		confidence += s.cfg.DownloadsConfidence
		reasons = append(reasons, fmt.Sprintf("%d downloads", w.Downloads))
	}
	if p.complexity != "" && strings.EqualFold(w.Complexity, p.complexity) {
		score += s.cfg.ComplexityBonus
		confidence += s.cfg.ComplexityConfidence
		reasons = append(reasons, "matching complexity")
	}
	if p.category != "" && p.category != detector.CategoryGeneral && detector.CanonicalCategory(w.Category) == p.category {
		score += s.cfg.CategoryBonus
		confidence += s.cfg.CategoryConfidence
		reasons = append(reasons, "same category")
	}

	return models.ScoredRecommendation{
		Workflow:   w,
		Score:      clampUnit(score),
		Reason:     strings.Join(reasons, ", "),
		Confidence: clampUnit(confidence),
	}
}

// KeywordScore is the reduced keyword-only rating used for legacy records.
func (s *Scorer) KeywordScore(w models.CandidateSolution, p Prepared) models.ScoredRecommendation {
	rec := models.ScoredRecommendation{Workflow: w, Confidence: s.cfg.ConfidenceBase}
	if matches := countMatches(solutionText(w), p.keywords); matches > 0 {
		rec.Score = clampUnit(minFloat(float64(matches)*s.cfg.KeywordMatchWeight, s.cfg.KeywordMatchCap))
		rec.Confidence = clampUnit(rec.Confidence + s.cfg.KeywordConfidence)
		rec.Reason = fmt.Sprintf("%d keyword matches", matches)
	}
	return rec
}

// InferComplexity takes the most common subtask complexity, ties going to the
// higher one. Without subtasks the task length decides.
func InferComplexity(taskText string, subtasks []models.Subtask, cfg heuristics.SolutionConfig) string {
	counts := map[models.Complexity]int{}
	for _, st := range subtasks {
		counts[st.Complexity]++
	}
	if len(counts) > 0 {
		best, bestCount := "", 0
		order := []struct {
			c    models.Complexity
			name string
		}{
			{models.ComplexityHigh, models.SolutionComplexityHigh},
			{models.ComplexityMedium, models.SolutionComplexityMedium},
			{models.ComplexityLow, models.SolutionComplexityLow},
		}
		for _, o := range order {
			if counts[o.c] > bestCount {
				best, bestCount = o.name, counts[o.c]
			}
		}
		if best != "" {
			return best
		}
	}

	words := len(strings.Fields(taskText))
	switch {
	case words < cfg.LowComplexityMaxWords:
		return models.SolutionComplexityLow
	case words < cfg.MediumComplexityMaxWords:
		return models.SolutionComplexityMedium
	default:
		return models.SolutionComplexityHigh
	}
}

// keywords collects subtask title words, selected integrations and the long
// words of the task text.
func (s *Scorer) keywords(c Context) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(kw string) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		out = append(out, kw)
	}

	for _, st := range c.Subtasks {
		for _, w := range words(st.Title) {
			if utf8.RuneCountInString(w) >= s.cfg.MinKeywordLength {
				add(w)
			}
		}
		for _, sys := range st.Systems {
			add(sys)
		}
	}
	for _, integration := range c.SelectedIntegrations {
		add(integration)
	}
	for _, w := range words(c.TaskText) {
		if utf8.RuneCountInString(w) >= s.cfg.MinKeywordLength {
			add(w)
		}
	}
	return out
}

func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func solutionText(w models.CandidateSolution) string {
	parts := []string{w.Title, w.Description, w.Category, w.TriggerType}
	parts = append(parts, w.Tags...)
	parts = append(parts, w.Integrations...)
	return strings.ToLower(strings.Join(parts, " "))
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

func sharedIntegrations(workflow []string, task map[string]bool) []string {
	if len(task) == 0 {
		return nil
	}
	var shared []string
	for _, name := range NormalizeAll(workflow) {
		if task[name] {
			shared = append(shared, name)
		}
	}
	return shared
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
