// internal/analysis/scorer/scorer.go
package scorer

import (
	"strings"

	"automation-advisor/internal/analysis/detector"
	"automation-advisor/internal/heuristics"
)

// Scorer turns a category and keyword signals into an automation score.
type Scorer struct {
	cfg heuristics.AutomationConfig
}

func New(cfg heuristics.AutomationConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score returns the automation potential of text in [MinScore, MaxScore].
// Positive and negative keyword sets are counted independently.
func (s *Scorer) Score(text, category string) int {
	lower := strings.ToLower(text)

	score := s.BaseScore(category)
	score += s.cfg.PositiveDelta * detector.CountHits(lower, detector.AutomationPositive)
	score -= s.cfg.NegativeDelta * detector.CountHits(lower, detector.AutomationNegative)

	return clamp(score, s.cfg.MinScore, s.cfg.MaxScore)
}

func (s *Scorer) BaseScore(category string) int {
	if base, ok := s.cfg.BaseScores[category]; ok {
		return base
	}
	return s.cfg.DefaultBaseScore
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
