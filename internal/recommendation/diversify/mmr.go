// internal/recommendation/diversify/mmr.go
package diversify

import (
	"strings"

	"automation-advisor/internal/analysis/detector"
	"automation-advisor/internal/heuristics"
	"automation-advisor/internal/models"
	"automation-advisor/internal/recommendation/scoring"
)

// Selector picks a relevant and diverse subset with maximal marginal relevance.
type Selector struct {
	lambda float64
	sim    heuristics.SimilarityConfig
}

func New(cfg *heuristics.Config) *Selector {
	return &Selector{lambda: cfg.MMR.Lambda, sim: cfg.Similarity}
}

// Select returns at most k candidates in selection order. The first pick is
// the highest scored candidate; every following pick maximizes
// score - lambda * (highest similarity to an already selected candidate).
// Ties go to the earlier candidate, so a score-sorted input stays stable.
func (s *Selector) Select(candidates []models.ScoredRecommendation, k int) []models.ScoredRecommendation {
	if k <= 0 {
		return []models.ScoredRecommendation{}
	}
	if len(candidates) <= k {
		out := make([]models.ScoredRecommendation, len(candidates))
		copy(out, candidates)
		return out
	}

	remaining := make([]int, len(candidates))
	for i := range remaining {
		remaining[i] = i
	}

	first := 0
	for i := range candidates {
		if candidates[i].Score > candidates[first].Score {
			first = i
		}
	}
	selected := []models.ScoredRecommendation{candidates[first]}
	remaining = removeAt(remaining, first)

	for len(selected) < k && len(remaining) > 0 {
		bestPos, bestMMR := -1, 0.0
		for pos, idx := range remaining {
			maxSim := 0.0
			for _, chosen := range selected {
				if sim := s.Similarity(candidates[idx].Workflow, chosen.Workflow); sim > maxSim {
					maxSim = sim
				}
			}
			mmr := candidates[idx].Score - s.lambda*maxSim
			if bestPos < 0 || mmr > bestMMR {
				bestPos, bestMMR = pos, mmr
			}
		}
		selected = append(selected, candidates[remaining[bestPos]])
		remaining = append(remaining[:bestPos], remaining[bestPos+1:]...)
	}
	return selected
}

// Similarity is a weighted composite in [0,1]: category equality, Jaccard
// overlap of normalized integrations, complexity equality and source equality.
func (s *Selector) Similarity(a, b models.CandidateSolution) float64 {
	var sim float64
	if ca := detector.CanonicalCategory(a.Category); ca != "" && ca == detector.CanonicalCategory(b.Category) {
		sim += s.sim.CategoryWeight
	}
	sim += s.sim.IntegrationWeight * Jaccard(scoring.NormalizeAll(a.Integrations), scoring.NormalizeAll(b.Integrations))
	if equalNonEmpty(a.Complexity, b.Complexity) {
		sim += s.sim.ComplexityWeight
	}
	if equalNonEmpty(a.Source, b.Source) {
		sim += s.sim.SourceWeight
	}
	return sim
}

// Jaccard is |a∩b| / |a∪b| over distinct values; two empty sets score 0.
func Jaccard(a, b []string) float64 {
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	inter, union := 0, len(set)
	seenB := make(map[string]bool, len(b))
	for _, v := range b {
		if seenB[v] {
			continue
		}
		seenB[v] = true
		if set[v] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func equalNonEmpty(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}

func removeAt(s []int, i int) []int {
	return append(s[:i], s[i+1:]...)
}
