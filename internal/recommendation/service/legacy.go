// internal/recommendation/service/legacy.go
package service

import (
	"context"

	"automation-advisor/internal/common/logger"
	"automation-advisor/internal/common/metrics"
	"automation-advisor/internal/heuristics"
	"automation-advisor/internal/models"
	"automation-advisor/internal/recommendation/scoring"
	"automation-advisor/internal/recommendation/store"
)

// LegacyStrategy serves the old template index with keyword-only scoring and
// no diversification. It is kept for migration only.
type LegacyStrategy struct {
	store    store.CandidateStore
	scorer   *scoring.Scorer
	minScore float64
	opts     StrategyOptions
	logger   logger.Logger
}

func NewLegacyStrategy(st store.CandidateStore, cfg *heuristics.Config, opts StrategyOptions, log logger.Logger) *LegacyStrategy {
	if opts.MaxCandidates <= 0 {
		opts.MaxCandidates = cfg.Recommending.MaxCandidates
	}
	return &LegacyStrategy{
		store:    st,
		scorer:   scoring.New(cfg.Solution),
		minScore: cfg.Recommending.MinScore,
		opts:     opts,
		logger:   logger.ForComponent(log, "recommendation-legacy"),
	}
}

func (s *LegacyStrategy) Name() string { return StrategyLegacy }

func (s *LegacyStrategy) Recommend(ctx context.Context, req Request) ([]models.ScoredRecommendation, error) {
	candidates, err := loadCandidates(ctx, s.store, s.opts)
	if err != nil {
		return nil, err
	}

	p := s.scorer.Prepare(scoring.Context{
		TaskText:             req.TaskText,
		Subtasks:             req.Subtasks,
		SelectedIntegrations: req.SelectedIntegrations,
	})
	scored := make([]models.ScoredRecommendation, len(candidates))
	for i, c := range candidates {
		scored[i] = s.scorer.KeywordScore(c, p)
	}
	metrics.CandidatesScored.WithLabelValues(StrategyLegacy).Observe(float64(len(scored)))

	ranked := filterAndSort(scored, s.minScore)
	if req.TopK >= 0 && len(ranked) > req.TopK {
		ranked = ranked[:req.TopK]
	}

	s.logger.Warn("served recommendations from legacy index", map[string]interface{}{
		"candidates": len(candidates),
		"returned":   len(ranked),
	})
	return ranked, nil
}
