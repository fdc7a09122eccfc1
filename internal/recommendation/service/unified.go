// internal/recommendation/service/unified.go
package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"automation-advisor/internal/common/logger"
	"automation-advisor/internal/common/metrics"
	"automation-advisor/internal/heuristics"
	"automation-advisor/internal/models"
	"automation-advisor/internal/recommendation/diversify"
	"automation-advisor/internal/recommendation/scoring"
	"automation-advisor/internal/recommendation/store"
)

// UnifiedStrategy scores every candidate of the consolidated store, keeps
// the relevant ones and diversifies the top K with MMR.
type UnifiedStrategy struct {
	store    store.CandidateStore
	scorer   *scoring.Scorer
	selector *diversify.Selector
	minScore float64
	opts     StrategyOptions
	logger   logger.Logger
}

func NewUnifiedStrategy(st store.CandidateStore, cfg *heuristics.Config, opts StrategyOptions, log logger.Logger) *UnifiedStrategy {
	if opts.MaxCandidates <= 0 {
		opts.MaxCandidates = cfg.Recommending.MaxCandidates
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &UnifiedStrategy{
		store:    st,
		scorer:   scoring.New(cfg.Solution),
		selector: diversify.New(cfg),
		minScore: cfg.Recommending.MinScore,
		opts:     opts,
		logger:   logger.ForComponent(log, "recommendation-unified"),
	}
}

func (s *UnifiedStrategy) Name() string { return StrategyUnified }

func (s *UnifiedStrategy) Recommend(ctx context.Context, req Request) ([]models.ScoredRecommendation, error) {
	candidates, err := loadCandidates(ctx, s.store, s.opts)
	if err != nil {
		return nil, err
	}

	scored, err := s.scoreAll(ctx, candidates, s.scorer.Prepare(scoring.Context{
		TaskText:             req.TaskText,
		Subtasks:             req.Subtasks,
		SelectedIntegrations: req.SelectedIntegrations,
	}))
	if err != nil {
		return nil, err
	}
	metrics.CandidatesScored.WithLabelValues(StrategyUnified).Observe(float64(len(scored)))

	relevant := filterAndSort(scored, s.minScore)
	selected := s.selector.Select(relevant, req.TopK)

	s.logger.Debug("recommendations ranked", map[string]interface{}{
		"candidates": len(candidates),
		"relevant":   len(relevant),
		"selected":   len(selected),
	})
	return selected, nil
}

// scoreAll scores candidates in contiguous chunks on a bounded errgroup.
// Results keep candidate order.
func (s *UnifiedStrategy) scoreAll(ctx context.Context, candidates []models.CandidateSolution, p scoring.Prepared) ([]models.ScoredRecommendation, error) {
	scored := make([]models.ScoredRecommendation, len(candidates))
	if len(candidates) == 0 {
		return scored, nil
	}

	workers := s.opts.Concurrency
	if workers > len(candidates) {
		workers = len(candidates)
	}
	chunk := (len(candidates) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(candidates); start += chunk {
		start, end := start, start+chunk
		if end > len(candidates) {
			end = len(candidates)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				scored[i] = s.scorer.Score(candidates[i], p)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}
