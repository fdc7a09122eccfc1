// internal/recommendation/service/strategy.go
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"automation-advisor/internal/common/config"
	"automation-advisor/internal/common/logger"
	"automation-advisor/internal/heuristics"
	"automation-advisor/internal/models"
	"automation-advisor/internal/recommendation/store"
)

const (
	StrategyUnified = "unified"
	StrategyLegacy  = "legacy"
)

// Request is one recommendation query.
type Request struct {
	TaskText             string           `json:"taskText"`
	SubtaskID            string           `json:"subtaskId,omitempty"`
	Subtasks             []models.Subtask `json:"subtasks,omitempty"`
	SelectedIntegrations []string         `json:"selectedIntegrations,omitempty"`
	TopK                 int              `json:"topK"`
}

// Strategy turns a request into ranked recommendations.
type Strategy interface {
	Name() string
	Recommend(ctx context.Context, req Request) ([]models.ScoredRecommendation, error)
}

// StrategyOptions bound the store read and the scoring fan-out.
type StrategyOptions struct {
	MaxCandidates int
	StoreTimeout  time.Duration
	Concurrency   int
}

func OptionsFromConfig(rc config.RecommendationConfig) StrategyOptions {
	return StrategyOptions{
		MaxCandidates: rc.MaxCandidates,
		StoreTimeout:  config.GetDuration(rc.StoreTimeout),
		Concurrency:   rc.ScoreConcurrency,
	}
}

// NewStrategy picks the unified or legacy strategy from configuration.
func NewStrategy(rc config.RecommendationConfig, unified, legacy store.CandidateStore, cfg *heuristics.Config, log logger.Logger) (Strategy, error) {
	opts := OptionsFromConfig(rc)
	if rc.UnifiedEnabled {
		if unified == nil {
			return nil, fmt.Errorf("unified recommendations enabled but no candidate store configured")
		}
		return NewUnifiedStrategy(unified, cfg, opts, log), nil
	}
	if legacy == nil {
		return nil, fmt.Errorf("legacy recommendations selected but no legacy store configured")
	}
	return NewLegacyStrategy(legacy, cfg, opts, log), nil
}

func loadCandidates(ctx context.Context, st store.CandidateStore, opts StrategyOptions) ([]models.CandidateSolution, error) {
	if opts.StoreTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.StoreTimeout)
		defer cancel()
	}
	return st.ListCandidates(ctx, opts.MaxCandidates)
}

// filterAndSort drops everything at or below minScore and orders the rest by
// descending score. Equal scores keep store order.
func filterAndSort(scored []models.ScoredRecommendation, minScore float64) []models.ScoredRecommendation {
	kept := make([]models.ScoredRecommendation, 0, len(scored))
	for _, r := range scored {
		if r.Score > minScore {
			kept = append(kept, r)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})
	return kept
}
