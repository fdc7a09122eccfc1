// internal/recommendation/service/service.go
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"

	"automation-advisor/internal/common/cache"
	"automation-advisor/internal/common/config"
	apperrors "automation-advisor/internal/common/errors"
	"automation-advisor/internal/common/logger"
	"automation-advisor/internal/common/metrics"
	"automation-advisor/internal/common/observability"
	"automation-advisor/internal/models"
	"automation-advisor/internal/recommendation/scoring"
)

const cacheKeyPrefix = "recommendations:"

// Response is the ranked result of one request.
type Response struct {
	Recommendations []models.ScoredRecommendation `json:"recommendations"`
	Strategy        string                        `json:"strategy"`
	Cached          bool                          `json:"cached"`
}

// cachedEntry is stored under the (subtask, task) key. Fingerprint covers the
// remaining request fields so differing requests never share a result.
type cachedEntry struct {
	Fingerprint     string                        `json:"fingerprint"`
	Strategy        string                        `json:"strategy"`
	Recommendations []models.ScoredRecommendation `json:"recommendations"`
}

// Service consults the cache and otherwise delegates to its strategy.
type Service struct {
	strategy    Strategy
	cache       cache.Cache
	ttl         time.Duration
	defaultTopK int
	telemetry   *observability.Observability
	logger      logger.Logger
}

type Option func(*Service)

func WithTelemetry(o *observability.Observability) Option {
	return func(s *Service) { s.telemetry = o }
}

// NewService builds the service. c may be nil to disable caching.
func NewService(strategy Strategy, c cache.Cache, rc config.RecommendationConfig, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		strategy:    strategy,
		cache:       c,
		ttl:         config.GetDuration(rc.CacheTTL),
		defaultTopK: rc.DefaultTopK,
		logger:      logger.ForComponent(log, "recommendation-service"),
	}
	if s.defaultTopK <= 0 {
		s.defaultTopK = 5
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) StrategyName() string { return s.strategy.Name() }

// Recommend returns up to TopK recommendations. Store errors are returned
// unchanged; cache errors are logged and ignored.
func (s *Service) Recommend(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(req.TaskText) == "" && len(req.Subtasks) == 0 {
		return nil, apperrors.NewInvalidRecommendationInputError("taskText or subtasks must be provided")
	}
	if req.TopK <= 0 {
		req.TopK = s.defaultTopK
	}

	key := CacheKey(req.SubtaskID, req.TaskText)
	fingerprint := Fingerprint(req)

	if recs, ok := s.lookup(ctx, key, fingerprint); ok {
		s.telemetry.RecordRecommendations(ctx, s.strategy.Name(), true, len(recs))
		return &Response{Recommendations: recs, Strategy: s.strategy.Name(), Cached: true}, nil
	}

	recs, err := s.strategy.Recommend(ctx, req)
	if err != nil {
		s.logger.WithError(err).Error("recommendation failed", map[string]interface{}{
			"strategy":  s.strategy.Name(),
			"subtaskId": req.SubtaskID,
		})
		return nil, err
	}

	s.store(ctx, key, cachedEntry{Fingerprint: fingerprint, Strategy: s.strategy.Name(), Recommendations: recs})
	s.telemetry.RecordRecommendations(ctx, s.strategy.Name(), false, len(recs))

	return &Response{Recommendations: recs, Strategy: s.strategy.Name()}, nil
}

// InvalidateRecommendations drops the cached result for a task or subtask.
func (s *Service) InvalidateRecommendations(ctx context.Context, taskText, subtaskID string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, CacheKey(subtaskID, taskText)); err != nil {
		return apperrors.NewCacheOperationFailedError("delete", err)
	}
	return nil
}

func (s *Service) lookup(ctx context.Context, key, fingerprint string) ([]models.ScoredRecommendation, bool) {
	if s.cache == nil {
		return nil, false
	}

	var entry cachedEntry
	found, err := cache.GetJSON(ctx, s.cache, key, &entry)
	if err != nil {
		s.logger.WithError(err).Warn("recommendation cache read failed", map[string]interface{}{"key": key})
		metrics.RecommendationCacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}
	if !found || entry.Fingerprint != fingerprint || entry.Strategy != s.strategy.Name() {
		metrics.RecommendationCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.RecommendationCacheLookups.WithLabelValues("hit").Inc()
	if entry.Recommendations == nil {
		entry.Recommendations = []models.ScoredRecommendation{}
	}
	return entry.Recommendations, true
}

func (s *Service) store(ctx context.Context, key string, entry cachedEntry) {
	if s.cache == nil {
		return
	}
	if err := cache.SetJSON(ctx, s.cache, key, entry, s.ttl); err != nil {
		s.logger.WithError(err).Warn("recommendation cache write failed", map[string]interface{}{"key": key})
	}
}

// CacheKey is recommendations:<subtaskId or "all">:<hash of the task text>.
func CacheKey(subtaskID, taskText string) string {
	scope := strings.TrimSpace(subtaskID)
	if scope == "" {
		scope = "all"
	}
	sum := sha256.Sum256([]byte(strings.TrimSpace(taskText)))
	return cacheKeyPrefix + scope + ":" + hex.EncodeToString(sum[:8])
}

// Fingerprint hashes the request fields that are not part of the cache key.
// Integration order and spelling do not matter.
func Fingerprint(req Request) string {
	integrations := scoring.NormalizeAll(req.SelectedIntegrations)
	sort.Strings(integrations)

	subtasks := make([]string, 0, len(req.Subtasks))
	for _, st := range req.Subtasks {
		subtasks = append(subtasks, st.ID+"|"+st.Title+"|"+string(st.Complexity)+"|"+strings.Join(st.Systems, ","))
	}

	h := sha256.New()
	h.Write([]byte(strings.Join(integrations, ",")))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(subtasks, ";")))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(req.TopK)))
	return hex.EncodeToString(h.Sum(nil)[:12])
}
