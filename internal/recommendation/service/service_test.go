// internal/recommendation/service/service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automation-advisor/internal/common/cache"
	"automation-advisor/internal/common/config"
	apperrors "automation-advisor/internal/common/errors"
	"automation-advisor/internal/common/logger"
	"automation-advisor/internal/heuristics"
	"automation-advisor/internal/models"
)

// ==========================
// Test Helpers
// ==========================

type fakeStore struct {
	candidates []models.CandidateSolution
	err        error
	calls      atomic.Int32
	lastLimit  int
}

func (f *fakeStore) ListCandidates(ctx context.Context, limit int) ([]models.CandidateSolution, error) {
	f.calls.Add(1)
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("expected a store deadline")
	}
	return f.candidates, nil
}

func recConfig() config.RecommendationConfig {
	return config.RecommendationConfig{
		UnifiedEnabled:   true,
		MaxCandidates:    1000,
		DefaultTopK:      5,
		CacheTTL:         600000,
		StoreTimeout:     5000,
		ScoreConcurrency: 4,
	}
}

func newRedisCache(t *testing.T) (*miniredis.Miniredis, cache.Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, cache.NewRedisCache(client, "test:")
}

func invoiceCandidates() []models.CandidateSolution {
	return []models.CandidateSolution{
		{ID: "irrelevant", Title: "Birthday reminder", Complexity: "High"},
		{ID: "invoice", Title: "Invoice processing with Gmail", Integrations: []string{"Gmail"}, Category: "finance", Source: "n8n", Complexity: "Medium", Verified: true},
		{ID: "archive", Title: "Archive invoice attachments", Integrations: []string{"Google Drive"}, Category: "storage", Source: "n8n", Complexity: "Medium"},
	}
}

func newUnifiedService(t *testing.T, st *fakeStore, c cache.Cache) *Service {
	t.Helper()
	log := logger.NewTestLogger(t)
	strategy := NewUnifiedStrategy(st, heuristics.Default(), OptionsFromConfig(recConfig()), log)
	return NewService(strategy, c, recConfig(), log)
}

// ==========================
// Unified strategy
// ==========================

func TestRecommend_UnifiedRanksAndFilters(t *testing.T) {
	st := &fakeStore{candidates: invoiceCandidates()}
	svc := newUnifiedService(t, st, nil)

	resp, err := svc.Recommend(context.Background(), Request{
		TaskText:             "Process incoming invoice emails",
		SelectedIntegrations: []string{"gmail"},
	})
	require.NoError(t, err)

	assert.Equal(t, StrategyUnified, resp.Strategy)
	assert.False(t, resp.Cached)
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "invoice", resp.Recommendations[0].Workflow.ID)
	assert.Equal(t, "archive", resp.Recommendations[1].Workflow.ID)
	for _, r := range resp.Recommendations {
		assert.Greater(t, r.Score, 0.1)
	}
	assert.Equal(t, 1000, st.lastLimit)
}

func TestRecommend_DiversifiesNearDuplicates(t *testing.T) {
	var candidates []models.CandidateSolution
	for i := 0; i < 20; i++ {
		candidates = append(candidates, models.CandidateSolution{
			ID:           fmt.Sprintf("dup%02d", i),
			Title:        "Send invoice reminder emails",
			Category:     "email",
			Complexity:   "Low",
			Source:       "n8n",
			Integrations: []string{"Gmail", "Slack"},
			Verified:     true,
		})
	}
	candidates = append(candidates, models.CandidateSolution{
		ID:           "ledger",
		Title:        "Invoice ledger export",
		Category:     "database",
		Complexity:   "High",
		Source:       "custom",
		Integrations: []string{"Postgres"},
	})

	svc := newUnifiedService(t, &fakeStore{candidates: candidates}, nil)
	resp, err := svc.Recommend(context.Background(), Request{TaskText: "Send invoice reminder emails", TopK: 5})
	require.NoError(t, err)

	require.Len(t, resp.Recommendations, 5)
	assert.Equal(t, "dup00", resp.Recommendations[0].Workflow.ID)

	var found bool
	for _, r := range resp.Recommendations {
		if r.Workflow.ID == "ledger" {
			found = true
		}
	}
	assert.True(t, found, "expected the diverse candidate among the top 5")
}

func TestRecommend_StoreFailurePropagates(t *testing.T) {
	storeErr := apperrors.NewCandidateStoreFailedError("postgres", errors.New("connection refused"))
	mr, c := newRedisCache(t)
	svc := newUnifiedService(t, &fakeStore{err: storeErr}, c)

	_, err := svc.Recommend(context.Background(), Request{TaskText: "invoice"})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCandidateStoreFailed))
	assert.Empty(t, mr.Keys())
}

func TestRecommend_InvalidInput(t *testing.T) {
	st := &fakeStore{}
	svc := newUnifiedService(t, st, nil)

	_, err := svc.Recommend(context.Background(), Request{TaskText: "  "})

	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRecommendationInput))
	assert.Equal(t, int32(0), st.calls.Load())
}

func TestRecommend_EmptyStore(t *testing.T) {
	svc := newUnifiedService(t, &fakeStore{candidates: nil}, nil)

	resp, err := svc.Recommend(context.Background(), Request{TaskText: "invoice"})

	require.NoError(t, err)
	assert.Empty(t, resp.Recommendations)
}

// ==========================
// Cache
// ==========================

func TestRecommend_CacheHitShortCircuits(t *testing.T) {
	st := &fakeStore{candidates: invoiceCandidates()}
	mr, c := newRedisCache(t)
	svc := newUnifiedService(t, st, c)
	req := Request{TaskText: "Process incoming invoice emails", SubtaskID: "st-1", SelectedIntegrations: []string{"Gmail"}}

	first, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int32(1), st.calls.Load())
	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Recommendations, second.Recommendations)

	key := "test:" + CacheKey("st-1", req.TaskText)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, 10*time.Minute, mr.TTL(key))
}

func TestRecommend_FingerprintMismatchIsMiss(t *testing.T) {
	st := &fakeStore{candidates: invoiceCandidates()}
	_, c := newRedisCache(t)
	svc := newUnifiedService(t, st, c)

	_, err := svc.Recommend(context.Background(), Request{TaskText: "invoice", TopK: 5})
	require.NoError(t, err)
	_, err = svc.Recommend(context.Background(), Request{TaskText: "invoice", TopK: 2})
	require.NoError(t, err)
	_, err = svc.Recommend(context.Background(), Request{TaskText: "invoice", TopK: 2})
	require.NoError(t, err)

	assert.Equal(t, int32(2), st.calls.Load())
}

func TestInvalidateRecommendations(t *testing.T) {
	st := &fakeStore{candidates: invoiceCandidates()}
	mr, c := newRedisCache(t)
	svc := newUnifiedService(t, st, c)
	req := Request{TaskText: "invoice"}

	_, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	require.NoError(t, svc.InvalidateRecommendations(context.Background(), "invoice", ""))
	assert.False(t, mr.Exists("test:"+CacheKey("", "invoice")))

	_, err = svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int32(2), st.calls.Load())
}

func TestRecommend_CacheReadErrorFallsThrough(t *testing.T) {
	db, mock := redismock.NewClientMock()
	st := &fakeStore{candidates: invoiceCandidates()}
	svc := newUnifiedService(t, st, cache.NewRedisCache(db, "rec:"))

	mock.ExpectGet("rec:" + CacheKey("", "invoice")).SetErr(errors.New("connection reset"))

	resp, err := svc.Recommend(context.Background(), Request{TaskText: "invoice"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, int32(1), st.calls.Load())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, CacheKey("", "invoice"), CacheKey(" ", " invoice "))
	assert.Contains(t, CacheKey("", "invoice"), "recommendations:all:")
	assert.Contains(t, CacheKey("st-9", "invoice"), "recommendations:st-9:")
	assert.NotEqual(t, CacheKey("", "invoice"), CacheKey("", "payroll"))
}

func TestFingerprint_IgnoresIntegrationSpelling(t *testing.T) {
	a := Fingerprint(Request{SelectedIntegrations: []string{"Postgres", "Slack"}, TopK: 5})
	b := Fingerprint(Request{SelectedIntegrations: []string{"slack", "postgresql"}, TopK: 5})
	c := Fingerprint(Request{SelectedIntegrations: []string{"slack"}, TopK: 5})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

// ==========================
// Legacy strategy and selection
// ==========================

func TestLegacyStrategy_KeywordOnlyNoMMR(t *testing.T) {
	candidates := []models.CandidateSolution{
		{ID: "a", Title: "invoice reminder", Verified: true, Rating: 5},
		{ID: "b", Title: "invoice reminder copy", Category: "same"},
		{ID: "c", Title: "unrelated"},
	}
	log := logger.NewNoOpLogger()
	strategy := NewLegacyStrategy(&fakeStore{candidates: candidates}, heuristics.Default(), OptionsFromConfig(recConfig()), log)

	recs, err := strategy.Recommend(context.Background(), Request{TaskText: "invoice reminder", TopK: 5})
	require.NoError(t, err)

	require.Len(t, recs, 2)
	assert.Equal(t, "a", recs[0].Workflow.ID)
	assert.Equal(t, "b", recs[1].Workflow.ID)
	assert.Equal(t, recs[0].Score, recs[1].Score)
}

func TestNewStrategy(t *testing.T) {
	cfg := heuristics.Default()
	log := logger.NewNoOpLogger()
	unified, legacy := &fakeStore{}, &fakeStore{}

	rc := recConfig()
	s, err := NewStrategy(rc, unified, legacy, cfg, log)
	require.NoError(t, err)
	assert.Equal(t, StrategyUnified, s.Name())

	rc.UnifiedEnabled = false
	s, err = NewStrategy(rc, unified, legacy, cfg, log)
	require.NoError(t, err)
	assert.Equal(t, StrategyLegacy, s.Name())

	_, err = NewStrategy(rc, unified, nil, cfg, log)
	assert.Error(t, err)
}
