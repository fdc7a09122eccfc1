// internal/recommendation/store/elasticsearch.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	apperrors "automation-advisor/internal/common/errors"
	"automation-advisor/internal/common/logger"
	"automation-advisor/internal/models"
)

// LegacyStore reads workflow templates from the pre-consolidation index.
type LegacyStore struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewLegacyStore(client *elasticsearch.Client, index string, log logger.Logger) *LegacyStore {
	return &LegacyStore{
		client: client,
		index:  index,
		logger: logger.ForComponent(log, "candidate-store-legacy"),
	}
}

// legacyTemplate is the document shape of the old index.
type legacyTemplate struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Nodes       []string `json:"nodes"`
	Keywords    []string `json:"keywords"`
	Difficulty  string   `json:"difficulty"`
	Trigger     string   `json:"trigger"`
	AIGenerated bool     `json:"ai_generated"`
	Status      string   `json:"status"`
	Rating      float64  `json:"rating"`
	Views       int      `json:"views"`
	Downloads   int      `json:"downloads"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string         `json:"_id"`
			Source legacyTemplate `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func buildLegacyQuery(limit int) map[string]interface{} {
	return map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"active": true}},
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"views": map[string]interface{}{"order": "desc"}},
		},
	}
}

func (s *LegacyStore) ListCandidates(ctx context.Context, limit int) ([]models.CandidateSolution, error) {
	body, err := json.Marshal(buildLegacyQuery(limit))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, apperrors.NewCandidateStoreFailedError("elasticsearch", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, apperrors.NewIndexNotFoundError(s.index)
	}
	if res.IsError() {
		return nil, apperrors.NewCandidateStoreFailedError("elasticsearch", fmt.Errorf("search error: %s", res.Status()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewCandidateStoreFailedError("elasticsearch", fmt.Errorf("decode response: %w", err))
	}

	candidates := make([]models.CandidateSolution, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		candidates = append(candidates, fromLegacy(hit.ID, hit.Source))
	}

	s.logger.Debug("legacy candidates loaded", map[string]interface{}{
		"index": s.index,
		"count": len(candidates),
	})
	return candidates, nil
}

func fromLegacy(id string, t legacyTemplate) models.CandidateSolution {
	return models.CandidateSolution{
		ID:                 id,
		Title:              t.Name,
		Description:        t.Description,
		Category:           t.Category,
		Complexity:         legacyComplexity(t.Difficulty),
		Integrations:       t.Nodes,
		Tags:               t.Keywords,
		TriggerType:        t.Trigger,
		Source:             SourceLegacy,
		IsAIGenerated:      t.AIGenerated,
		Verified:           t.Status == statusVerified,
		VerificationStatus: t.Status,
		Rating:             t.Rating,
		Popularity:         t.Views,
		Downloads:          t.Downloads,
	}
}

func legacyComplexity(difficulty string) string {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case "easy", "beginner", "low":
		return models.SolutionComplexityLow
	case "hard", "advanced", "high":
		return models.SolutionComplexityHigh
	case "":
		return ""
	default:
		return models.SolutionComplexityMedium
	}
}
