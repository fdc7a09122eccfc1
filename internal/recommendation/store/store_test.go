// internal/recommendation/store/store_test.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "automation-advisor/internal/common/errors"
	"automation-advisor/internal/common/logger"
	"automation-advisor/internal/models"
)

var candidateColumns = []string{
	"id", "title", "description", "category", "complexity", "integrations", "tags",
	"trigger_type", "source", "is_ai_generated", "verification_status", "rating", "popularity", "downloads",
}

// ==========================
// Postgres
// ==========================

func TestPostgresStore_ListCandidates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(candidateColumns).
		AddRow("wf-1", "Invoice sync", "Sync invoices", "finance", "Low", "{gmail,postgres}", "{invoice}",
			"webhook", "n8n", true, "verified", 4.6, 320, 80).
		AddRow("wf-2", "Lead capture", nil, nil, nil, nil, nil,
			nil, nil, false, "approved", nil, nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM workflows")).
		WithArgs(sqlmock.AnyArg(), 1000).
		WillReturnRows(rows)

	s := NewPostgresStore(db, []string{"verified", "approved"}, logger.NewNoOpLogger())
	got, err := s.ListCandidates(context.Background(), 1000)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, models.CandidateSolution{
		ID:                 "wf-1",
		Title:              "Invoice sync",
		Description:        "Sync invoices",
		Category:           "finance",
		Complexity:         "Low",
		Integrations:       []string{"gmail", "postgres"},
		Tags:               []string{"invoice"},
		TriggerType:        "webhook",
		Source:             "n8n",
		IsAIGenerated:      true,
		Verified:           true,
		VerificationStatus: "verified",
		Rating:             4.6,
		Popularity:         320,
		Downloads:          80,
	}, got[0])

	assert.Equal(t, "wf-2", got[1].ID)
	assert.False(t, got[1].Verified)
	assert.Empty(t, got[1].Integrations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM workflows")).
		WillReturnError(errors.New("connection refused"))

	s := NewPostgresStore(db, []string{"verified"}, logger.NewNoOpLogger())
	_, err = s.ListCandidates(context.Background(), 10)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCandidateStoreFailed))
	assert.Contains(t, err.Error(), "connection refused")
}

// ==========================
// Elasticsearch (legacy)
// ==========================

func newESServer(t *testing.T, status int, body string, gotQuery *map[string]interface{}) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotQuery != nil && r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, gotQuery)
		}
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func TestLegacyStore_ListCandidates(t *testing.T) {
	body := `{"hits":{"hits":[
	  {"_id":"legacy-1","_source":{"name":"Mail digest","description":"Daily digest","category":"email",
	   "nodes":["Gmail","Slack"],"keywords":["digest"],"difficulty":"easy","trigger":"cron",
	   "ai_generated":false,"status":"verified","rating":4.2,"views":150,"downloads":12}},
	  {"_id":"legacy-2","_source":{"name":"CRM export","difficulty":"advanced"}}
	]}}`
	var query map[string]interface{}
	client := newESServer(t, http.StatusOK, body, &query)

	s := NewLegacyStore(client, "workflow_templates_legacy", logger.NewNoOpLogger())
	got, err := s.ListCandidates(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "legacy-1", first.ID)
	assert.Equal(t, "Mail digest", first.Title)
	assert.Equal(t, models.SolutionComplexityLow, first.Complexity)
	assert.Equal(t, []string{"Gmail", "Slack"}, first.Integrations)
	assert.Equal(t, SourceLegacy, first.Source)
	assert.True(t, first.Verified)
	assert.Equal(t, 150, first.Popularity)

	assert.Equal(t, models.SolutionComplexityHigh, got[1].Complexity)
	assert.EqualValues(t, 50, query["size"])
}

func TestLegacyStore_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode apperrors.ErrorCode
	}{
		{name: "missing index", status: http.StatusNotFound, body: `{"error":{"type":"index_not_found_exception"}}`, wantCode: apperrors.ErrCodeIndexNotFound},
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantCode: apperrors.ErrCodeCandidateStoreFailed},
		{name: "malformed body", status: http.StatusOK, body: `{"hits":`, wantCode: apperrors.ErrCodeCandidateStoreFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newESServer(t, tt.status, tt.body, nil)
			s := NewLegacyStore(client, "idx", logger.NewNoOpLogger())

			_, err := s.ListCandidates(context.Background(), 10)

			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, tt.wantCode), err.Error())
		})
	}
}

func TestLegacyComplexity(t *testing.T) {
	assert.Equal(t, models.SolutionComplexityLow, legacyComplexity("Beginner"))
	assert.Equal(t, models.SolutionComplexityMedium, legacyComplexity("intermediate"))
	assert.Equal(t, models.SolutionComplexityHigh, legacyComplexity("HARD"))
	assert.Equal(t, "", legacyComplexity(" "))
	assert.False(t, strings.Contains(legacyComplexity("x"), " "))
}
