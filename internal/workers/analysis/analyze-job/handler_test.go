// internal/workers/analysis/analyze-job/handler_test.go
package analyzejob

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automation-advisor/internal/analysis/jobparser"
	"automation-advisor/internal/analysis/pipeline"
	"automation-advisor/internal/common/config"
	apperrors "automation-advisor/internal/common/errors"
	"automation-advisor/internal/common/genai"
	"automation-advisor/internal/common/logger"
	"automation-advisor/internal/heuristics"
	"automation-advisor/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeAnalyzer struct {
	result   *models.AnalysisResult
	err      error
	lastText string
	lastLang string
}

func (f *fakeAnalyzer) Analyze(_ context.Context, jobText, lang string) (*models.AnalysisResult, error) {
	f.lastText = jobText
	f.lastLang = lang
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type stubCompleter struct {
	raw string
}

func (s *stubCompleter) Complete(context.Context, genai.Request) (json.RawMessage, error) {
	return json.RawMessage(s.raw), nil
}

func (s *stubCompleter) Missing() []string { return nil }

func newTestHandler(t *testing.T, a Analyzer) *Handler {
	t.Helper()
	return NewHandler(&Config{Timeout: 5 * time.Second, DefaultLang: "de"}, a, nil, logger.NewTestLogger(t))
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	h := newTestHandler(t, &fakeAnalyzer{})

	tests := []struct {
		name      string
		variables string
		wantErr   bool
		wantLang  string
	}{
		{name: "valid with lang", variables: `{"jobText":"Buchhaltung","lang":"en"}`, wantLang: "en"},
		{name: "valid without lang", variables: `{"jobText":"Buchhaltung"}`},
		{name: "extra process variables allowed", variables: `{"jobText":"x","processId":"p-1"}`},
		{name: "missing jobText", variables: `{"lang":"de"}`, wantErr: true},
		{name: "empty jobText", variables: `{"jobText":""}`, wantErr: true},
		{name: "unsupported lang", variables: `{"jobText":"x","lang":"fr"}`, wantErr: true},
		{name: "wrong type", variables: `{"jobText":42}`, wantErr: true},
		{name: "malformed json", variables: `{"jobText":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := h.parseInput(tt.variables)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidAnalysisInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLang, input.Lang)
		})
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_DefaultsLanguage(t *testing.T) {
	fa := &fakeAnalyzer{result: &models.AnalysisResult{ID: "a-1", TotalScore: 40, Tasks: []models.Task{}}}
	h := newTestHandler(t, fa)

	out, err := h.Execute(context.Background(), &Input{JobText: "Buchhaltung"})
	require.NoError(t, err)

	assert.Equal(t, "de", fa.lastLang)
	assert.Equal(t, "Buchhaltung", fa.lastText)
	assert.Equal(t, "a-1", out.ID)
	assert.Equal(t, 40, out.TotalScore)
}

func TestHandler_Execute_BlankText(t *testing.T) {
	fa := &fakeAnalyzer{}
	h := newTestHandler(t, fa)

	_, err := h.Execute(context.Background(), &Input{JobText: "   \n"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidAnalysisInput))
	assert.Empty(t, fa.lastText)
}

func TestHandler_Execute_PropagatesAnalyzerErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code apperrors.ErrorCode
	}{
		{name: "not configured", err: apperrors.NewGenAINotConfiguredError([]string{"api_key"}), code: apperrors.ErrCodeGenAINotConfigured},
		{name: "empty extraction", err: apperrors.NewNoTasksExtractedError("empty tasks array"), code: apperrors.ErrCodeNoTasksExtracted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &fakeAnalyzer{err: tt.err})

			_, err := h.Execute(context.Background(), &Input{JobText: "Buchhaltung", Lang: "en"})
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, tt.code))

			// neither is worth a job retry
			assert.Equal(t, 0, apperrors.ConvertToBPMNError(apperrors.Normalize(err)).Retries)
		})
	}
}

func TestHandler_Execute_WithPipeline(t *testing.T) {
	raw := `{"tasks":[
	  {"text":"Aufgabe eins","automationPotential":85},
	  {"text":"Aufgabe zwei","automationPotential":60},
	  {"text":"Aufgabe drei","automationPotential":20}
	]}`

	cfg := heuristics.Default()
	log := logger.NewTestLogger(t)
	p := pipeline.New(jobparser.New(&stubCompleter{raw: raw}, cfg, log), cfg, nil, log)
	h := newTestHandler(t, p)

	out, err := h.Execute(context.Background(), &Input{
		JobText: "Bürokraft (m/w/d)\nAufgabe eins, Aufgabe zwei, Aufgabe drei",
	})
	require.NoError(t, err)

	assert.Len(t, out.Tasks, 3)
	assert.Equal(t, 55, out.TotalScore)
	assert.Equal(t, 55, out.Ratio.Automatisierbar)
	assert.Equal(t, 45, out.Ratio.Mensch)
	assert.NotEmpty(t, out.ID)

	encoded, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"totalScore":55`)
}

// ==========================
// Configuration Tests
// ==========================

func TestLoadConfig(t *testing.T) {
	c := LoadConfig(nil)
	assert.Equal(t, "de", c.DefaultLang)
	assert.Equal(t, 90*time.Second, c.Timeout)

	c = LoadConfig(&config.Config{Analysis: config.AnalysisConfig{DefaultLang: "en", CompletionTimeout: 10000}})
	assert.Equal(t, "en", c.DefaultLang)
	assert.Equal(t, 40*time.Second, c.Timeout)
}
