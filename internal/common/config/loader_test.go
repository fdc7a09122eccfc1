// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: advisor
    user: advisor
  redis:
    address: localhost:6379
apis:
  genai:
    base_url: ${TEST_GENAI_BASE_URL}
workers:
  analyze-job-text:
    enabled: true
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	t.Setenv("TEST_GENAI_BASE_URL", "http://genai.local")
	t.Setenv("GENAI_API_KEY", "secret")

	cfg, err := LoadFromFile(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "http://genai.local", cfg.APIs.GenAI.BaseURL)
	assert.Equal(t, "secret", cfg.APIs.GenAI.APIKey)
	assert.Equal(t, 60000, cfg.APIs.GenAI.Timeout)
	assert.Equal(t, "de", cfg.Analysis.DefaultLang)
	assert.Equal(t, 60000, cfg.Analysis.CompletionTimeout)

	assert.True(t, cfg.Recommendation.UnifiedEnabled)
	assert.Equal(t, 1000, cfg.Recommendation.MaxCandidates)
	assert.Equal(t, 5, cfg.Recommendation.DefaultTopK)
	assert.Equal(t, []string{"verified", "approved"}, cfg.Recommendation.VerificationStatuses)
	assert.Equal(t, "workflow_templates_legacy", cfg.Recommendation.LegacyIndex)

	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)

	worker := cfg.Workers["analyze-job-text"]
	assert.True(t, worker.Enabled)
	assert.Equal(t, 5, worker.MaxJobsActive)
	assert.Equal(t, 30000, worker.Timeout)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing broker",
			yaml:    "database:\n  postgres:\n    host: h\n",
			wantErr: "camunda.broker_address is required",
		},
		{
			name: "legacy path needs elasticsearch",
			yaml: minimalYAML + "recommendation:\n  unified_enabled: false\n",
			wantErr: "elasticsearch",
		},
		{
			name:    "unsupported language",
			yaml:    minimalYAML + "analysis:\n  default_lang: fr\n",
			wantErr: "analysis.default_lang",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}

func TestGetWorkerConfig_Defaults(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{"off": {Enabled: false}}}

	assert.False(t, IsWorkerEnabled(cfg, "off"))
	assert.True(t, IsWorkerEnabled(cfg, "unknown"))
	assert.Equal(t, 3, GetWorkerConfig(cfg, "unknown").MaxRetries)
}
