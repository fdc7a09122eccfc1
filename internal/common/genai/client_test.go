// internal/common/genai/client_test.go
package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automation-advisor/internal/common/config"
	apperrors "automation-advisor/internal/common/errors"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestComplete_Success(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, completePath, r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "de", body["lang"])
		assert.Equal(t, "gpt-test", body["model"])

		_, _ = w.Write([]byte(`{"output":{"tasks":[{"text":"a"}]}}`))
	})

	c := NewClient(config.GenAIConfig{BaseURL: server.URL + "/", APIKey: "key", Model: "gpt-test", Timeout: 1000})
	out, err := c.Complete(context.Background(), Request{Prompt: "p", JobText: "j", Lang: "de"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":[{"text":"a"}]}`, string(out))
}

func TestComplete_NotConfigured(t *testing.T) {
	c := NewClient(config.GenAIConfig{})

	assert.ElementsMatch(t, []string{"apis.genai.api_key", "apis.genai.base_url"}, c.Missing())

	_, err := c.Complete(context.Background(), Request{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeGenAINotConfigured))
	assert.Contains(t, err.Error(), "API key must be supplied")
}

func TestComplete_Failures(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		timeout  int
		wantCode apperrors.ErrorCode
	}{
		{
			name:     "server error",
			handler:  func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			timeout:  1000,
			wantCode: apperrors.ErrCodeCompletionFailed,
		},
		{
			name:     "malformed body",
			handler:  func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("not json")) },
			timeout:  1000,
			wantCode: apperrors.ErrCodeCompletionFailed,
		},
		{
			name:     "missing output",
			handler:  func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{}`)) },
			timeout:  1000,
			wantCode: apperrors.ErrCodeCompletionFailed,
		},
		{
			name:     "timeout",
			handler:  func(w http.ResponseWriter, r *http.Request) { time.Sleep(200 * time.Millisecond) },
			timeout:  20,
			wantCode: apperrors.ErrCodeCompletionTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				tt.handler(w, r)
			})

			c := NewClient(config.GenAIConfig{BaseURL: server.URL, APIKey: "key", Timeout: tt.timeout})
			_, err := c.Complete(context.Background(), Request{Prompt: "p"})

			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, tt.wantCode), err.Error())
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		})
	}
}
