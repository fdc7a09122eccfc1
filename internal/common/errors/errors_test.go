// internal/common/errors/errors_test.go
package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenAINotConfiguredError(t *testing.T) {
	err := NewGenAINotConfiguredError([]string{"api_key"})

	assert.Equal(t, ErrCodeGenAINotConfigured, err.Code)
	assert.Contains(t, err.Error(), "API key must be supplied")
	assert.False(t, err.Retryable)
	for i := 1; i <= 4; i++ {
		assert.Contains(t, err.Details, fmt.Sprintf("%d) ", i))
	}
}

func TestIsCode_ThroughWrapping(t *testing.T) {
	base := NewNoTasksExtractedError("empty tasks array")
	wrapped := fmt.Errorf("parse: %w", base)

	assert.True(t, IsCode(wrapped, ErrCodeNoTasksExtracted))
	assert.False(t, IsCode(wrapped, ErrCodeGenAINotConfigured))
	assert.False(t, IsCode(stderrors.New("plain"), ErrCodeNoTasksExtracted))
	assert.False(t, IsCode(nil, ErrCodeNoTasksExtracted))
}

func TestStandardError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewCandidateStoreFailedError("postgres", cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, "postgres", err.Metadata["store"])
}

func TestNormalize(t *testing.T) {
	std := NewInvalidAnalysisInputError("jobText missing")
	assert.Same(t, std, Normalize(fmt.Errorf("wrap: %w", std)))

	internal := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, internal.Code)
	assert.Equal(t, "boom", internal.Details)
}

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantCode    string
		wantRetries int
	}{
		{name: "store failure retries", err: NewCandidateStoreFailedError("postgres", stderrors.New("x")), wantCode: "CANDIDATE_STORE_FAILED", wantRetries: 3},
		{name: "configuration error does not retry", err: NewGenAINotConfiguredError(nil), wantCode: "GENAI_NOT_CONFIGURED", wantRetries: 0},
		{name: "unmapped code passes through", err: NewInternalError(stderrors.New("x")), wantCode: "INTERNAL_ERROR", wantRetries: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			require.NotNil(t, bpmn)
			assert.Equal(t, tt.wantCode, bpmn.Code)
			assert.Equal(t, tt.wantRetries, bpmn.Retries)

			vars := bpmn.ToErrorVariables()
			assert.Equal(t, string(tt.err.Code), vars["originalErrorCode"])
			assert.Equal(t, tt.wantCode, vars["errorCode"])
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "AI", GetErrorCategory(ErrCodeNoTasksExtracted))
	assert.Equal(t, "AI", GetErrorCategory(ErrCodeGenAINotConfigured))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeCandidateStoreFailed))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeIndexNotFound))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidRecommendationInput))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}
