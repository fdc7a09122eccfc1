// Package errors provides standardized error handling for the analysis and
// recommendation workers and their BPMN integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Job parser
	ErrCodeGenAINotConfigured ErrorCode = "GENAI_NOT_CONFIGURED"
	ErrCodeNoTasksExtracted   ErrorCode = "NO_TASKS_EXTRACTED"
	ErrCodeCompletionFailed   ErrorCode = "COMPLETION_FAILED"
	ErrCodeCompletionTimeout  ErrorCode = "COMPLETION_TIMEOUT"

	// Recommendation
	ErrCodeCandidateStoreFailed ErrorCode = "CANDIDATE_STORE_FAILED"
	ErrCodeIndexNotFound        ErrorCode = "INDEX_NOT_FOUND"
	ErrCodeCacheOperationFailed ErrorCode = "CACHE_OPERATION_FAILED"

	// Infrastructure
	ErrCodeDatabaseConnectionFailed      ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeBrokerUnavailable             ErrorCode = "BROKER_UNAVAILABLE"
	ErrCodeBrokerRejected                ErrorCode = "BROKER_REJECTED"

	// Worker input
	ErrCodeInvalidAnalysisInput       ErrorCode = "INVALID_ANALYSIS_INPUT"
	ErrCodeInvalidRecommendationInput ErrorCode = "INVALID_RECOMMENDATION_INPUT"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// IsCode reports whether err or any error it wraps is a StandardError with code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}

// AsStandardError extracts the first StandardError in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	ok := stderrors.As(err, &stdErr)
	return stdErr, ok
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// GenAIRemediation is the checklist attached to a GENAI_NOT_CONFIGURED error.
var GenAIRemediation = []string{
	"set GENAI_API_KEY (apis.genai.api_key)",
	"set GENAI_BASE_URL (apis.genai.base_url)",
	"make sure the GenAI gateway is reachable from the worker",
	"restart the worker after changing the configuration",
}

// NewGenAINotConfiguredError is fatal and surfaced verbatim to the caller.
func NewGenAINotConfiguredError(missing []string) *StandardError {
	steps := make([]string, len(GenAIRemediation))
	for i, s := range GenAIRemediation {
		steps[i] = fmt.Sprintf("%d) %s", i+1, s)
	}
	return &StandardError{
		Code:      ErrCodeGenAINotConfigured,
		Message:   "completion service is not configured: API key must be supplied",
		Details:   "checklist: " + strings.Join(steps, "; "),
		Retryable: false,
		Metadata:  map[string]interface{}{"missing": missing},
		Timestamp: time.Now().UTC(),
	}
}

// NewNoTasksExtractedError reports a completion that succeeded with zero tasks.
func NewNoTasksExtractedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoTasksExtracted,
		Message:   "no tasks extracted",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCompletionFailedError wraps a failed completion call. The job parser
// recovers from it locally.
func NewCompletionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCompletionFailed,
		Message:   "completion call failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewCompletionTimeoutError(timeout time.Duration, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCompletionTimeout,
		Message:   "completion call timed out",
		Details:   fmt.Sprintf("exceeded %s", timeout),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewCandidateStoreFailedError reports an unreachable or failing candidate store.
func NewCandidateStoreFailedError(store string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCandidateStoreFailed,
		Message:   fmt.Sprintf("candidate store '%s' failed", store),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"store": store},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewIndexNotFoundError(indexName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Elasticsearch index not found",
		Details:   fmt.Sprintf("index: %s", indexName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewCacheOperationFailedError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheOperationFailed,
		Message:   fmt.Sprintf("cache %s failed", op),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeElasticsearchConnectionFailed,
		Message:   "Elasticsearch connection failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewBrokerUnavailableError reports a Zeebe gateway that could not be reached.
func NewBrokerUnavailableError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBrokerUnavailable,
		Message:   "Zeebe gateway unavailable",
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewBrokerRejectedError reports a command the gateway refused.
func NewBrokerRejectedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBrokerRejected,
		Message:   "Zeebe command rejected",
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewInvalidAnalysisInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidAnalysisInput,
		Message:   "Invalid analysis input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidRecommendationInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRecommendationInput,
		Message:   "Invalid recommendation input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeGenAINotConfigured:            "GENAI_NOT_CONFIGURED",
	ErrCodeNoTasksExtracted:              "NO_TASKS_EXTRACTED",
	ErrCodeCompletionFailed:              "COMPLETION_FAILED",
	ErrCodeCompletionTimeout:             "COMPLETION_TIMEOUT",
	ErrCodeCandidateStoreFailed:          "CANDIDATE_STORE_FAILED",
	ErrCodeIndexNotFound:                 "INDEX_NOT_FOUND",
	ErrCodeCacheOperationFailed:          "CACHE_OPERATION_FAILED",
	ErrCodeDatabaseConnectionFailed:      "DATABASE_CONNECTION_FAILED",
	ErrCodeElasticsearchConnectionFailed: "ELASTICSEARCH_CONNECTION_FAILED",
	ErrCodeBrokerUnavailable:             "BROKER_UNAVAILABLE",
	ErrCodeBrokerRejected:                "BROKER_REJECTED",
	ErrCodeInvalidAnalysisInput:          "INVALID_ANALYSIS_INPUT",
	ErrCodeInvalidRecommendationInput:    "INVALID_RECOMMENDATION_INPUT",
}

// GetRetryCount returns how many job retries an error code deserves. The
// core itself never retries; retries happen at the job level only.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCandidateStoreFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeBrokerUnavailable,
		ErrCodeCacheOperationFailed:
		return 3

	case ErrCodeCompletionFailed,
		ErrCodeCompletionTimeout:
		return 1

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "GENAI") || strings.Contains(codeStr, "COMPLETION") || strings.Contains(codeStr, "TASKS"):
		return "AI"
	case strings.Contains(codeStr, "CANDIDATE") || strings.Contains(codeStr, "DATABASE"):
		return "DATABASE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "BROKER"):
		return "WORKFLOW_ENGINE"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
